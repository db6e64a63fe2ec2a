package geofence

import "fmt"

// Fence is a circle of RadiusKm around Center.
type Fence struct {
	Center   Point
	RadiusKm float64
}

func NewFence(center Point, radiusKm float64) (Fence, error) {
	if err := center.Validate(); err != nil {
		return Fence{}, fmt.Errorf("fence center %s: %w", center, err)
	}
	if !(radiusKm > 0) {
		return Fence{}, fmt.Errorf("fence radius must be positive, got %v", radiusKm)
	}
	return Fence{Center: center, RadiusKm: radiusKm}, nil
}

// Check measures the distance from the fence center to p. A reading exactly
// on the boundary counts as inside.
func (f Fence) Check(p Point) (distanceKm float64, inside bool) {
	distanceKm = DistanceKm(f.Center, p)
	return distanceKm, distanceKm <= f.RadiusKm
}
