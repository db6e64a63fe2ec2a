package geofence_test

import (
	"math"
	"testing"

	"go-geoattend/internal/geofence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var office = geofence.Point{Latitude: 17.4435, Longitude: 78.3772}

func TestDistanceKm_KnownValues(t *testing.T) {
	t.Run("Flinders Peak to Buninyong", func(t *testing.T) {
		flinders := geofence.Point{Latitude: -37.95103341666667, Longitude: 144.42486788888889}
		buninyong := geofence.Point{Latitude: -37.65282113888889, Longitude: 143.92649552777777}

		assert.InDelta(t, 54.972271, geofence.DistanceKm(flinders, buninyong), 1e-5)
	})

	t.Run("one degree along the equator", func(t *testing.T) {
		d := geofence.DistanceKm(geofence.Point{}, geofence.Point{Longitude: 1})
		assert.InDelta(t, 111.319491, d, 1e-5)
	})

	t.Run("same point", func(t *testing.T) {
		assert.Equal(t, 0.0, geofence.DistanceKm(office, office))
	})

	t.Run("five kilometres north of the office", func(t *testing.T) {
		north := geofence.Point{Latitude: office.Latitude + 0.04518, Longitude: office.Longitude}
		assert.InDelta(t, 5.0, geofence.DistanceKm(office, north), 0.01)
	})

	t.Run("nearly antipodal falls back to haversine", func(t *testing.T) {
		d := geofence.DistanceKm(geofence.Point{}, geofence.Point{Latitude: 0.5, Longitude: 179.7})
		assert.False(t, math.IsNaN(d))
		assert.Greater(t, d, 19000.0)
		assert.Less(t, d, 20100.0)
	})
}

func TestDistanceKm_Symmetric(t *testing.T) {
	points := []geofence.Point{
		office,
		{Latitude: 17.4440, Longitude: 78.3780},
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 51.5074, Longitude: -0.1278},
		{Latitude: 89.9, Longitude: -179.9},
		{Latitude: 0, Longitude: 0},
	}
	for _, a := range points {
		for _, b := range points {
			assert.Equal(t, geofence.DistanceKm(a, b), geofence.DistanceKm(b, a), "%s <-> %s", a, b)
		}
	}
}

func TestPoint_Validate(t *testing.T) {
	tests := []struct {
		name string
		p    geofence.Point
		err  error
	}{
		{"valid", office, nil},
		{"poles and antimeridian", geofence.Point{Latitude: -90, Longitude: 180}, nil},
		{"nan", geofence.Point{Latitude: math.NaN()}, geofence.ErrNonFinite},
		{"inf", geofence.Point{Longitude: math.Inf(1)}, geofence.ErrNonFinite},
		{"latitude", geofence.Point{Latitude: 90.0001}, geofence.ErrLatitudeRange},
		{"longitude", geofence.Point{Longitude: -180.5}, geofence.ErrLongitudeRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				assert.NoError(t, tt.p.Validate())
				return
			}
			assert.ErrorIs(t, tt.p.Validate(), tt.err)
		})
	}
}

func TestFence_Check(t *testing.T) {
	fence, err := geofence.NewFence(office, 0.1)
	require.NoError(t, err)

	d, inside := fence.Check(office)
	assert.True(t, inside)
	assert.Equal(t, 0.0, d)

	// roughly 55 m east
	d, inside = fence.Check(geofence.Point{Latitude: office.Latitude, Longitude: office.Longitude + 0.0005})
	assert.True(t, inside)
	assert.InDelta(t, 0.053, d, 0.005)

	d, inside = fence.Check(geofence.Point{Latitude: office.Latitude + 0.04518, Longitude: office.Longitude})
	assert.False(t, inside)
	assert.InDelta(t, 5.0, geofence.Round(d, 3), 0.01)
}

func TestNewFence_Invalid(t *testing.T) {
	_, err := geofence.NewFence(office, 0)
	assert.Error(t, err)

	_, err = geofence.NewFence(geofence.Point{Latitude: 100}, 1)
	assert.ErrorIs(t, err, geofence.ErrLatitudeRange)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 8.5, geofence.Round(8.499999, 2))
	assert.Equal(t, 4.999, geofence.Round(4.99912, 3))
}
