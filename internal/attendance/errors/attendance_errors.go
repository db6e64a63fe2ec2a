package attendanceerrors

import (
	"net/http"

	"go-geoattend/internal/shared/apperror"
)

var (
	ErrUnknownIdentity = apperror.New(
		apperror.CodeUnknownIdentity,
		"Employee not found. Please check your ID and name",
		http.StatusNotFound,
	)
	ErrOutsideGeofence = apperror.New(
		apperror.CodeOutsideGeofence,
		"You are outside the office premises. Attendance not allowed",
		http.StatusForbidden,
	)
	ErrAlreadyCompleted = apperror.New(
		apperror.CodeAlreadyCompleted,
		"You already logged out today",
		http.StatusConflict,
	)
	ErrInvalidTimeOrder = apperror.New(
		apperror.CodeInvalidTimeOrder,
		"Logout time is not after login time",
		http.StatusUnprocessableEntity,
	)
	ErrConcurrentSubmission = apperror.New(
		apperror.CodeConflict,
		"Another submission for this employee was recorded at the same time, please retry",
		http.StatusConflict,
	)
	ErrInvalidReading = apperror.New(
		apperror.CodeInvalidInput,
		"Location reading is invalid",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)

// OutsideGeofenceDetails is attached to ErrOutsideGeofence.
type OutsideGeofenceDetails struct {
	DistanceKm float64 `json:"distance_km"`
	RadiusKm   float64 `json:"radius_km"`
}

func OutsideGeofence(distanceKm, radiusKm float64) *apperror.AppError {
	return ErrOutsideGeofence.WithDetails(OutsideGeofenceDetails{
		DistanceKm: distanceKm,
		RadiusKm:   radiusKm,
	})
}
