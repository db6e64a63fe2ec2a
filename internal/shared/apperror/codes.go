package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"
	CodeRateLimited  = "RATE_LIMITED"

	// Attendance outcomes reported back to the submitter
	CodeUnknownIdentity  = "UNKNOWN_IDENTITY"
	CodeOutsideGeofence  = "OUTSIDE_GEOFENCE"
	CodeAlreadyCompleted = "ALREADY_COMPLETED"
	CodeInvalidTimeOrder = "INVALID_TIME_ORDER"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
