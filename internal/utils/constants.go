package utils

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

const (
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrUnauthorized     = "Unauthorized access"
	ErrForbidden        = "Access forbidden"
)

// Error codes surfaced in API responses.
const (
	CodeValidationError    = "VALIDATION_ERROR"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeJobAlreadyClaimed  = "JOB_ALREADY_CLAIMED"
	CodeDriverUnavailable  = "DRIVER_UNAVAILABLE"
	CodeNotFound           = "NOT_FOUND"
	CodeInternalError      = "INTERNAL_ERROR"
)
