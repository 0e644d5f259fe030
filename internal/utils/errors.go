package utils

import (
	"errors"
	"fmt"
)

// Sentinel errors for the dispatch engine. Services return these (or a
// ValidationError) so handlers can map them to HTTP codes with
// errors.Is/errors.As; repositories wrap storage failures separately.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidTransition = errors.New("invalid job transition")
	ErrJobAlreadyClaimed = errors.New("job already claimed")
	ErrDriverUnavailable = errors.New("driver unavailable")
)

// ValidationError reports a malformed or out-of-range input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
