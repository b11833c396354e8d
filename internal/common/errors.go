package common

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a lookup for a record that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a conditional write that lost its race even after
	// the single internal retry.
	ErrConflict = errors.New("conflict")

	// ErrInvalidCredentials covers both unknown emails and wrong passwords,
	// so login responses never reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a malformed request. Fields optionally pinpoints
// the offending inputs.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
