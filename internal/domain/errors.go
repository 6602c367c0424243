package domain

import "errors"

var (
	// ErrNotFound is returned when a lookup resolves to no row.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated is returned when no caller identity is present.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrUnauthorized is returned when the caller does not own the target store.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Invalid(msg string) error { return &ValidationError{Message: msg} }
