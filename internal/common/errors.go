// Package common defines shared constants and sentinel errors used across
// client and server layers of gophaccounts. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Directory-level errors.
	ErrorNotFound          = errors.New("not found")
	ErrorDuplicateUsername = errors.New("username already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal           = errors.New("internal error")
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrorForbidden          = errors.New("forbidden")

	// Input errors.
	ErrorValidation = errors.New("validation error")

	// Object storage failures.
	ErrorStorage = errors.New("storage error")

	// Malformed, forged and expired tokens all share this value.
	ErrInvalidToken = errors.New("invalid token")
)

// ValidationError reports user-correctable input problems. It matches
// ErrorValidation with errors.Is, so callers that only care about the kind
// do not need a type assertion.
type ValidationError struct {
	Reason string
}

// NewValidationError returns a *ValidationError with the given reason.
func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string {
	return ErrorValidation.Error() + ": " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrorValidation
}
