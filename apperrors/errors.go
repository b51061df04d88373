package apperrors

import (
	"errors"
	"fmt"
)

// sentinel errors used across services; handlers map these to HTTP statuses
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("already exists")
	ErrUnknownEntity = errors.New("unknown entity kind")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
)

// ValidationError reports one or more malformed or missing DTO fields.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// NewValidationError builds a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// NotFound wraps ErrNotFound with the entity kind and id that was missing
func NotFound(kind string, id uint) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
}

// Conflict wraps ErrConflict with the offending field
func Conflict(kind, field string) error {
	return fmt.Errorf("%s with this %s %w", kind, field, ErrConflict)
}

// UnknownEntity wraps ErrUnknownEntity with the unrecognized kind string
func UnknownEntity(name string) error {
	return fmt.Errorf("%q: %w", name, ErrUnknownEntity)
}
