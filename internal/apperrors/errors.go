package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthorized is returned when the caller's identity cannot be verified.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrServiceUnavailable is returned when a downstream dependency was asked
	// but never answered.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrNetwork is returned for transport level failures.
	ErrNetwork = errors.New("network error")
)

// UpstreamError is a response from a downstream service outside the 2xx range.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream responded with status %d: %s", e.Status, e.Message)
}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports bad or duplicate input for one entity type.
type ValidationError struct {
	Entity string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	if e.Entity == "" {
		return "validation failed: " + strings.Join(parts, ", ")
	}
	return e.Entity + " validation failed: " + strings.Join(parts, ", ")
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(entity, field, message string) error {
	return &ValidationError{
		Entity: entity,
		Fields: []FieldError{{Field: field, Message: message}},
	}
}

// NewDuplicateError reports a unique constraint violation on field.
func NewDuplicateError(entity, field string) error {
	return NewValidationError(entity, field, field+" already exists")
}

// Unauthorized wraps a reason into ErrUnauthorized.
func Unauthorized(reason string) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, reason)
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
