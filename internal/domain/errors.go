package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidTaskStatus is returned when a task status is not valid.
	ErrInvalidTaskStatus = errors.New("invalid task status")

	// ErrInvalidCategory is returned when a task category is not valid.
	ErrInvalidCategory = errors.New("invalid task category")

	// ErrInvalidPriority is returned when a task priority is not valid.
	ErrInvalidPriority = errors.New("invalid task priority")

	// ErrInvalidHistoryAction is returned when a history action is not valid.
	ErrInvalidHistoryAction = errors.New("invalid history action")
)

// ValidationError describes a single invalid field.
// It wraps one of the sentinel errors above so callers can match on it
// with errors.Is while still reporting which field was at fault.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel error.
// ValidationError always matches ErrValidation, whatever sentinel it carries.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil || errors.Is(e.Err, ErrValidation) {
		return []error{ErrValidation}
	}
	return []error{e.Err, ErrValidation}
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
