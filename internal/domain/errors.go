package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrValidation         = errors.New("validation error")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidNodeKind    = errors.New("invalid node kind")
	ErrEventClosed        = errors.New("event closed")
	ErrPreconditionFailed = errors.New("precondition failed")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// PreconditionError is returned when a group cannot be loaded because some of
// its descendant items are not verified OK.
type PreconditionError struct {
	NodeID   string
	Verified int
	Total    int
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: node %s has %d of %d items remaining", e.NodeID, e.Remaining(), e.Total)
}

func (e *PreconditionError) Unwrap() error { return ErrPreconditionFailed }

// Remaining is the number of items that still block loading.
func (e *PreconditionError) Remaining() int {
	return e.Total - e.Verified
}
