package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation = errors.New("validation error")
	ErrUniqueness = errors.New("uniqueness violation")
	ErrNotFound   = errors.New("not found")
	ErrConstraint = errors.New("constraint violation")
)

// NonFieldErrors is the key used for failures that do not belong to a single field.
const NonFieldErrors = "non_field_errors"

// ValidationError carries one message per offending field.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// UniquenessError reports a composite-key collision.
type UniquenessError struct {
	Entity string
	Fields []string
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("%s with this %s already exists", e.Entity, strings.Join(e.Fields, ", "))
}

func (e *UniquenessError) Unwrap() error { return ErrUniqueness }

// NotFoundError reports a reference to an identifier that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConstraintError is a storage-level constraint violation other than uniqueness,
// e.g. a booking pointing at a listing that does not exist.
type ConstraintError struct {
	Entity string
	Reason string
	Err    error
}

func (e *ConstraintError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Entity, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
}

func (e *ConstraintError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrConstraint, e.Err}
	}
	return []error{ErrConstraint}
}
