package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidReference means a cart line referenced a product/variant
	// pair that does not exist or is inconsistent.
	ErrInvalidReference = errors.New("invalid product or variant reference")

	// ErrInvalidStatus means a status outside the enumerated set was given.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrNotFound means the referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStatusConflict means a concurrent status update won the race.
	ErrStatusConflict = errors.New("order was modified concurrently")
)

// ValidationError reports malformed or missing request fields, keyed by
// field name so callers can surface field-level detail.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields[field] = message
	return e
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// PersistenceError wraps a store failure. The surrounding operation has been
// rolled back in full before this is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
