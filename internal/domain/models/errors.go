package models

import "fmt"

// InvalidInputError rejects malformed engine input. Inputs are never
// silently clamped or coerced; the caller gets the field and the reason.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// NewInvalidInput builds an InvalidInputError for the given field.
func NewInvalidInput(field, format string, a ...interface{}) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, a...)}
}
