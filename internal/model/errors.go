package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a user with the requested ID does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrWriteRejected is returned when the store acknowledges the request
	// but rejects the write.
	ErrWriteRejected = errors.New("write rejected by store")
)

// InvalidFilterError is returned when a search filter references an
// unknown field or operator.
type InvalidFilterError struct {
	Field  string
	Reason string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter on field %q: %s", e.Field, e.Reason)
}

// FieldViolation describes a single failed validation check.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects all validation violations for a user record.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
