package types

import (
	"fmt"
	"strings"
)

// ValidationError is a single structured validation failure.
type ValidationError struct {
	Field    string
	Expected string
	Actual   interface{}
	Message  string
}

// ValidationErrors collects ValidationError values accumulated while
// validating a parsed structure (plugin tokens, settings keys, cache
// entries) before it is trusted by the rest of the pipeline.
type ValidationErrors struct {
	Errors []ValidationError
}

// Add appends a new validation error.
func (v *ValidationErrors) Add(field, expected string, actual interface{}, msg string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:    field,
		Expected: expected,
		Actual:   actual,
		Message:  msg,
	})
}

// HasErrors reports whether any errors were recorded.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if !v.HasErrors() {
		return "no validation errors"
	}
	if len(v.Errors) == 1 {
		e := v.Errors[0]
		return fmt.Sprintf("validation error in field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed with %d errors", len(v.Errors))
}

// Detail renders every collected error, one per line, for diagnostics.
func (v *ValidationErrors) Detail() string {
	if !v.HasErrors() {
		return ""
	}
	var sb strings.Builder
	for i, e := range v.Errors {
		fmt.Fprintf(&sb, "%d. %s: expected %s, got %v (%s)\n", i+1, e.Field, e.Expected, e.Actual, e.Message)
	}
	return sb.String()
}
