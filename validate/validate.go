// Package validate checks incoming request payloads before a handler
// acts on them.
package validate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("validation failed")

// Code identifies the kind of a validation failure.
type Code string

const (
	// CodeMissingFields is reported when required keys are absent.
	CodeMissingFields Code = "missing_fields"

	// CodeSchemaViolation is reported when data does not match a schema.
	CodeSchemaViolation Code = "schema_violation"
)

// ValidationError describes why a payload was rejected.
type ValidationError struct {
	Code Code

	// Fields lists the missing keys, in the order they were required.
	Fields []string

	// Violations lists schema violations as "<field>: <description>".
	Violations []string
}

func (e *ValidationError) Error() string {
	switch e.Code {
	case CodeMissingFields:
		return fmt.Sprintf("missing required fields: %q", e.Fields)
	case CodeSchemaViolation:
		return "schema validation failed: " + strings.Join(e.Violations, "; ")
	default:
		return ErrValidation.Error()
	}
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Required checks that data has every key in required. Values are not
// inspected, a key mapped to nil counts as present.
func Required(data map[string]any, required []string) (bool, error) {
	var missing []string
	for _, field := range required {
		if _, ok := data[field]; !ok {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return false, &ValidationError{
			Code:   CodeMissingFields,
			Fields: missing,
		}
	}

	return true, nil
}

// MissingFields returns the missing field names carried by err, if it
// is a missing-fields validation error.
func MissingFields(err error) ([]string, bool) {
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) || validationErr.Code != CodeMissingFields {
		return nil, false
	}

	return validationErr.Fields, true
}
