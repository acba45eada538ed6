package validator

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError is a single failed check, attributed to the input field it
// concerns so callers can render it next to the right form control.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors collects every failed check from one Apply call.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(fe))
	for _, err := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether any error concerns the given field.
func (fe FieldErrors) Has(field string) bool {
	for _, err := range fe {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages recorded for one field.
func (fe FieldErrors) Get(field string) []string {
	var messages []string
	for _, err := range fe {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

// Rule pairs a check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error FieldError
}

// Apply runs every rule and returns the collected failures, or nil when all
// pass. All rules run; validation reports every problem at once rather than
// stopping at the first.
func Apply(rules ...Rule) error {
	var failed FieldErrors
	for _, rule := range rules {
		if !rule.Check() {
			failed = append(failed, rule.Error)
		}
	}

	if len(failed) == 0 {
		return nil
	}
	return failed
}

// Extract pulls FieldErrors out of a wrapped error chain, for callers that
// want per-field messages rather than the flattened string.
func Extract(err error) FieldErrors {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}
