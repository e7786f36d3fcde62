package phenokit

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies which constraint a field value violated.
type Code string

const (
	CodeMissingRequired Code = "missing_required"
	CodeWrongType       Code = "wrong_type"
	CodeBelowMinimum    Code = "below_minimum"
	CodeAboveMaximum    Code = "above_maximum"
)

// Violation records a single constraint failure on a single field. Value
// carries the offending raw value and is nil when the field was absent.
type Violation struct {
	Field   string `json:"field"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// Violations collects every constraint failure of one record, ordered by
// schema field declaration. It implements the error interface so a rejected
// record can travel as a regular error value.
type Violations []Violation

func (vs Violations) Error() string {
	if len(vs) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, v := range vs {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether any violation concerns the given field.
func (vs Violations) Has(field string) bool {
	for _, v := range vs {
		if v.Field == field {
			return true
		}
	}
	return false
}

// HasCode reports whether the given field failed with the given code.
func (vs Violations) HasCode(field string, code Code) bool {
	for _, v := range vs {
		if v.Field == field && v.Code == code {
			return true
		}
	}
	return false
}

// Get returns every violation recorded for the given field.
func (vs Violations) Get(field string) []Violation {
	var out []Violation
	for _, v := range vs {
		if v.Field == field {
			out = append(out, v)
		}
	}
	return out
}

// Fields returns the distinct violated field names in first-seen order.
func (vs Violations) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, v := range vs {
		if !seen[v.Field] {
			fields = append(fields, v.Field)
			seen[v.Field] = true
		}
	}
	return fields
}

// IsEmpty reports whether no violations were recorded.
func (vs Violations) IsEmpty() bool {
	return len(vs) == 0
}

// ExtractViolations unwraps a Violations value from err, or returns nil when
// err carries none.
func ExtractViolations(err error) Violations {
	if err == nil {
		return nil
	}

	var vs Violations
	if errors.As(err, &vs) {
		return vs
	}

	return nil
}
