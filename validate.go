package phenokit

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/phenokit/pkg/tableschema"
)

// Validate checks one record against a schema and returns the complete set
// of violations, or the typed record when there are none.
//
// Fields are processed in schema declaration order. Within one field the
// checks stop at the first failure: absence beats typing, typing beats
// range. Across fields every field is checked regardless of earlier
// failures. Optional absent fields are skipped, record keys without a
// schema field are ignored, and bounds are inclusive.
func Validate(schema *tableschema.Schema, rec Record) Result {
	var violations Violations
	typed := make(Record, len(rec))

	for k, v := range rec {
		if !schema.Has(k) {
			typed[k] = v
		}
	}

	for _, spec := range schema.Fields() {
		raw, present := presentValue(rec, spec.Name)
		if !present {
			if spec.Constraints.Required {
				violations = append(violations, Violation{
					Field:   spec.Name,
					Code:    CodeMissingRequired,
					Message: "field is required",
				})
			}
			continue
		}

		switch spec.Type {
		case tableschema.TypeNumber:
			num, ok := toNumber(raw)
			if !ok {
				violations = append(violations, Violation{
					Field:   spec.Name,
					Code:    CodeWrongType,
					Message: "must be a finite number",
					Value:   raw,
				})
				continue
			}
			if min := spec.Constraints.Minimum; min != nil && num < *min {
				violations = append(violations, Violation{
					Field:   spec.Name,
					Code:    CodeBelowMinimum,
					Message: fmt.Sprintf("must be at least %v", *min),
					Value:   raw,
				})
			}
			if max := spec.Constraints.Maximum; max != nil && num > *max {
				violations = append(violations, Violation{
					Field:   spec.Name,
					Code:    CodeAboveMaximum,
					Message: fmt.Sprintf("must be at most %v", *max),
					Value:   raw,
				})
			}
			typed[spec.Name] = num

		case tableschema.TypeString:
			str, ok := raw.(string)
			if !ok {
				violations = append(violations, Violation{
					Field:   spec.Name,
					Code:    CodeWrongType,
					Message: "must be text",
					Value:   raw,
				})
				continue
			}
			typed[spec.Name] = str
		}
	}

	if len(violations) > 0 {
		return Result{Violations: violations}
	}
	return Result{Record: typed}
}

// presentValue reports whether the record carries a usable value for the
// field. Missing keys, nil values and whitespace-only text all count as
// absent, so a blank CSV cell and a dropped JSON key behave identically.
func presentValue(rec Record, name string) (any, bool) {
	raw, ok := rec[name]
	if !ok || raw == nil {
		return nil, false
	}
	if s, isStr := raw.(string); isStr && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return raw, true
}
