package phenokit

// Result is the outcome of validating a single record. Exactly one branch
// is populated: accepted records carry the typed record with number fields
// coerced to float64, rejected records carry the violations that sank them.
type Result struct {
	Record     Record     `json:"record,omitempty"`
	Violations Violations `json:"violations,omitempty"`
}

// Accepted reports whether the record passed every check.
func (r Result) Accepted() bool {
	return len(r.Violations) == 0
}

// Err returns the violations as an error, or nil for accepted records.
func (r Result) Err() error {
	if len(r.Violations) == 0 {
		return nil
	}
	return r.Violations
}
