package phenokit

import "maps"

// Record is one raw observation keyed by field name. Values are whatever
// the record source produced: strings from tabular files, or any decoded
// scalar from a JSON payload. Typing happens during validation.
type Record map[string]any

// Clone returns a shallow copy of the record. A nil record clones to nil.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	maps.Copy(out, r)
	return out
}
