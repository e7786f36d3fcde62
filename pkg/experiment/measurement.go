package experiment

import (
	"fmt"

	"github.com/dmitrymomot/phenokit"
)

// Measurement is the typed form of one accepted strain performance record.
type Measurement struct {
	Compound   string  `json:"compound"`
	Production float64 `json:"production"`
	Growth     float64 `json:"growth"`
	Medium     string  `json:"medium,omitempty"`
	Comment    string  `json:"comment,omitempty"`
}

// MeasurementFromRecord lifts a typed record into a Measurement. The record
// must come from a successful validation against the strain performance
// schema; anything else fails with ErrIncompleteRecord naming the first bad
// field.
func MeasurementFromRecord(rec phenokit.Record) (Measurement, error) {
	var m Measurement
	var ok bool

	if m.Compound, ok = rec["compound"].(string); !ok {
		return Measurement{}, fmt.Errorf("%w: compound", ErrIncompleteRecord)
	}
	if m.Production, ok = rec["production"].(float64); !ok {
		return Measurement{}, fmt.Errorf("%w: production", ErrIncompleteRecord)
	}
	if m.Growth, ok = rec["growth"].(float64); !ok {
		return Measurement{}, fmt.Errorf("%w: growth", ErrIncompleteRecord)
	}

	m.Medium, _ = rec["medium"].(string)
	m.Comment, _ = rec["comment"].(string)
	return m, nil
}
