package phenokit

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// toNumber coerces a raw value into a float64. It is the single numeric
// interpretation path for every number field, so tabular sources and JSON
// payloads agree on what counts as a number. NaN and infinities are
// rejected because range constraints cannot be checked against them.
func toNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		return parseNumber(v.String())
	case string:
		return parseNumber(v)
	default:
		return 0, false
	}
}

// parseNumber accepts plain and scientific decimal notation with a dot as
// the decimal separator. Surrounding whitespace is tolerated, thousands
// separators and locale-specific commas are not.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
