package tableschema

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaFormat is the umbrella error wrapped by every load failure.
	ErrSchemaFormat = errors.New("malformed schema document")

	// ErrInvalidDocument indicates the source is not a YAML mapping with a
	// well-formed "fields" sequence.
	ErrInvalidDocument = errors.New("document is not a field list")

	// ErrNoFields indicates the document declares no fields at all.
	ErrNoFields = errors.New("schema declares no fields")

	// ErrMissingName indicates a field descriptor without a name.
	ErrMissingName = errors.New("field descriptor has no name")

	// ErrUnknownType indicates a field type outside the supported set.
	ErrUnknownType = errors.New("unknown field type")

	// ErrDuplicateField indicates two field descriptors share a name.
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrInvalidBounds indicates a numeric constraint pair with minimum
	// above maximum.
	ErrInvalidBounds = errors.New("minimum exceeds maximum")

	// ErrSchemaNotFound is returned by Registry.Get for unknown schema names.
	ErrSchemaNotFound = errors.New("schema not found")
)

// FormatError describes why a schema document was rejected at load time.
// It always wraps ErrSchemaFormat plus a more specific reason, so both
// errors.Is(err, ErrSchemaFormat) and errors.Is(err, ErrUnknownType) work.
type FormatError struct {
	// Field is the offending field name. Empty for document-level defects
	// such as unparseable YAML or a missing "fields" key.
	Field string

	// Reason is one of the sentinel errors above or the decoder error for
	// syntactically broken documents.
	Reason error
}

func (e *FormatError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("schema format: %v", e.Reason)
	}
	return fmt.Sprintf("schema format: field %q: %v", e.Field, e.Reason)
}

func (e *FormatError) Unwrap() []error {
	return []error{ErrSchemaFormat, e.Reason}
}

func formatErr(field string, reason error) error {
	return &FormatError{Field: field, Reason: reason}
}
