package tabular

import "errors"

var (
	// ErrMissingHeader is returned when the input ends before a header row.
	ErrMissingHeader = errors.New("input has no header row")

	// ErrDuplicateColumn is returned when two header cells normalize to the
	// same record key.
	ErrDuplicateColumn = errors.New("duplicate column name")
)
