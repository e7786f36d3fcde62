package report

import "errors"

var (
	// ErrNotFound is returned by stores when no report exists for a run ID.
	ErrNotFound = errors.New("report not found")

	// ErrNilReport is returned when a nil report is handed to a store.
	ErrNilReport = errors.New("nil report")

	// ErrMissingRunID is returned when a report without a run ID is saved
	// or looked up.
	ErrMissingRunID = errors.New("missing run id")
)
