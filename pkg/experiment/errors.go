package experiment

import "errors"

var (
	// ErrInvalidConfig is the umbrella error wrapped by every configuration
	// defect.
	ErrInvalidConfig = errors.New("invalid experiment configuration")

	// ErrUnsupportedVersion indicates a configuration written for another
	// version of the tool.
	ErrUnsupportedVersion = errors.New("unsupported configuration version")

	// ErrMissingFilename indicates a medium or experiment without a data
	// file.
	ErrMissingFilename = errors.New("missing filename")

	// ErrUnknownMedium indicates an experiment referencing a medium the
	// configuration does not define.
	ErrUnknownMedium = errors.New("unknown medium reference")

	// ErrIncompleteRecord indicates a record that lacks the typed fields of
	// a strain performance measurement, usually because it never went
	// through validation.
	ErrIncompleteRecord = errors.New("record is not a typed strain performance measurement")
)
