package config

import "errors"

var (
	// ErrParsingConfig wraps env tag parsing failures, including missing
	// required variables.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")
	// ErrLoadingEnv wraps a named env file that could not be read.
	ErrLoadingEnv = errors.New("failed to load env file")
	// ErrNilPointer reports a nil destination passed to Load.
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)
