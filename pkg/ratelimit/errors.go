package ratelimit

import "errors"

var (
	// ErrInvalidRate is returned when a limiter is constructed with a
	// non-positive refill rate.
	ErrInvalidRate = errors.New("rate must be positive")
	// ErrInvalidInterval is returned when a limiter is constructed with
	// a non-positive refill interval.
	ErrInvalidInterval = errors.New("interval must be positive")
	// ErrKeyRequired is returned by Allow when the key is empty.
	ErrKeyRequired = errors.New("key is required")
)
