package ratelimit

import (
	"context"
	"time"
)

// Result describes the outcome of a rate limit check.
type Result struct {
	// Allowed reports whether the request may proceed.
	Allowed bool

	// Limit is the bucket capacity for the checked key.
	Limit int

	// Remaining is the number of requests left before the key is throttled.
	Remaining int

	// ResetAt is when capacity returns: the arrival time of the next
	// token for denied results, or the time the bucket is full again
	// for allowed ones.
	ResetAt time.Time
}

// RetryAfter returns how long the caller should wait before retrying.
// It is zero for allowed results.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}

// Limiter decides whether a request identified by key may proceed,
// consuming one token when it does.
type Limiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
}
