// Package ratelimit provides an in-memory token bucket rate limiter
// with HTTP middleware for throttling clients of the validation API.
//
// Each key owns a bucket that refills continuously, so clients can
// burst up to the bucket capacity and then sustain the configured
// average rate. Buckets live in process memory; a background sweep
// reclaims buckets that have refilled completely, which keeps the map
// bounded by the set of recently active keys.
//
// # Usage
//
//	limiter, err := ratelimit.NewTokenBucket(60, time.Minute,
//		ratelimit.WithBurst(120),
//	)
//	if err != nil {
//		return err
//	}
//	defer limiter.Close()
//
//	r := chi.NewRouter()
//	r.Use(ratelimit.Middleware(limiter, ratelimit.ClientIP))
//
// The middleware reports limiter state through X-RateLimit-Limit,
// X-RateLimit-Remaining and X-RateLimit-Reset headers and answers
// throttled requests with 429 and a Retry-After header.
//
// # Failure policy
//
// The middleware fails open: requests whose key cannot be derived and
// requests for which the limiter errors are passed through rather than
// rejected. Rate limiting protects capacity; it must not become the
// outage itself.
//
// # Error Handling
//
// The package defines the following sentinel errors:
//   - ErrInvalidRate: limiter constructed with a non-positive rate
//   - ErrInvalidInterval: limiter constructed with a non-positive interval
//   - ErrKeyRequired: Allow called with an empty key
package ratelimit
