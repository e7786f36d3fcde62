package ratelimit

import (
	"math"
	"net/http"
	"strconv"
)

// Middleware enforces limiter decisions per request key. Requests
// without a key pass through unthrottled, as do requests for which the
// limiter errors, so a degraded limiter cannot take the API down with
// it. Throttled requests receive 429 with a Retry-After header.
func Middleware(limiter Limiter, keyFunc KeyFunc) func(http.Handler) http.Handler {
	if limiter == nil {
		panic("ratelimit: limiter is required")
	}
	if keyFunc == nil {
		panic("ratelimit: key function is required")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := limiter.Allow(r.Context(), key)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			annotate(w.Header(), res)
			if res.Allowed {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Retry-After", strconv.Itoa(retrySeconds(res)))
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		})
	}
}

// annotate exposes the limiter decision on the conventional X-RateLimit
// response headers.
func annotate(h http.Header, res *Result) {
	h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
}

// retrySeconds rounds the wait up to whole seconds, floored at one.
func retrySeconds(res *Result) int {
	return max(1, int(math.Ceil(res.RetryAfter().Seconds())))
}
