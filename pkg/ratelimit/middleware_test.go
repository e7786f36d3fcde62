package ratelimit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/phenokit/pkg/ratelimit"
)

type stubLimiter struct {
	result *ratelimit.Result
	err    error
	keys   []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (*ratelimit.Result, error) {
	s.keys = append(s.keys, key)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func staticKey(key string) ratelimit.KeyFunc {
	return func(*http.Request) string { return key }
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("allowed request passes with headers", func(t *testing.T) {
		t.Parallel()

		stub := &stubLimiter{result: &ratelimit.Result{
			Allowed:   true,
			Limit:     10,
			Remaining: 9,
			ResetAt:   time.Now().Add(time.Minute),
		}}
		handler := ratelimit.Middleware(stub, staticKey("client"))(okHandler)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "10", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "9", rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
		assert.Equal(t, []string{"client"}, stub.keys)
	})

	t.Run("throttled request gets 429", func(t *testing.T) {
		t.Parallel()

		stub := &stubLimiter{result: &ratelimit.Result{
			Allowed:   false,
			Limit:     10,
			Remaining: 0,
			ResetAt:   time.Now().Add(90 * time.Second),
		}}
		handler := ratelimit.Middleware(stub, staticKey("client"))(okHandler)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), "Too Many Requests")

		retryAfter, err := strconv.Atoi(rec.Header().Get("Retry-After"))
		require.NoError(t, err)
		assert.InDelta(t, 90, retryAfter, 5)
	})

	t.Run("empty key skips limiting", func(t *testing.T) {
		t.Parallel()

		stub := &stubLimiter{result: &ratelimit.Result{Allowed: false}}
		handler := ratelimit.Middleware(stub, staticKey(""))(okHandler)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
		assert.Empty(t, stub.keys)
	})

	t.Run("limiter errors fail open", func(t *testing.T) {
		t.Parallel()

		stub := &stubLimiter{err: errors.New("limiter unavailable")}
		handler := ratelimit.Middleware(stub, staticKey("client"))(okHandler)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("panics without limiter", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			ratelimit.Middleware(nil, staticKey("client"))
		})
	})

	t.Run("panics without key function", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			ratelimit.Middleware(&stubLimiter{}, nil)
		})
	})

	t.Run("clients are throttled separately", func(t *testing.T) {
		t.Parallel()

		limiter, err := ratelimit.NewTokenBucket(1, time.Hour)
		require.NoError(t, err)
		defer limiter.Close()

		handler := ratelimit.Middleware(limiter, ratelimit.ClientIP)(okHandler)

		send := func(ip string) int {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("X-Forwarded-For", ip)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, r)
			return rec.Code
		}

		assert.Equal(t, http.StatusNoContent, send("203.0.113.7"))
		assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.7"))
		assert.Equal(t, http.StatusNoContent, send("203.0.113.8"))
	})
}
