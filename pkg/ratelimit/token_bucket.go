package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenBucket is an in-memory token bucket limiter. Each key owns a
// bucket of capacity burst that refills continuously at rate tokens
// per interval, so short traffic spikes are absorbed while the average
// rate stays bounded.
type TokenBucket struct {
	rate         int
	interval     time.Duration
	burst        int
	cleanupEvery time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket

	done      chan struct{}
	closeOnce sync.Once
}

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// TokenBucketOption configures a TokenBucket.
type TokenBucketOption func(*TokenBucket)

// WithBurst sets the bucket capacity. Values below the refill rate are
// raised to it so a full interval's worth of requests always fits.
func WithBurst(burst int) TokenBucketOption {
	return func(tb *TokenBucket) {
		if burst > 0 {
			tb.burst = burst
		}
	}
}

// WithCleanupInterval sets how often idle buckets are swept from
// memory. Non-positive values are ignored.
func WithCleanupInterval(interval time.Duration) TokenBucketOption {
	return func(tb *TokenBucket) {
		if interval > 0 {
			tb.cleanupEvery = interval
		}
	}
}

// NewTokenBucket creates a limiter that refills rate tokens per
// interval for every key. Close must be called to stop the background
// sweep of idle buckets.
func NewTokenBucket(rate int, interval time.Duration, opts ...TokenBucketOption) (*TokenBucket, error) {
	if rate <= 0 {
		return nil, ErrInvalidRate
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	tb := &TokenBucket{
		rate:         rate,
		interval:     interval,
		burst:        rate,
		buckets:      make(map[string]*bucket),
		done:         make(chan struct{}),
		cleanupEvery: time.Minute,
	}
	for _, opt := range opts {
		opt(tb)
	}
	if tb.burst < tb.rate {
		tb.burst = tb.rate
	}

	go tb.sweep()

	return tb, nil
}

// Allow consumes one token for key if available. The error is only
// non-nil for an empty key or a cancelled context, so callers can
// treat errors as "limiter unavailable" rather than "denied".
func (tb *TokenBucket) Allow(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now()

	tb.mu.Lock()
	defer tb.mu.Unlock()

	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(tb.burst), lastRefill: now}
		tb.buckets[key] = b
	} else {
		tb.refill(b, now)
	}

	allowed := b.tokens >= 1
	if allowed {
		b.tokens--
	}

	return &Result{
		Allowed:   allowed,
		Limit:     tb.burst,
		Remaining: int(b.tokens),
		ResetAt:   now.Add(tb.timeUntil(b, allowed)),
	}, nil
}

// Close stops the background sweep. It is safe to call more than once.
func (tb *TokenBucket) Close() {
	tb.closeOnce.Do(func() { close(tb.done) })
}

// refill credits the tokens accrued since the last refill, capped at
// the bucket capacity.
func (tb *TokenBucket) refill(b *bucket, now time.Time) {
	elapsed := now.Sub(b.lastRefill)
	if elapsed <= 0 {
		return
	}
	accrued := elapsed.Seconds() * float64(tb.rate) / tb.interval.Seconds()
	b.tokens = min(float64(tb.burst), b.tokens+accrued)
	b.lastRefill = now
}

// timeUntil reports how long the bucket needs to reach one token for a
// denied request, or full capacity for an allowed one.
func (tb *TokenBucket) timeUntil(b *bucket, allowed bool) time.Duration {
	target := 1.0
	if allowed {
		target = float64(tb.burst)
	}
	deficit := target - b.tokens
	if deficit <= 0 {
		return 0
	}
	perToken := tb.interval.Seconds() / float64(tb.rate)
	return time.Duration(deficit * perToken * float64(time.Second))
}

func (tb *TokenBucket) sweep() {
	ticker := time.NewTicker(tb.cleanupEvery)
	defer ticker.Stop()

	for {
		select {
		case <-tb.done:
			return
		case now := <-ticker.C:
			tb.mu.Lock()
			for key, b := range tb.buckets {
				// A full bucket is indistinguishable from a fresh one.
				if tb.refill(b, now); b.tokens >= float64(tb.burst) {
					delete(tb.buckets, key)
				}
			}
			tb.mu.Unlock()
		}
	}
}
