package httpserver

import (
	"context"
	"log/slog"
	"time"
)

// Option adjusts a Server during construction. Options with non-positive
// durations or nil arguments are ignored.
type Option func(*Server)

// WithLogger routes lifecycle logs through log. Logging is off by default.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithReadTimeout bounds reading an entire request, body included.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.srv.ReadTimeout = d
		}
	}
}

// WithReadHeaderTimeout bounds reading the request headers alone.
func WithReadHeaderTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.srv.ReadHeaderTimeout = d
		}
	}
}

// WithWriteTimeout bounds writing a response.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.srv.WriteTimeout = d
		}
	}
}

// WithIdleTimeout bounds how long a keep-alive connection may sit idle.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.srv.IdleTimeout = d
		}
	}
}

// WithShutdownGrace sets how long a drain waits for in-flight requests.
func WithShutdownGrace(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.grace = d
		}
	}
}

// WithStartHook registers fn to run right before the listener opens. Hooks
// run in registration order on the Run goroutine.
func WithStartHook(fn func(context.Context)) Option {
	return func(s *Server) {
		if fn != nil {
			s.onStart = append(s.onStart, fn)
		}
	}
}

// WithStopHook registers fn to run after the drain completes.
func WithStopHook(fn func(context.Context)) Option {
	return func(s *Server) {
		if fn != nil {
			s.onStop = append(s.onStop, fn)
		}
	}
}
