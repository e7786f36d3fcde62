package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

// Server runs an http.Server with signal-aware graceful shutdown. The zero
// value is not usable; construct one with New or NewFromConfig.
type Server struct {
	srv     *http.Server
	log     *slog.Logger
	grace   time.Duration
	onStart []func(context.Context)
	onStop  []func(context.Context)
	running atomic.Bool
}

// New assembles a Server listening on addr. Options adjust timeouts,
// logging, and lifecycle hooks; defaults suit a small JSON API.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		srv: &http.Server{
			Addr:              addr,
			ReadTimeout:       30 * time.Second,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       2 * time.Minute,
		},
		log:   slog.New(slog.DiscardHandler),
		grace: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run serves handler until ctx is cancelled, an interrupt or TERM signal
// arrives, or the listener fails. It blocks for the lifetime of the server
// and drains in-flight requests before returning. A concurrent second Run
// reports ErrAlreadyRunning.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		return errors.Join(ErrServe, errors.New("nil handler"))
	}
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer s.running.Store(false)

	s.srv.Handler = handler

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for _, hook := range s.onStart {
		hook(ctx)
	}
	s.log.InfoContext(ctx, "http server listening", slog.String("addr", s.srv.Addr))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return errors.Join(ErrServe, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return s.drain()
	})
	return g.Wait()
}

// drain stops accepting connections and waits up to the grace period for
// in-flight requests to finish.
func (s *Server) drain() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()

	err := s.srv.Shutdown(ctx)
	for _, hook := range s.onStop {
		hook(ctx)
	}
	s.log.Info("http server stopped")
	if err != nil {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
