// Package httpserver runs an http.Server with graceful, signal-aware
// shutdown and slog lifecycle logging.
//
// Run blocks until the context is cancelled, a SIGINT or SIGTERM arrives,
// or the listener fails. On shutdown it stops accepting connections and
// waits up to a grace period for in-flight requests to finish. Healthz
// builds the matching liveness/readiness probe handler.
//
// # Usage
//
//	srv := httpserver.New(":8080",
//		httpserver.WithLogger(log),
//		httpserver.WithShutdownGrace(15*time.Second),
//	)
//
//	r := chi.NewRouter()
//	r.Get("/healthz", httpserver.Healthz(log))
//
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Applications that configure the server from the environment load a Config
// and call NewFromConfig instead of New.
//
// # Error Handling
//
// Run reports three sentinel conditions, each inspectable with errors.Is:
//
//   - ErrAlreadyRunning: a second Run raced an active one
//   - ErrServe: the listener could not start or failed while serving
//   - ErrShutdown: the drain did not finish within the grace period
package httpserver
