package httpserver

import "errors"

var (
	// ErrAlreadyRunning means Run was called while a previous Run is still active.
	ErrAlreadyRunning = errors.New("http server already running")
	// ErrServe wraps listener and serve failures.
	ErrServe = errors.New("http server serve failed")
	// ErrShutdown wraps graceful drain failures.
	ErrShutdown = errors.New("http server shutdown failed")
)
