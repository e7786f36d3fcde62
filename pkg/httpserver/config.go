package httpserver

import "time"

// Config carries the server settings an application loads from its
// environment. Zero values fall back to the package defaults.
type Config struct {
	// Addr is the listen address, host part optional.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`
	// ReadTimeout bounds reading an entire request.
	ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	// ReadHeaderTimeout bounds reading the request headers alone.
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"10s"`
	// WriteTimeout bounds writing a response.
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	// IdleTimeout bounds how long a keep-alive connection may sit idle.
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	// ShutdownGrace is how long a drain waits for in-flight requests.
	ShutdownGrace time.Duration `env:"HTTP_SHUTDOWN_GRACE" envDefault:"10s"`
}

// Options expands the config into the equivalent Option list. Zero fields
// produce no option, leaving the package default in place.
func (c Config) Options() []Option {
	return []Option{
		WithReadTimeout(c.ReadTimeout),
		WithReadHeaderTimeout(c.ReadHeaderTimeout),
		WithWriteTimeout(c.WriteTimeout),
		WithIdleTimeout(c.IdleTimeout),
		WithShutdownGrace(c.ShutdownGrace),
	}
}

// NewFromConfig builds a Server from cfg. Options passed here are applied
// after the config expansion, so they win on conflict.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	return New(addr, append(cfg.Options(), opts...)...)
}
