package main

import (
	"context"
	"os"
	"time"

	"github.com/dmitrymomot/phenokit/pkg/config"
	"github.com/dmitrymomot/phenokit/pkg/environment"
	"github.com/dmitrymomot/phenokit/pkg/httpserver"
	"github.com/dmitrymomot/phenokit/pkg/logger"
	"github.com/dmitrymomot/phenokit/pkg/ratelimit"
	"github.com/dmitrymomot/phenokit/pkg/requestid"
	"github.com/dmitrymomot/phenokit/pkg/tableschema"
)

type appConfig struct {
	Addr            string        `env:"PHENOD_ADDR" envDefault:":8080"`
	Env             string        `env:"PHENOD_ENV" envDefault:"development"`
	ReadTimeout     time.Duration `env:"PHENOD_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"PHENOD_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"PHENOD_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"PHENOD_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxBodyBytes    int64         `env:"PHENOD_MAX_BODY_BYTES" envDefault:"10485760"`

	// RateLimit of 0 disables throttling. RateBurst of 0 lets the
	// burst default to the rate.
	RateLimit  int           `env:"PHENOD_RATE_LIMIT" envDefault:"0"`
	RateWindow time.Duration `env:"PHENOD_RATE_WINDOW" envDefault:"1m"`
	RateBurst  int           `env:"PHENOD_RATE_BURST" envDefault:"0"`
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	env := environment.Parse(cfg.Env)
	log := logger.New(
		logger.WithEnvironment(cfg.Env, "phenod"),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	a := &api{
		registry: tableschema.Builtin(),
		log:      log,
		maxBody:  cfg.MaxBodyBytes,
	}

	var limiter ratelimit.Limiter
	if cfg.RateLimit > 0 {
		var opts []ratelimit.TokenBucketOption
		if cfg.RateBurst > 0 {
			opts = append(opts, ratelimit.WithBurst(cfg.RateBurst))
		}
		tb, err := ratelimit.NewTokenBucket(cfg.RateLimit, cfg.RateWindow, opts...)
		if err != nil {
			log.Error("rate limiter misconfigured", logger.Error(err))
			os.Exit(1)
		}
		defer tb.Close()
		limiter = tb
	}

	srv := httpserver.NewFromConfig(httpserver.Config{
		Addr:          cfg.Addr,
		ReadTimeout:   cfg.ReadTimeout,
		WriteTimeout:  cfg.WriteTimeout,
		IdleTimeout:   cfg.IdleTimeout,
		ShutdownGrace: cfg.ShutdownTimeout,
	}, httpserver.WithLogger(log))

	if err := srv.Run(context.Background(), newRouter(a, env, limiter)); err != nil {
		log.Error("server failed", logger.Error(err))
		os.Exit(1)
	}
}
