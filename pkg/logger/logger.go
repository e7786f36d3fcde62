package logger

import (
	"io"
	"log/slog"
	"os"
)

// Format selects the handler encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

type config struct {
	level   slog.Level
	format  Format
	out     io.Writer
	static  []slog.Attr
	hopts   *slog.HandlerOptions
	extract []ContextExtractor
}

// New builds a *slog.Logger from the options. Without options it writes
// JSON at info level to stdout. Registered context extractors run on every
// emitted record, after level filtering.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		level:  slog.LevelInfo,
		format: FormatJSON,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var h slog.Handler
	switch hopts := cfg.handlerOptions(); cfg.format {
	case FormatText:
		h = slog.NewTextHandler(cfg.out, hopts)
	default:
		h = slog.NewJSONHandler(cfg.out, hopts)
	}
	if len(cfg.static) > 0 {
		h = h.WithAttrs(cfg.static)
	}
	return slog.New(newContextHandler(h, cfg.extract))
}

// handlerOptions merges the configured level into user-supplied handler
// options. An explicit Level inside WithHandlerOptions wins over WithLevel.
func (c *config) handlerOptions() *slog.HandlerOptions {
	if c.hopts == nil {
		return &slog.HandlerOptions{Level: c.level}
	}
	if c.hopts.Level == nil {
		c.hopts.Level = c.level
	}
	return c.hopts
}

// SetAsDefault installs l as both the slog and the log package default.
func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}
