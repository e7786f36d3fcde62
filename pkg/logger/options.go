package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrymomot/phenokit/pkg/environment"
)

// Option adjusts the logger configuration.
type Option func(*config)

// WithLevel sets the minimum level a record needs to be emitted.
func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat selects the handler encoding. Unknown formats panic so a
// misconfigured service stops at startup.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatJSON, FormatText:
			c.format = f
		default:
			panic(fmt.Errorf("unknown log format %q", f))
		}
	}
}

// WithTextFormatter selects the human-readable text encoding.
func WithTextFormatter() Option {
	return func(c *config) { c.format = FormatText }
}

// WithJSONFormatter selects the machine-readable JSON encoding.
func WithJSONFormatter() Option {
	return func(c *config) { c.format = FormatJSON }
}

// WithOutput redirects records to w. Nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.out = w
		}
	}
}

// WithHandlerOptions passes opts through to the slog handler, for
// ReplaceAttr and source annotation. A nil Level inside opts inherits the
// level configured with WithLevel.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(c *config) {
		if opts != nil {
			c.hopts = opts
		}
	}
}

// WithAttr attaches static attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) { c.static = append(c.static, attrs...) }
}

// WithContextExtractors registers callbacks that pull per-record
// attributes out of the log call's context. Nil entries are skipped.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extract = append(c.extract, ex)
			}
		}
	}
}

// WithDevelopment applies the development preset: text encoding at debug
// level, tagged with the service name.
func WithDevelopment(service string) Option {
	return preset(service, environment.Development, slog.LevelDebug, FormatText)
}

// WithStaging applies the staging preset: JSON at info level.
func WithStaging(service string) Option {
	return preset(service, environment.Staging, slog.LevelInfo, FormatJSON)
}

// WithProduction applies the production preset: JSON at info level.
func WithProduction(service string) Option {
	return preset(service, environment.Production, slog.LevelInfo, FormatJSON)
}

// WithEnvironment applies the preset matching a free-form stage string, as
// normalized by environment.Parse.
func WithEnvironment(env string, service string) Option {
	switch environment.Parse(env) {
	case environment.Production:
		return WithProduction(service)
	case environment.Staging:
		return WithStaging(service)
	default:
		return WithDevelopment(service)
	}
}

// preset stamps each record with the service and stage and applies the
// matching level and encoding. An empty service name disables the preset.
func preset(service string, env environment.Environment, level slog.Level, format Format) Option {
	return func(c *config) {
		if service == "" {
			return
		}
		c.level = level
		c.format = format
		if c.out == nil {
			c.out = os.Stdout
		}
		c.static = append(c.static,
			slog.String("service", service),
			slog.String("env", string(env)),
		)
	}
}
