package environment

import "context"

// Environment tags a process with its deployment stage. The zero value
// means the stage is unknown.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Parse maps a free-form configuration value onto one of the three stages.
// Common short forms are accepted; anything unrecognized counts as
// Development so a misconfigured process fails safe toward verbose
// behavior.
func Parse(s string) Environment {
	switch s {
	case string(Production), "prod":
		return Production
	case string(Staging), "stage":
		return Staging
	default:
		return Development
	}
}

type ctxKey struct{}

// WithContext returns a child context tagged with env.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, ctxKey{}, env)
}

// FromContext reports the stage carried by ctx, or "" when it carries
// none.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(ctxKey{}).(Environment)
	return env
}

// IsDevelopment reports whether ctx is tagged with the development stage.
func IsDevelopment(ctx context.Context) bool { return FromContext(ctx) == Development }

// IsStaging reports whether ctx is tagged with the staging stage.
func IsStaging(ctx context.Context) bool { return FromContext(ctx) == Staging }

// IsProduction reports whether ctx is tagged with the production stage.
func IsProduction(ctx context.Context) bool { return FromContext(ctx) == Production }
