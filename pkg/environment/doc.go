// Package environment propagates the deployment stage (development,
// staging, production) through contexts, HTTP requests, and log records.
//
// Parse normalizes a configuration string into an Environment; Middleware
// tags request contexts with it; FromContext and the Is predicates read it
// back; LoggerExtractor surfaces it as an "env" attribute on slog records.
// Nothing here returns errors, and an untagged context simply reads as "".
//
// # Usage
//
//	env := environment.Parse(cfg.Env)
//
//	r := chi.NewRouter()
//	r.Use(environment.Middleware(env))
//
//	if environment.IsProduction(r.Context()) {
//		// quiet down debug output
//	}
package environment
