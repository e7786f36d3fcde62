// Package logger builds the slog loggers the validation tools run on.
//
// New assembles a *slog.Logger from functional options: encoding (text or
// JSON), minimum level, output, static attributes, and per-environment
// presets. Context extractors registered with WithContextExtractors run on
// every emitted record and lift request-scoped values, such as the request
// ID, into the record without the call sites mentioning them.
//
// The attribute constructors (RunID, Schema, Source, Records, Violations,
// Duration, ...) pin the key vocabulary so the same concept always logs
// under the same name. Error and Errors swallow nil, so they can be passed
// unconditionally.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "phenod"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "batch validated",
//		logger.Schema("strain_performance"),
//		logger.Records(n),
//		logger.Duration(time.Since(start)),
//	)
package logger
