// Package requestid stamps every HTTP request with a correlation ID.
//
// The middleware reuses an acceptable client-supplied X-Request-ID header
// and mints a UUID otherwise. The chosen ID travels in the request context,
// returns to the client on the response header, and reaches log records
// through LoggerExtractor. The package never returns errors; a bad incoming
// ID is simply replaced.
//
// # Usage
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
// Handlers recover the ID with FromContext(r.Context()).
package requestid
