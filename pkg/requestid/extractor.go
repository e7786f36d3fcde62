package requestid

import (
	"context"
	"log/slog"
)

// LogKey is the attribute key the extractor emits.
const LogKey = "request_id"

// LoggerExtractor adapts FromContext for logger.WithContextExtractors, so
// every record logged while handling a request carries its ID.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		id := FromContext(ctx)
		if id == "" {
			return slog.Attr{}, false
		}
		return slog.String(LogKey, id), true
	}
}
