package logger

import (
	"log/slog"
	"strconv"
)

// The constructors below fix the attribute vocabulary of the validation
// tools so the same concept always logs under the same key.

// Error reports one error under "error". A nil error yields an empty Attr,
// which slog drops, so callers need no nil check.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under "errors", indexed by position.
// All-nil input yields an empty Attr.
func Errors(errs ...error) slog.Attr {
	group := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			group = append(group, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(group) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(group...)}
}

// Group nests attrs under name.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// RunID reports the validation run identifier under "run_id". Nil yields
// an empty Attr.
func RunID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("run_id", id)
}

// Schema reports the schema name under "schema".
func Schema(name string) slog.Attr { return slog.String("schema", name) }

// Source reports the input origin, a file path or stream name, under
// "source".
func Source(name string) slog.Attr { return slog.String("source", name) }

// Field reports a schema field name under "field".
func Field(name string) slog.Attr { return slog.String("field", name) }

// RecordIndex reports a zero-based record position under "record_index".
func RecordIndex(i int) slog.Attr { return slog.Int("record_index", i) }

// Records reports a record count under "records".
func Records(n int) slog.Attr { return slog.Int("records", n) }

// Violations reports a violation count under "violations".
func Violations(n int) slog.Attr { return slog.Int("violations", n) }

// Workers reports the worker pool size under "workers".
func Workers(n int) slog.Attr { return slog.Int("workers", n) }

// Duration reports an elapsed time under "duration".
func Duration(d any) slog.Attr { return slog.Any("duration", d) }

// Component reports the emitting component under "component".
func Component(name string) slog.Attr { return slog.String("component", name) }

// Event reports a lifecycle event name under "event".
func Event(name string) slog.Attr { return slog.String("event", name) }
