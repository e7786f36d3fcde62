package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header is the canonical request ID header.
const Header = "X-Request-ID"

// headerMaxLen caps client-supplied IDs so a hostile header cannot bloat
// logs or context values.
const headerMaxLen = 128

type ctxKey struct{}

// Middleware guarantees every request carries a usable correlation ID. An
// acceptable client-supplied header value is reused, anything else is
// replaced with a fresh UUID. The ID is stored in the request context and
// echoed on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !acceptable(id) {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}

// WithContext returns a child context carrying the request ID.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext reports the request ID carried by ctx, or "" when there is
// none.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// acceptable restricts reused IDs to short tokens of unreserved
// characters.
func acceptable(id string) bool {
	if id == "" || len(id) > headerMaxLen {
		return false
	}
	for i := range len(id) {
		switch c := id[i]; {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
