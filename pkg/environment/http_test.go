package environment_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/phenokit/pkg/environment"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var seen environment.Environment
	h := environment.Middleware(environment.Production)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			seen = environment.FromContext(r.Context())
		},
	))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, environment.Production, seen)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := environment.LoggerExtractor()

	t.Run("emits the stage when tagged", func(t *testing.T) {
		t.Parallel()

		ctx := environment.WithContext(context.Background(), environment.Staging)
		attr, ok := extract(ctx)
		require.True(t, ok)
		assert.Equal(t, environment.LogKey, attr.Key)
		assert.Equal(t, "staging", attr.Value.String())
	})

	t.Run("stays silent when untagged", func(t *testing.T) {
		t.Parallel()

		_, ok := extract(context.Background())
		assert.False(t, ok)
	})
}
