package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/phenokit"
	"github.com/dmitrymomot/phenokit/pkg/environment"
	"github.com/dmitrymomot/phenokit/pkg/logger"
	"github.com/dmitrymomot/phenokit/pkg/ratelimit"
	"github.com/dmitrymomot/phenokit/pkg/tableschema"
)

func testRouter(t *testing.T, maxBody int64) http.Handler {
	t.Helper()
	a := &api{
		registry: tableschema.Builtin(),
		log:      logger.New(logger.WithOutput(io.Discard)),
		maxBody:  maxBody,
	}
	return newRouter(a, environment.Development, nil)
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, testRouter(t, 1<<20), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListSchemas(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, testRouter(t, 1<<20), http.MethodGet, "/v1/schemas", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp schemasResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Schemas, "strain_performance")
	assert.Contains(t, resp.Schemas, "medium")
}

func TestGetSchema(t *testing.T) {
	t.Parallel()

	t.Run("known schema", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, testRouter(t, 1<<20), http.MethodGet, "/v1/schemas/strain_performance", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp schemaResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "strain_performance", resp.Name)
		require.NotEmpty(t, resp.Fields)
		assert.Equal(t, "compound", resp.Fields[0].Name)
	})

	t.Run("unknown schema", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, testRouter(t, 1<<20), http.MethodGet, "/v1/schemas/nope", "")
		require.Equal(t, http.StatusNotFound, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "nope")
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("mixed batch", func(t *testing.T) {
		t.Parallel()

		body := `[
			{"compound": "shikimate", "production": "4.56", "growth": "0.21", "medium": "M9_medium.csv"},
			{"compound": "", "production": "fast", "growth": 11}
		]`
		rec := doRequest(t, testRouter(t, 1<<20), http.MethodPost, "/v1/schemas/strain_performance/validate", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp validateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "strain_performance", resp.Schema)
		assert.NotEqual(t, uuid.Nil, resp.RunID)
		assert.Equal(t, 2, resp.Counts.Records)
		assert.Equal(t, 1, resp.Counts.Accepted)
		assert.Equal(t, 1, resp.Counts.Rejected)
		assert.Equal(t, 3, resp.Counts.Violations)
		require.Len(t, resp.Results, 2)

		accepted := resp.Results[0]
		assert.Empty(t, accepted.Violations)
		assert.Equal(t, 4.56, accepted.Record["production"])
		assert.Equal(t, 0.21, accepted.Record["growth"])
		assert.Equal(t, "shikimate", accepted.Record["compound"])

		rejected := resp.Results[1]
		assert.Nil(t, rejected.Record)
		require.Len(t, rejected.Violations, 3)
		assert.True(t, rejected.Violations.HasCode("compound", phenokit.CodeMissingRequired))
		assert.True(t, rejected.Violations.HasCode("production", phenokit.CodeWrongType))
		assert.True(t, rejected.Violations.HasCode("growth", phenokit.CodeAboveMaximum))
	})

	t.Run("empty batch", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, testRouter(t, 1<<20), http.MethodPost, "/v1/schemas/medium/validate", `[]`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp validateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Zero(t, resp.Counts.Records)
		assert.Empty(t, resp.Results)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, testRouter(t, 1<<20), http.MethodPost, "/v1/schemas/medium/validate", `{"not": "an array"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown schema", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, testRouter(t, 1<<20), http.MethodPost, "/v1/schemas/ghost/validate", `[]`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("oversized body", func(t *testing.T) {
		t.Parallel()

		body := `[{"compound": "a very long compound name to overflow the limit"}]`
		rec := doRequest(t, testRouter(t, 16), http.MethodPost, "/v1/schemas/strain_performance/validate", body)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}

func TestRateLimiting(t *testing.T) {
	t.Parallel()

	limiter, err := ratelimit.NewTokenBucket(1, time.Hour)
	require.NoError(t, err)
	defer limiter.Close()

	a := &api{
		registry: tableschema.Builtin(),
		log:      logger.New(logger.WithOutput(io.Discard)),
		maxBody:  1 << 20,
	}
	h := newRouter(a, environment.Development, limiter)

	send := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.9")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := send("/v1/schemas")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := send("/v1/schemas")
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	// Health probes bypass the limited group.
	health := send("/healthz")
	assert.Equal(t, http.StatusOK, health.Code)
}
