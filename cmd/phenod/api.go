package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/phenokit"
	"github.com/dmitrymomot/phenokit/pkg/environment"
	"github.com/dmitrymomot/phenokit/pkg/httpserver"
	"github.com/dmitrymomot/phenokit/pkg/logger"
	"github.com/dmitrymomot/phenokit/pkg/ratelimit"
	"github.com/dmitrymomot/phenokit/pkg/report"
	"github.com/dmitrymomot/phenokit/pkg/requestid"
	"github.com/dmitrymomot/phenokit/pkg/tableschema"
)

// api serves stateless record validation over a schema registry. Nothing
// is persisted between requests; every response is derived from the request
// body and the registry alone.
type api struct {
	registry *tableschema.Registry
	log      *slog.Logger
	maxBody  int64
}

// newRouter assembles the HTTP surface. The health probe stays outside
// the rate limited group so orchestrator checks are never throttled;
// a nil limiter disables throttling entirely.
func newRouter(a *api, env environment.Environment, limiter ratelimit.Limiter) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(environment.Middleware(env))

	r.Get("/healthz", httpserver.Healthz(a.log))
	r.Route("/v1", func(r chi.Router) {
		if limiter != nil {
			r.Use(ratelimit.Middleware(limiter, ratelimit.ClientIP))
		}
		r.Get("/schemas", a.listSchemas)
		r.Get("/schemas/{schema}", a.getSchema)
		r.Post("/schemas/{schema}/validate", a.validate)
	})
	return r
}

type schemasResponse struct {
	Schemas []string `json:"schemas"`
}

type schemaResponse struct {
	Name   string                  `json:"name"`
	Fields []tableschema.FieldSpec `json:"fields"`
}

type recordResult struct {
	Index      int                 `json:"index"`
	Record     phenokit.Record     `json:"record,omitempty"`
	Violations phenokit.Violations `json:"violations,omitempty"`
}

type validateResponse struct {
	Schema  string         `json:"schema"`
	RunID   uuid.UUID      `json:"run_id"`
	Counts  report.Counts  `json:"counts"`
	Results []recordResult `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *api) listSchemas(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, schemasResponse{Schemas: a.registry.Names()})
}

func (a *api) getSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "schema")
	schema, err := a.registry.Get(name)
	if err != nil {
		a.respondError(w, r, http.StatusNotFound, fmt.Sprintf("unknown schema %q", name))
		return
	}
	respondJSON(w, http.StatusOK, schemaResponse{Name: name, Fields: schema.Fields()})
}

func (a *api) validate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "schema")
	schema, err := a.registry.Get(name)
	if err != nil {
		a.respondError(w, r, http.StatusNotFound, fmt.Sprintf("unknown schema %q", name))
		return
	}

	var records []phenokit.Record
	body := http.MaxBytesReader(w, r.Body, a.maxBody)
	if err := json.NewDecoder(body).Decode(&records); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.respondError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		a.respondError(w, r, http.StatusBadRequest, "request body must be a JSON array of records")
		return
	}

	start := time.Now()
	results, err := phenokit.ValidateAll(r.Context(), schema, records)
	if err != nil {
		a.respondError(w, r, http.StatusInternalServerError, "validation aborted")
		return
	}

	rep := report.New(report.Meta{SchemaName: name})
	resp := validateResponse{
		Schema:  name,
		RunID:   rep.Meta.RunID,
		Results: make([]recordResult, len(results)),
	}
	for i, res := range results {
		rep.Add(i, res)
		resp.Results[i] = recordResult{Index: i, Record: res.Record, Violations: res.Violations}
	}
	resp.Counts = rep.Counts

	a.log.InfoContext(r.Context(), "batch validated",
		logger.RunID(rep.Meta.RunID),
		logger.Schema(name),
		logger.Records(rep.Counts.Records),
		logger.Violations(rep.Counts.Violations),
		logger.Duration(time.Since(start).Round(time.Microsecond)),
	)
	respondJSON(w, http.StatusOK, resp)
}

func (a *api) respondError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	a.log.DebugContext(r.Context(), "request rejected",
		slog.Int("status", status),
		slog.String("reason", msg),
	)
	respondJSON(w, status, errorResponse{Error: msg})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
