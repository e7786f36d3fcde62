package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/phenokit"
)

// DefaultTool is recorded in Meta.Tool when the caller does not set one.
const DefaultTool = "phenokit"

// Meta identifies one validation run. The digests pin the exact schema and
// source contents the run saw.
type Meta struct {
	RunID        uuid.UUID `json:"run_id"`
	CreatedAt    time.Time `json:"created_at"`
	Tool         string    `json:"tool"`
	SchemaName   string    `json:"schema_name"`
	SchemaDigest string    `json:"schema_digest,omitempty"`
	Source       string    `json:"source,omitempty"`
	SourceDigest string    `json:"source_digest,omitempty"`
}

// Counts aggregates a run.
type Counts struct {
	Records    int `json:"records"`
	Accepted   int `json:"accepted"`
	Rejected   int `json:"rejected"`
	Violations int `json:"violations"`
}

// Rejection captures one rejected record by its zero-based position in the
// source together with everything that was wrong with it.
type Rejection struct {
	Index      int                 `json:"index"`
	Violations phenokit.Violations `json:"violations"`
}

// Report is the complete outcome of one validation run. Accepted records
// are only counted; rejected ones are kept in full so a report alone is
// enough to fix the source file.
type Report struct {
	Meta       Meta        `json:"meta"`
	Counts     Counts      `json:"counts"`
	Rejections []Rejection `json:"rejections,omitempty"`
}

// New starts a report for one run, filling in a fresh run ID, the current
// time and the default tool name where meta leaves them zero.
func New(meta Meta) *Report {
	if meta.RunID == uuid.Nil {
		meta.RunID = uuid.New()
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}
	if meta.Tool == "" {
		meta.Tool = DefaultTool
	}
	return &Report{Meta: meta}
}

// Add tallies the outcome of record i. Reports are filled by a single
// goroutine; Add is not safe for concurrent use.
func (r *Report) Add(i int, res phenokit.Result) {
	r.Counts.Records++
	if res.Accepted() {
		r.Counts.Accepted++
		return
	}
	r.Counts.Rejected++
	r.Counts.Violations += len(res.Violations)
	r.Rejections = append(r.Rejections, Rejection{Index: i, Violations: res.Violations})
}

// Sink adapts the report to the callback shape of phenokit.ValidateStream.
func (r *Report) Sink() func(int, phenokit.Result) error {
	return func(i int, res phenokit.Result) error {
		r.Add(i, res)
		return nil
	}
}

// Clean reports whether the run finished without a single rejection.
func (r *Report) Clean() bool {
	return r.Counts.Rejected == 0
}
