package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/phenokit/pkg/report"
)

// Store implements report.Store on a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an already connected pool. The caller keeps ownership and
// closes it.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Save upserts the run row, replacing any previous report of the same run.
func (s *Store) Save(ctx context.Context, r *report.Report) error {
	if r == nil {
		return report.ErrNilReport
	}
	if r.Meta.RunID == uuid.Nil {
		return report.ErrMissingRunID
	}

	rejections, err := json.Marshal(r.Rejections)
	if err != nil {
		return fmt.Errorf("encode rejections: %w", err)
	}

	const q = `
		INSERT INTO validation_runs (
			run_id, created_at, tool, schema_name, schema_digest,
			source, source_digest, records, accepted, rejected,
			violations, rejections
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::jsonb)
		ON CONFLICT (run_id) DO UPDATE SET
			created_at    = EXCLUDED.created_at,
			tool          = EXCLUDED.tool,
			schema_name   = EXCLUDED.schema_name,
			schema_digest = EXCLUDED.schema_digest,
			source        = EXCLUDED.source,
			source_digest = EXCLUDED.source_digest,
			records       = EXCLUDED.records,
			accepted      = EXCLUDED.accepted,
			rejected      = EXCLUDED.rejected,
			violations    = EXCLUDED.violations,
			rejections    = EXCLUDED.rejections`

	_, err = s.pool.Exec(ctx, q,
		r.Meta.RunID, r.Meta.CreatedAt, r.Meta.Tool, r.Meta.SchemaName, r.Meta.SchemaDigest,
		r.Meta.Source, r.Meta.SourceDigest, r.Counts.Records, r.Counts.Accepted,
		r.Counts.Rejected, r.Counts.Violations, string(rejections),
	)
	if err != nil {
		return fmt.Errorf("save report %s: %w", r.Meta.RunID, err)
	}
	return nil
}

// Load reads one run row back into a report.
func (s *Store) Load(ctx context.Context, runID uuid.UUID) (*report.Report, error) {
	if runID == uuid.Nil {
		return nil, report.ErrMissingRunID
	}

	const q = `
		SELECT run_id, created_at, tool, schema_name, schema_digest,
		       source, source_digest, records, accepted, rejected,
		       violations, rejections
		FROM validation_runs
		WHERE run_id = $1`

	var (
		r          report.Report
		rejections []byte
	)
	err := s.pool.QueryRow(ctx, q, runID).Scan(
		&r.Meta.RunID, &r.Meta.CreatedAt, &r.Meta.Tool, &r.Meta.SchemaName, &r.Meta.SchemaDigest,
		&r.Meta.Source, &r.Meta.SourceDigest, &r.Counts.Records, &r.Counts.Accepted,
		&r.Counts.Rejected, &r.Counts.Violations, &rejections,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", report.ErrNotFound, runID)
		}
		return nil, fmt.Errorf("load report %s: %w", runID, err)
	}

	if err := json.Unmarshal(rejections, &r.Rejections); err != nil {
		return nil, fmt.Errorf("decode rejections of %s: %w", runID, err)
	}
	return &r, nil
}

// List returns run metadata, newest first.
func (s *Store) List(ctx context.Context) ([]report.Meta, error) {
	const q = `
		SELECT run_id, created_at, tool, schema_name, schema_digest,
		       source, source_digest
		FROM validation_runs
		ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var metas []report.Meta
	for rows.Next() {
		var m report.Meta
		if err := rows.Scan(
			&m.RunID, &m.CreatedAt, &m.Tool, &m.SchemaName,
			&m.SchemaDigest, &m.Source, &m.SourceDigest,
		); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		metas = append(metas, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return metas, nil
}
