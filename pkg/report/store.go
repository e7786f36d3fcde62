package report

import (
	"context"

	"github.com/google/uuid"
)

// Store persists finished run reports. Saving an existing run ID replaces
// the stored report.
type Store interface {
	Save(ctx context.Context, r *Report) error
	Load(ctx context.Context, runID uuid.UUID) (*Report, error)
	List(ctx context.Context) ([]Meta, error)
}
