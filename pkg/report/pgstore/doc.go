// Package pgstore persists validation run reports in PostgreSQL.
//
// One row per run lives in the validation_runs table; rejected records are
// kept as a JSONB document inside the row, so the full report round-trips
// without joins. Migrations are embedded in the binary and applied with
// goose:
//
//	pool, err := pgstore.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pgstore.Migrate(ctx, pool, log); err != nil {
//		return err
//	}
//	store := pgstore.New(pool)
//
// The store satisfies report.Store.
package pgstore
