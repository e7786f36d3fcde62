// Package report captures the outcome of one validation run and persists it
// through pluggable stores.
//
// A Report pairs run metadata (who validated what, when, against which
// schema) with aggregate counts and the full list of rejected records. The
// metadata carries content digests of both the schema and the source file,
// so old reports stay attributable to the exact inputs that produced them
// even after files move or change.
//
// # Building a report
//
//	rep := report.New(report.Meta{
//		SchemaName:   "strain_performance",
//		SchemaDigest: report.Digest(schemaSrc),
//		Source:       "shikimate.csv",
//	})
//	err := phenokit.ValidateStream(ctx, schema, src, rep.Sink())
//
// # Stores
//
// Four interchangeable Store implementations ship with the package:
//
//   - LocalStore: a directory of <run-id>.json files, optionally gzipped
//   - S3Store: the same layout on any S3-compatible object store
//   - pgstore.Store: a validation_runs table in PostgreSQL
//   - mongostore.Store: a validation_runs collection in MongoDB
//
// All of them resolve missing runs to ErrNotFound and list run metadata
// newest first.
package report
