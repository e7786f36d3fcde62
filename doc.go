// Package phenokit validates strain phenotype observations against table
// schemata before the observations are compared with metabolic model
// predictions.
//
// A record is a flat map of field name to raw value, typically one row of a
// lab results file. A schema (pkg/tableschema) declares which fields exist,
// their types, and their constraints. Validation checks each declared field
// in schema order and reports every violation it finds instead of stopping
// at the first one, so one pass over a file yields a complete defect list.
//
// Key Properties:
//
//   - Pure: validation is a function of (schema, record) with no state
//   - Complete: all fields are checked, all violations are collected
//   - Order-preserving: violations follow schema declaration order
//   - Concurrent: records can be validated in parallel without coordination
//
// Basic Usage:
//
//	schema, err := tableschema.Builtin().Get("strain_performance")
//	if err != nil {
//		return err
//	}
//
//	res := phenokit.Validate(schema, phenokit.Record{
//		"compound":   "shikimate",
//		"production": "4.56",
//		"growth":     "0.21",
//	})
//	if !res.Accepted() {
//		for _, v := range res.Violations {
//			log.Printf("%s: %s", v.Field, v.Message)
//		}
//	}
//
// Batch Usage:
//
//	results, err := phenokit.ValidateAll(ctx, schema, records,
//		phenokit.WithWorkers(8),
//	)
//
// Within a single field the checks short-circuit: an absent field reports at
// most missing_required, a mistyped value reports wrong_type and skips range
// checks, and only a well-typed number is compared against its bounds.
// Across fields nothing short-circuits; every field gets its say.
//
// Record keys that no schema field declares are ignored by validation and
// carried through to the typed record unchanged, so files may gain columns
// before the schema catches up.
package phenokit
