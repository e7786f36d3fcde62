// Package tableschema loads and serves table schemata: ordered sets of field
// specifications that describe what a valid phenotype observation looks like.
//
// A schema is parsed once from a YAML document and is immutable afterwards,
// so a single *Schema can back any number of concurrent validation calls
// without copying or locking. The package deliberately knows nothing about
// records or record files; it only answers "which fields exist, in what
// order, and under which constraints".
//
// # Architecture
//
// The package is built around three types:
//
//  1. FieldSpec - one field: name, human-readable title and description,
//     declared type, and constraint set
//  2. Schema - an ordered, name-indexed collection of FieldSpecs
//  3. Registry - a read-only catalog of named schemata, loaded once
//
// Parsing is strict: unknown document keys, unknown field types, unknown
// constraint options, and duplicate field names are rejected at load time
// with a *FormatError. Nothing that passed Parse can later surprise a
// validator at run time.
//
// # Usage
//
//	import "github.com/dmitrymomot/phenokit/pkg/tableschema"
//
//	schema, err := tableschema.Load("schemata/strain_performance.yml")
//	if err != nil {
//		var ferr *tableschema.FormatError
//		if errors.As(err, &ferr) {
//			// malformed schema document, ferr.Reason explains why
//		}
//	}
//
//	spec, ok := schema.Field("growth")
//	if ok && spec.Constraints.Maximum != nil {
//		// bounded numeric field
//	}
//
// The compiled-in schemata are available without touching the filesystem:
//
//	registry := tableschema.Builtin()
//	schema, err := registry.Get("strain_performance")
//
// # Error Handling
//
// All load failures wrap ErrSchemaFormat, so callers that do not care about
// the precise defect can test with a single errors.Is. The concrete
// *FormatError carries the offending field name and a reason sentinel
// (ErrMissingName, ErrUnknownType, ErrDuplicateField, ...) for callers that
// want to report schema defects individually.
package tableschema
