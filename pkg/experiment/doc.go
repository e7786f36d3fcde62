// Package experiment describes validation campaigns: which result files
// exist, which growth media they used, and which schema each file must
// satisfy.
//
// The configuration is a small YAML document that names media and
// experiments. It is deliberately declarative; this package checks internal
// consistency (versions, filenames, medium references) but never touches
// the referenced files themselves.
//
//	version: 1
//	media:
//	  m9:
//	    filename: M9_medium.csv
//	    label: M9 minimal medium
//	experiments:
//	  shikimate_batch:
//	    filename: shikimate.csv
//	    medium: m9
//	    label: Shikimate production, batch 7
//
// Experiments validate against the builtin "strain_performance" schema
// unless they name another one.
//
// The package also carries Measurement, the typed form of an accepted
// strain performance record, for code that wants struct fields instead of
// map lookups after validation.
package experiment
