// Package tabular turns delimited lab result files into streams of raw
// records ready for validation.
//
// The package reads CSV and TSV files, with or without gzip compression,
// and yields one Record per data row keyed by the normalized header names.
// It never interprets cell contents; every value stays a string so that the
// validator remains the single place where typing happens.
//
// # Format Handling
//
// Open picks the delimiter from the file extension (.csv or .tsv, also
// behind a trailing .gz) and transparently decompresses gzip files. Input
// text may be UTF-8 with or without a byte order mark, or UTF-16 in either
// byte order with a mark, which covers the usual spreadsheet exports.
//
// Header cells are normalized before they become record keys: surrounding
// whitespace is trimmed, letters are lowercased, and internal spaces become
// underscores, so the header "Growth Rate" matches a schema field named
// "growth_rate".
//
// # Usage
//
//	r, err := tabular.Open("results/strain7.csv.gz")
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//
//	for {
//		rec, err := r.Next()
//		if errors.Is(err, io.EOF) {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		res := phenokit.Validate(schema, rec)
//		// ...
//	}
//
// Reader satisfies the validation package's RecordSource interface, so a
// whole file can also be pushed through phenokit.ValidateStream directly.
package tabular
