package tabular

import (
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/dmitrymomot/phenokit"
)

// Option customizes reader construction.
type Option func(*config)

type config struct {
	delimiter rune
	gzipped   bool
}

// WithDelimiter overrides the cell delimiter. It panics on delimiters that
// cannot appear as CSV separators.
func WithDelimiter(d rune) Option {
	return func(cfg *config) {
		if d == 0 || d == '\n' || d == '\r' || d == '"' {
			panic("tabular: invalid delimiter")
		}
		cfg.delimiter = d
	}
}

// WithGzip forces gzip decompression for readers constructed with New, where
// no file name is available to infer it from.
func WithGzip() Option {
	return func(cfg *config) {
		cfg.gzipped = true
	}
}

// Reader streams records from one delimited input. It is not safe for
// concurrent use; each goroutine needs its own Reader.
type Reader struct {
	cr     *csv.Reader
	header []string
	closer io.Closer
}

// Open reads a delimited file from disk. The delimiter is inferred from the
// file extension (.tsv and .tab mean tabs, anything else means commas) and a
// trailing .gz enables decompression, so "results.tsv.gz" works as expected.
func Open(path string, opts ...Option) (*Reader, error) {
	cfg := buildConfig(opts...)

	name := path
	if strings.EqualFold(filepath.Ext(name), ".gz") {
		cfg.gzipped = true
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if cfg.delimiter == 0 {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".tsv", ".tab":
			cfg.delimiter = '\t'
		default:
			cfg.delimiter = ','
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	r, err := newReader(f, cfg, f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// New wraps an already open stream. The caller keeps ownership of src;
// Close on the returned Reader only releases resources the Reader itself
// created.
func New(src io.Reader, opts ...Option) (*Reader, error) {
	cfg := buildConfig(opts...)
	if cfg.delimiter == 0 {
		cfg.delimiter = ','
	}
	return newReader(src, cfg, nil)
}

func buildConfig(opts ...Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func newReader(src io.Reader, cfg config, file io.Closer) (*Reader, error) {
	closer := file

	if cfg.gzipped {
		gz, err := gzip.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		src = gz
		closer = &stackedCloser{first: gz, second: file}
	}

	// Excel and friends export UTF-16 with a byte order mark; everything
	// else is treated as UTF-8.
	src = transform.NewReader(src, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(src)
	cr.Comma = cfg.delimiter

	header, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	return &Reader{cr: cr, header: header, closer: closer}, nil
}

func readHeader(cr *csv.Reader) ([]string, error) {
	row, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingHeader
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	header := make([]string, len(row))
	seen := make(map[string]bool, len(row))
	for i, cell := range row {
		name := normalizeColumn(cell)
		if name == "" {
			name = fmt.Sprintf("col_%d", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		seen[name] = true
		header[i] = name
	}
	return header, nil
}

// normalizeColumn maps a raw header cell to a record key: trimmed,
// lowercased, spaces flattened to underscores.
func normalizeColumn(cell string) string {
	c := strings.TrimSpace(cell)
	return strings.ReplaceAll(strings.ToLower(c), " ", "_")
}

// Header returns the normalized column names in file order.
func (r *Reader) Header() []string {
	out := make([]string, len(r.header))
	copy(out, r.header)
	return out
}

// Next returns the next data row as a raw record and io.EOF after the last
// one. Cell values are passed through untouched; blank cells stay empty
// strings and are treated as absent by the validator.
func (r *Reader) Next() (phenokit.Record, error) {
	row, err := r.cr.Read()
	if err != nil {
		return nil, err
	}

	rec := make(phenokit.Record, len(row))
	for i, cell := range row {
		rec[r.header[i]] = cell
	}
	return rec, nil
}

// ReadAll drains the input and returns every remaining record.
func (r *Reader) ReadAll() ([]phenokit.Record, error) {
	var out []phenokit.Record
	for {
		rec, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		out = append(out, rec)
	}
}

// Close releases the file and decompressor owned by the Reader. Readers
// built with New over a caller-owned stream close nothing and return nil.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

type stackedCloser struct {
	first  io.Closer
	second io.Closer
}

func (s *stackedCloser) Close() error {
	err := s.first.Close()
	if s.second != nil {
		if cerr := s.second.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
