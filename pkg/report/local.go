package report

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

const (
	extJSON   = ".json"
	extJSONGz = ".json.gz"
)

// LocalOption configures a LocalStore.
type LocalOption func(*LocalStore)

// WithCompression makes the store write gzipped snapshots. Reads handle
// both layouts regardless of this setting.
func WithCompression() LocalOption {
	return func(s *LocalStore) {
		s.compress = true
	}
}

// LocalStore keeps one JSON snapshot per run in a directory. It is safe for
// concurrent use as long as run IDs are unique, which uuid.New guarantees.
type LocalStore struct {
	dir      string
	compress bool
}

// NewLocalStore creates the directory if needed and returns a store over it.
func NewLocalStore(dir string, opts ...LocalOption) (*LocalStore, error) {
	if dir == "" {
		return nil, errors.New("report: empty store directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report directory %s: %w", dir, err)
	}

	s := &LocalStore{dir: dir}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Save writes the report snapshot, replacing any previous snapshot of the
// same run.
func (s *LocalStore) Save(_ context.Context, r *Report) error {
	if r == nil {
		return ErrNilReport
	}
	if r.Meta.RunID == uuid.Nil {
		return ErrMissingRunID
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	ext := extJSON
	if s.compress {
		ext = extJSONGz
		data, err = gzipped(data)
		if err != nil {
			return fmt.Errorf("compress report: %w", err)
		}
	}

	path := filepath.Join(s.dir, r.Meta.RunID.String()+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// Load reads one report back, accepting either the plain or the gzipped
// layout.
func (s *LocalStore) Load(_ context.Context, runID uuid.UUID) (*Report, error) {
	if runID == uuid.Nil {
		return nil, ErrMissingRunID
	}

	for _, ext := range []string{extJSON, extJSONGz} {
		path := filepath.Join(s.dir, runID.String()+ext)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read report %s: %w", path, err)
		}

		if ext == extJSONGz {
			data, err = gunzipped(data)
			if err != nil {
				return nil, fmt.Errorf("decompress report %s: %w", path, err)
			}
		}

		var r Report
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode report %s: %w", path, err)
		}
		return &r, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
}

// List returns the metadata of every stored run, newest first.
func (s *LocalStore) List(ctx context.Context) ([]Meta, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list reports in %s: %w", s.dir, err)
	}

	var metas []Meta
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		var id string
		switch {
		case strings.HasSuffix(name, extJSONGz):
			id = strings.TrimSuffix(name, extJSONGz)
		case strings.HasSuffix(name, extJSON):
			id = strings.TrimSuffix(name, extJSON)
		default:
			continue
		}

		runID, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		r, err := s.Load(ctx, runID)
		if err != nil {
			return nil, err
		}
		metas = append(metas, r.Meta)
	}

	slices.SortFunc(metas, func(a, b Meta) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return metas, nil
}

func gzipped(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gunzipped(data []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = gz.Close() }()
	return io.ReadAll(gz)
}
