package phenokit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/phenokit/pkg/tableschema"
)

// RecordSource streams records one at a time and returns io.EOF after the
// final record. pkg/tabular.Reader is the canonical implementation.
type RecordSource interface {
	Next() (Record, error)
}

// BatchOption tunes concurrent batch validation.
type BatchOption func(*batchOptions)

type batchOptions struct {
	workers int
}

// WithWorkers caps the number of records validated concurrently. It panics
// when n is not positive.
func WithWorkers(n int) BatchOption {
	return func(o *batchOptions) {
		if n <= 0 {
			panic("phenokit: worker count must be positive")
		}
		o.workers = n
	}
}

func newBatchOptions(opts ...BatchOption) batchOptions {
	o := batchOptions{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ValidateAll validates records concurrently and returns one Result per
// input record, index-aligned with the input slice. Record order never
// affects the outcome since each record is judged in isolation. The only
// possible error is context cancellation.
func ValidateAll(ctx context.Context, schema *tableschema.Schema, records []Record, opts ...BatchOption) ([]Result, error) {
	o := newBatchOptions(opts...)

	results := make([]Result, len(records))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for i, rec := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Validate(schema, rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ValidateStream pulls records from src until io.EOF and hands each result
// to sink together with its zero-based record index. Rejected records do
// not stop the stream; a source error, a sink error or context cancellation
// does.
func ValidateStream(ctx context.Context, schema *tableschema.Schema, src RecordSource, sink func(index int, res Result) error) error {
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("record %d: %w", i, err)
		}

		if err := sink(i, Validate(schema, rec)); err != nil {
			return err
		}
	}
}
