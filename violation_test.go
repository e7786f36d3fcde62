package phenokit_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/phenokit"
)

func TestViolations(t *testing.T) {
	t.Parallel()

	vs := phenokit.Violations{
		{Field: "compound", Code: phenokit.CodeMissingRequired, Message: "field is required"},
		{Field: "growth", Code: phenokit.CodeBelowMinimum, Message: "must be at least 0", Value: "-1"},
		{Field: "growth", Code: phenokit.CodeAboveMaximum, Message: "must be at most 10", Value: "11"},
	}

	t.Run("formats all failures into one message", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t,
			"validation failed: compound: field is required; growth: must be at least 0; growth: must be at most 10",
			vs.Error(),
		)
		assert.Equal(t, "validation failed", phenokit.Violations{}.Error())
	})

	t.Run("has and hascode look up by field", func(t *testing.T) {
		t.Parallel()

		assert.True(t, vs.Has("compound"))
		assert.False(t, vs.Has("production"))
		assert.True(t, vs.HasCode("growth", phenokit.CodeAboveMaximum))
		assert.False(t, vs.HasCode("growth", phenokit.CodeWrongType))
	})

	t.Run("get returns every violation for a field", func(t *testing.T) {
		t.Parallel()

		growth := vs.Get("growth")
		require.Len(t, growth, 2)
		assert.Equal(t, phenokit.CodeBelowMinimum, growth[0].Code)
		assert.Equal(t, phenokit.CodeAboveMaximum, growth[1].Code)
		assert.Nil(t, vs.Get("production"))
	})

	t.Run("fields deduplicates in first-seen order", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"compound", "growth"}, vs.Fields())
	})

	t.Run("isempty", func(t *testing.T) {
		t.Parallel()

		assert.False(t, vs.IsEmpty())
		assert.True(t, phenokit.Violations{}.IsEmpty())
	})
}

func TestExtractViolations(t *testing.T) {
	t.Parallel()

	vs := phenokit.Violations{
		{Field: "growth", Code: phenokit.CodeWrongType, Message: "must be a finite number"},
	}

	t.Run("extracts from a plain violations error", func(t *testing.T) {
		t.Parallel()

		got := phenokit.ExtractViolations(vs)
		assert.Equal(t, vs, got)
	})

	t.Run("extracts through wrapping", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("record 7: %w", vs)
		got := phenokit.ExtractViolations(wrapped)
		assert.Equal(t, vs, got)
	})

	t.Run("returns nil for unrelated errors", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, phenokit.ExtractViolations(errors.New("disk on fire")))
		assert.Nil(t, phenokit.ExtractViolations(nil))
	})
}

func TestResult(t *testing.T) {
	t.Parallel()

	t.Run("accepted result has no error", func(t *testing.T) {
		t.Parallel()

		res := phenokit.Result{Record: phenokit.Record{"growth": 1.0}}
		assert.True(t, res.Accepted())
		assert.NoError(t, res.Err())
	})

	t.Run("rejected result surfaces violations as error", func(t *testing.T) {
		t.Parallel()

		res := phenokit.Result{Violations: phenokit.Violations{
			{Field: "growth", Code: phenokit.CodeWrongType, Message: "must be a finite number"},
		}}
		assert.False(t, res.Accepted())

		err := res.Err()
		require.Error(t, err)
		assert.True(t, len(phenokit.ExtractViolations(err)) == 1)
	})
}

func TestRecordClone(t *testing.T) {
	t.Parallel()

	t.Run("copies independently", func(t *testing.T) {
		t.Parallel()

		rec := phenokit.Record{"compound": "shikimate"}
		cp := rec.Clone()
		cp["compound"] = "citrate"

		assert.Equal(t, "shikimate", rec["compound"])
	})

	t.Run("nil clones to nil", func(t *testing.T) {
		t.Parallel()

		var rec phenokit.Record
		assert.Nil(t, rec.Clone())
	})
}
