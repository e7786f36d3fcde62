package thermo_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/phenokit/pkg/thermo"
)

type stubEstimator struct {
	fn        func(equation string) (float64, error)
	equations []string
}

func (s *stubEstimator) ReversibilityIndex(_ context.Context, equation string) (float64, error) {
	s.equations = append(s.equations, equation)
	return s.fn(equation)
}

func fixedIndex(lnRI float64) *stubEstimator {
	return &stubEstimator{fn: func(string) (float64, error) { return lnRI, nil }}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("agreeing reactions are not flagged", func(t *testing.T) {
		t.Parallel()

		indexes := map[string]float64{
			"a -> b": 1.2,  // reversible, declared reversible
			"c -> d": 17.4, // irreversible, declared irreversible
		}
		est := &stubEstimator{fn: func(eq string) (float64, error) { return indexes[eq], nil }}
		reactions := []thermo.Reaction{
			{ID: "R1", Equation: "a -> b", Reversible: true},
			{ID: "R2", Equation: "c -> d", Reversible: false},
		}

		got, err := thermo.Classify(context.Background(), reactions, est)
		require.NoError(t, err)
		assert.Zero(t, got.Flagged())
		assert.Empty(t, got.Incorrect)
	})

	t.Run("disagreement is flagged in input order", func(t *testing.T) {
		t.Parallel()

		est := fixedIndex(1.0) // always below the cutoff, so always reversible
		reactions := []thermo.Reaction{
			{ID: "R1", Equation: "a -> b", Reversible: false},
			{ID: "R2", Equation: "c -> d", Reversible: true},
			{ID: "R3", Equation: "e -> f", Reversible: false},
		}

		got, err := thermo.Classify(context.Background(), reactions, est)
		require.NoError(t, err)
		assert.Equal(t, []string{"R1", "R3"}, got.Incorrect)
	})

	t.Run("cutoff is a strict bound", func(t *testing.T) {
		t.Parallel()

		est := fixedIndex(thermo.DefaultCutoff)
		reactions := []thermo.Reaction{
			{ID: "IRR", Equation: "a -> b", Reversible: false},
			{ID: "REV", Equation: "c -> d", Reversible: true},
		}

		got, err := thermo.Classify(context.Background(), reactions, est)
		require.NoError(t, err)
		assert.Equal(t, []string{"REV"}, got.Incorrect, "an index equal to the cutoff means irreversible")
	})

	t.Run("custom cutoff widens the reversible range", func(t *testing.T) {
		t.Parallel()

		est := fixedIndex(7.0)
		reactions := []thermo.Reaction{{ID: "R1", Equation: "a -> b", Reversible: true}}

		got, err := thermo.Classify(context.Background(), reactions, est, thermo.WithCutoff(10))
		require.NoError(t, err)
		assert.Empty(t, got.Incorrect)

		got, err = thermo.Classify(context.Background(), reactions, est)
		require.NoError(t, err)
		assert.Equal(t, []string{"R1"}, got.Incorrect)
	})

	t.Run("sentinel errors fill the outcome buckets", func(t *testing.T) {
		t.Parallel()

		failures := map[string]error{
			"m1 -> x": fmt.Errorf("compound m1: %w", thermo.ErrUnmappedCompound),
			"b1 -> x": fmt.Errorf("charge mismatch: %w", thermo.ErrUnbalanced),
			"p1 -> x": fmt.Errorf("no formation energy: %w", thermo.ErrEstimation),
		}
		est := &stubEstimator{fn: func(eq string) (float64, error) {
			if err, ok := failures[eq]; ok {
				return 0, err
			}
			return 1.0, nil
		}}
		reactions := []thermo.Reaction{
			{ID: "MAP1", Equation: "m1 -> x"},
			{ID: "OK", Equation: "k -> x", Reversible: true},
			{ID: "BAL1", Equation: "b1 -> x"},
			{ID: "CALC1", Equation: "p1 -> x"},
		}

		got, err := thermo.Classify(context.Background(), reactions, est)
		require.NoError(t, err)
		assert.Equal(t, []string{"MAP1"}, got.IncompleteMapping)
		assert.Equal(t, []string{"BAL1"}, got.Unbalanced)
		assert.Equal(t, []string{"CALC1"}, got.ProblematicCalculation)
		assert.Empty(t, got.Incorrect)
		assert.Equal(t, 3, got.Flagged())
	})

	t.Run("unexpected estimator error aborts", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("equilibrator unreachable")
		est := &stubEstimator{fn: func(string) (float64, error) { return 0, boom }}
		reactions := []thermo.Reaction{{ID: "R1", Equation: "a -> b"}}

		_, err := thermo.Classify(context.Background(), reactions, est)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "R1")
	})

	t.Run("equations are mapped before estimation", func(t *testing.T) {
		t.Parallel()

		est := fixedIndex(1.0)
		matcher := &stubMatcher{byName: map[string][]string{"Pyruvate": {"C00022"}}}
		reactions := []thermo.Reaction{{
			ID:          "LDH_D",
			Equation:    "pyr_c --> lac__D_c",
			Reversible:  true,
			Metabolites: []thermo.Metabolite{{ID: "pyr_c", Name: "Pyruvate"}, {ID: "lac__D_c", KEGG: []string{"C00256"}}},
		}}

		_, err := thermo.Classify(context.Background(), reactions, est, thermo.WithMatcher(matcher))
		require.NoError(t, err)
		require.Len(t, est.equations, 1)
		assert.Equal(t, "C00022 -> C00256", est.equations[0])
	})

	t.Run("cancelled context stops the run", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		est := fixedIndex(1.0)
		_, err := thermo.Classify(ctx, []thermo.Reaction{{ID: "R1"}}, est)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("nil estimator is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := thermo.Classify(context.Background(), nil, nil)
		assert.ErrorIs(t, err, thermo.ErrNilEstimator)
	})

	t.Run("invalid cutoff panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { thermo.WithCutoff(0) })
		assert.Panics(t, func() { thermo.WithCutoff(-3) })
	})
}

func TestAssessmentMetric(t *testing.T) {
	t.Parallel()

	a := thermo.Assessment{
		Incorrect:              []string{"R1"},
		IncompleteMapping:      []string{"R2", "R3"},
		ProblematicCalculation: nil,
		Unbalanced:             []string{"R4"},
	}

	assert.Equal(t, 4, a.Flagged())
	assert.InDelta(t, 0.5, a.Metric(8), 1e-9)
	assert.Zero(t, a.Metric(0))
	assert.Zero(t, thermo.Assessment{}.Flagged())
}
