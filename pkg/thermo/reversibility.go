package thermo

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// DefaultCutoff is the ln(gamma) threshold below which a reaction is
// considered thermodynamically reversible. A value of 3 corresponds to
// metabolite concentrations varying three orders of magnitude around a
// physiological 100 micromolar.
const DefaultCutoff = 3.0

// Estimator computes the natural log of the reversibility index for a
// reaction equation written in KEGG compound IDs. Implementations signal
// why an estimate is unavailable by wrapping ErrUnmappedCompound,
// ErrUnbalanced or ErrEstimation; any other error aborts classification.
type Estimator interface {
	ReversibilityIndex(ctx context.Context, equation string) (float64, error)
}

// Option configures Classify.
type Option func(*settings)

type settings struct {
	cutoff  float64
	matcher Matcher
}

// WithCutoff overrides the reversibility cutoff.
// Panics if the cutoff is not a positive, finite number.
func WithCutoff(cutoff float64) Option {
	if cutoff <= 0 || math.IsInf(cutoff, 1) || math.IsNaN(cutoff) {
		panic("thermo: cutoff must be a positive, finite number")
	}
	return func(s *settings) {
		s.cutoff = cutoff
	}
}

// WithMatcher supplies a name-based compound lookup for metabolites that
// carry no KEGG annotation.
func WithMatcher(m Matcher) Option {
	return func(s *settings) {
		s.matcher = m
	}
}

// Assessment groups reaction IDs by classification outcome. Each slice
// preserves the input order of the reactions.
type Assessment struct {
	// Incorrect lists reactions whose declared reversibility disagrees
	// with the thermodynamic estimate.
	Incorrect []string `json:"incorrect,omitempty"`
	// IncompleteMapping lists reactions whose equation could not be
	// fully expressed in KEGG compound IDs.
	IncompleteMapping []string `json:"incomplete_mapping,omitempty"`
	// ProblematicCalculation lists reactions for which the estimator
	// could not produce a reversibility index.
	ProblematicCalculation []string `json:"problematic_calculation,omitempty"`
	// Unbalanced lists reactions that do not balance elements or charge.
	Unbalanced []string `json:"unbalanced,omitempty"`
}

// Flagged returns the number of reactions that require curator attention,
// which is the total across all four buckets.
func (a Assessment) Flagged() int {
	return len(a.Incorrect) + len(a.IncompleteMapping) + len(a.ProblematicCalculation) + len(a.Unbalanced)
}

// Metric reports the flagged share of a model with the given total number
// of reactions. A non-positive total yields zero.
func (a Assessment) Metric(total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(a.Flagged()) / float64(total)
}

// Classify checks every reaction's declared reversibility against the
// estimator's thermodynamic verdict. A reaction is considered
// thermodynamically reversible iff its ln reversibility index is strictly
// below the cutoff; a mismatch with the declared flag lands the reaction
// in Incorrect. Reactions the estimator cannot judge are sorted into the
// remaining buckets according to the sentinel error it returns.
func Classify(ctx context.Context, reactions []Reaction, estimator Estimator, opts ...Option) (Assessment, error) {
	if estimator == nil {
		return Assessment{}, ErrNilEstimator
	}
	cfg := settings{cutoff: DefaultCutoff}
	for _, opt := range opts {
		opt(&cfg)
	}

	var out Assessment
	for _, rxn := range reactions {
		if err := ctx.Err(); err != nil {
			return Assessment{}, err
		}
		lnRI, err := estimator.ReversibilityIndex(ctx, KEGGEquation(rxn, cfg.matcher))
		switch {
		case errors.Is(err, ErrUnmappedCompound):
			out.IncompleteMapping = append(out.IncompleteMapping, rxn.ID)
			continue
		case errors.Is(err, ErrUnbalanced):
			out.Unbalanced = append(out.Unbalanced, rxn.ID)
			continue
		case errors.Is(err, ErrEstimation):
			out.ProblematicCalculation = append(out.ProblematicCalculation, rxn.ID)
			continue
		case err != nil:
			return Assessment{}, fmt.Errorf("reaction %s: %w", rxn.ID, err)
		}
		if (lnRI < cfg.cutoff) != rxn.Reversible {
			out.Incorrect = append(out.Incorrect, rxn.ID)
		}
	}
	return out, nil
}
