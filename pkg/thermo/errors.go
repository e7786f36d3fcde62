package thermo

import "errors"

var (
	// ErrUnmappedCompound reports that the equation still contains
	// identifiers the estimator cannot resolve to KEGG compounds.
	ErrUnmappedCompound = errors.New("equation contains unmapped compounds")
	// ErrUnbalanced reports that the mapped reaction does not balance
	// elements or charge, so no free energy can be assigned.
	ErrUnbalanced = errors.New("reaction is not balanced")
	// ErrEstimation reports that the estimator failed to produce a
	// reversibility index for an otherwise well-formed reaction.
	ErrEstimation = errors.New("reversibility index estimation failed")
	// ErrNilEstimator is returned by Classify when no estimator is given.
	ErrNilEstimator = errors.New("estimator is nil")
)
