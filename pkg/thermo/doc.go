// Package thermo cross-checks the declared reversibility of metabolic
// reactions against a thermodynamics-based estimate.
//
// The estimate itself comes from an external Estimator (in production a
// client of the eQuilibrator service); this package owns the KEGG compound
// mapping that makes reaction equations intelligible to such estimators,
// and the bookkeeping that sorts reactions into outcome buckets.
//
// A reaction counts as thermodynamically reversible when its reversibility
// index ln(gamma) stays below the cutoff. The default cutoff of 3 allows
// metabolite concentrations to span three orders of magnitude around 100
// micromolar before the flux direction flips. Reactions whose declared
// Reversible flag disagrees with that estimate are flagged:
//
//	assessment, err := thermo.Classify(ctx, reactions, estimator)
//	if err != nil {
//		return err
//	}
//	for _, id := range assessment.Incorrect {
//		log.Printf("reversibility of %s disagrees with thermodynamics", id)
//	}
//
// Reactions that cannot be judged are not errors; they land in their own
// buckets (IncompleteMapping, ProblematicCalculation, Unbalanced) and count
// toward the flagged total, mirroring how model curators triage them.
package thermo
