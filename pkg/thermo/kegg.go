package thermo

import (
	"strconv"
	"strings"
)

// Matcher resolves a metabolite name to candidate KEGG compound IDs,
// ordered best match first. Implementations are typically backed by a
// local compound cache.
type Matcher interface {
	Match(name string) ([]string, error)
}

// SmallestKEGGCompound picks the lowest-numbered KEGG compound ID from a
// list of annotation values. Values that are not compound IDs (a "C"
// followed by digits) are ignored. KEGG assigns IDs in order of curation,
// so the smallest ID is the best-established compound when an annotation
// is ambiguous.
func SmallestKEGGCompound(ids []string) (string, bool) {
	best := ""
	bestNum := 0
	for _, id := range ids {
		num, ok := compoundNumber(id)
		if !ok {
			continue
		}
		if best == "" || num < bestNum {
			best, bestNum = id, num
		}
	}
	return best, best != ""
}

func compoundNumber(id string) (int, bool) {
	if !strings.HasPrefix(id, "C") {
		return 0, false
	}
	num, err := strconv.Atoi(strings.TrimPrefix(id, "C"))
	if err != nil || num < 0 {
		return 0, false
	}
	return num, true
}

// KEGGEquation rewrites a reaction equation in terms of KEGG compound IDs
// so that a thermodynamics estimator can interpret it. For each metabolite
// the annotation wins over a name lookup: a single annotated compound is
// used directly, an ambiguous annotation is resolved with
// SmallestKEGGCompound, and only unannotated metabolites with a name are
// sent to the matcher. Participants that cannot be mapped keep their model
// ID; the estimator reports those as unmapped. The matcher may be nil, in
// which case name lookups are skipped. Arrows are normalized from "-->"
// and "<--" to "->" and "<-".
func KEGGEquation(rxn Reaction, matcher Matcher) string {
	eq := rxn.Equation
	for _, met := range rxn.Metabolites {
		cid, ok := compoundFor(met, matcher)
		if !ok {
			continue
		}
		eq = strings.ReplaceAll(eq, met.ID, cid)
	}
	eq = strings.ReplaceAll(eq, "-->", "->")
	eq = strings.ReplaceAll(eq, "<--", "<-")
	return eq
}

func compoundFor(met Metabolite, matcher Matcher) (string, bool) {
	if len(met.KEGG) == 1 {
		if _, ok := compoundNumber(met.KEGG[0]); ok {
			return met.KEGG[0], true
		}
	}
	if len(met.KEGG) > 1 {
		if cid, ok := SmallestKEGGCompound(met.KEGG); ok {
			return cid, true
		}
	}
	if met.Name == "" || matcher == nil {
		return "", false
	}
	candidates, err := matcher.Match(met.Name)
	if err != nil || len(candidates) == 0 {
		return "", false
	}
	return candidates[0], true
}
