package thermo

// Metabolite is the slice of a metabolic model this package needs: the
// model-local identifier that appears in reaction equations, the human
// readable name, and whatever KEGG compound annotations the model carries.
type Metabolite struct {
	// ID is the model-local identifier, including any compartment
	// suffix (for example "glc__D_c").
	ID string
	// Name is the display name used for lookups when the annotation
	// is missing. Empty means unnamed.
	Name string
	// KEGG holds the kegg.compound annotation values. A single entry
	// is treated as authoritative; multiple entries are disambiguated
	// by SmallestKEGGCompound.
	KEGG []string
}

// Reaction pairs a human-readable equation with the reversibility the
// model declares for it.
type Reaction struct {
	// ID is the model-local reaction identifier.
	ID string
	// Equation is the reaction string in terms of metabolite IDs,
	// for example "atp_c + h2o_c --> adp_c + h_c + pi_c".
	Equation string
	// Reversible is the reversibility the model declares.
	Reversible bool
	// Metabolites lists the participants referenced by Equation.
	Metabolites []Metabolite
}
