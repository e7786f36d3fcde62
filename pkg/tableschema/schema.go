package tableschema

// FieldType enumerates the value types a field may declare. Only the two
// types that occur in phenotype observations are supported; everything else
// is rejected at load time.
type FieldType string

const (
	TypeString FieldType = "string"
	TypeNumber FieldType = "number"
)

// Constraints is the per-field rule set applied by validators. Minimum and
// Maximum are pointers so that "no bound" and "bound of zero" remain
// distinguishable. Bounds are inclusive and only meaningful for number
// fields.
type Constraints struct {
	Required bool     `yaml:"required" json:"required"`
	Minimum  *float64 `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	Maximum  *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty"`
}

// FieldSpec describes a single field of a tabular record. Title and
// Description carry documentation for humans and error messages; Name is the
// key under which values appear in records.
type FieldSpec struct {
	Name        string      `yaml:"name" json:"name"`
	Title       string      `yaml:"title,omitempty" json:"title,omitempty"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Type        FieldType   `yaml:"type" json:"type"`
	Constraints Constraints `yaml:"constraints,omitempty" json:"constraints,omitempty"`
}

// clone returns a deep copy so callers can never write through to the
// schema's own constraint pointers.
func (f FieldSpec) clone() FieldSpec {
	if f.Constraints.Minimum != nil {
		m := *f.Constraints.Minimum
		f.Constraints.Minimum = &m
	}
	if f.Constraints.Maximum != nil {
		m := *f.Constraints.Maximum
		f.Constraints.Maximum = &m
	}
	return f
}

// Schema is an ordered, immutable collection of field specifications. The
// zero value is unusable; obtain instances from Parse, Load or a Registry.
type Schema struct {
	fields []FieldSpec
	index  map[string]int
}

// Len reports the number of declared fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Fields returns the field specifications in declaration order. The result
// is a fresh copy on every call.
func (s *Schema) Fields() []FieldSpec {
	out := make([]FieldSpec, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.clone()
	}
	return out
}

// Field looks up a specification by name. The boolean reports whether the
// schema declares the field.
func (s *Schema) Field(name string) (FieldSpec, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return s.fields[i].clone(), true
}

// Has reports whether the schema declares a field with the given name.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// Required returns the names of all required fields in declaration order.
func (s *Schema) Required() []string {
	var out []string
	for _, f := range s.fields {
		if f.Constraints.Required {
			out = append(out, f.Name)
		}
	}
	return out
}
