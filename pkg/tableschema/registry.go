package tableschema

import (
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strings"
	"sync"
)

//go:embed schemata/*.yml
var builtinFS embed.FS

// Registry is a read-only catalog of named schemata. Instances are built
// once and never mutated, so a Registry is safe for concurrent use.
type Registry struct {
	schemas map[string]*Schema
}

// NewRegistry parses every document in docs and serves the results under the
// given names. It fails on the first malformed document.
func NewRegistry(docs map[string][]byte) (*Registry, error) {
	schemas := make(map[string]*Schema, len(docs))
	for name, src := range docs {
		s, err := Parse(src)
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", name, err)
		}
		schemas[name] = s
	}
	return &Registry{schemas: schemas}, nil
}

// Get returns the schema registered under name, or an error wrapping
// ErrSchemaNotFound.
func (r *Registry) Get(name string) (*Schema, error) {
	s, ok := r.schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, name)
	}
	return s, nil
}

// Has reports whether a schema is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.schemas[name]
	return ok
}

// Names returns the registered schema names in lexical order.
func (r *Registry) Names() []string {
	names := slices.Collect(maps.Keys(r.schemas))
	slices.Sort(names)
	return names
}

// With returns a new Registry containing every schema of r plus the given
// one, replacing any existing entry under the same name. The receiver is
// left untouched.
func (r *Registry) With(name string, s *Schema) *Registry {
	schemas := make(map[string]*Schema, len(r.schemas)+1)
	maps.Copy(schemas, r.schemas)
	schemas[name] = s
	return &Registry{schemas: schemas}
}

var (
	builtinOnce sync.Once
	builtinReg  *Registry
)

// Builtin returns the registry of schemata compiled into the binary. The
// set currently contains "strain_performance" and "medium". The registry is
// built on first use and shared afterwards.
func Builtin() *Registry {
	builtinOnce.Do(func() {
		entries, err := fs.ReadDir(builtinFS, "schemata")
		if err != nil {
			panic(fmt.Sprintf("tableschema: read embedded schemata: %v", err))
		}
		schemas := make(map[string]*Schema, len(entries))
		for _, e := range entries {
			src, err := builtinFS.ReadFile("schemata/" + e.Name())
			if err != nil {
				panic(fmt.Sprintf("tableschema: read embedded schema %s: %v", e.Name(), err))
			}
			name := strings.TrimSuffix(e.Name(), ".yml")
			schemas[name] = MustParse(src)
		}
		builtinReg = &Registry{schemas: schemas}
	})
	return builtinReg
}
