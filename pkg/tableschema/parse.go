package tableschema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// schemaDoc mirrors the on-disk document layout. Decoding runs with
// KnownFields enabled, so any key outside this shape fails the load instead
// of being silently dropped.
type schemaDoc struct {
	Fields []fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	Name        string         `yaml:"name"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Type        string         `yaml:"type"`
	Constraints constraintsDoc `yaml:"constraints"`
}

type constraintsDoc struct {
	Required bool     `yaml:"required"`
	Minimum  *float64 `yaml:"minimum"`
	Maximum  *float64 `yaml:"maximum"`
}

// Parse builds a Schema from a YAML schema document. Any structural defect
// is reported as a *FormatError wrapping ErrSchemaFormat; a schema that
// parses successfully needs no further checking before use.
func Parse(src []byte) (*Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var doc schemaDoc
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, formatErr("", ErrNoFields)
		}
		return nil, formatErr("", fmt.Errorf("%w: %v", ErrInvalidDocument, err))
	}
	if len(doc.Fields) == 0 {
		return nil, formatErr("", ErrNoFields)
	}

	fields := make([]FieldSpec, 0, len(doc.Fields))
	index := make(map[string]int, len(doc.Fields))
	for _, fd := range doc.Fields {
		if strings.TrimSpace(fd.Name) == "" {
			return nil, formatErr("", ErrMissingName)
		}
		ft := FieldType(fd.Type)
		if ft != TypeString && ft != TypeNumber {
			return nil, formatErr(fd.Name, fmt.Errorf("%w: %q", ErrUnknownType, fd.Type))
		}
		if _, dup := index[fd.Name]; dup {
			return nil, formatErr(fd.Name, ErrDuplicateField)
		}
		c := fd.Constraints
		if c.Minimum != nil && c.Maximum != nil && *c.Minimum > *c.Maximum {
			return nil, formatErr(fd.Name, ErrInvalidBounds)
		}

		index[fd.Name] = len(fields)
		fields = append(fields, FieldSpec{
			Name:        fd.Name,
			Title:       fd.Title,
			Description: fd.Description,
			Type:        ft,
			Constraints: Constraints{
				Required: c.Required,
				Minimum:  c.Minimum,
				Maximum:  c.Maximum,
			},
		})
	}

	return &Schema{fields: fields, index: index}, nil
}

// MustParse is Parse for compile-time-known documents. It panics on error
// and exists for embedded schemata and tests.
func MustParse(src []byte) *Schema {
	s, err := Parse(src)
	if err != nil {
		panic(fmt.Sprintf("tableschema: %v", err))
	}
	return s
}

// Load reads and parses a schema document from disk.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", path, err)
	}
	return s, nil
}
