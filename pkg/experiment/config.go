package experiment

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SupportedVersion is the configuration document version this build reads.
const SupportedVersion = 1

// DefaultSchema is the schema experiments validate against when they do not
// name one.
const DefaultSchema = "strain_performance"

// Medium describes one growth medium composition file.
type Medium struct {
	Filename string `yaml:"filename" json:"filename"`
	Label    string `yaml:"label,omitempty" json:"label,omitempty"`
}

// Spec describes one experiment: a result file, the medium it was grown on,
// and the schema its records must satisfy.
type Spec struct {
	Filename string `yaml:"filename" json:"filename"`
	Medium   string `yaml:"medium,omitempty" json:"medium,omitempty"`
	Label    string `yaml:"label,omitempty" json:"label,omitempty"`
	Schema   string `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// Config is a campaign description: named media plus named experiments.
type Config struct {
	Version     int               `yaml:"version" json:"version"`
	Media       map[string]Medium `yaml:"media,omitempty" json:"media,omitempty"`
	Experiments map[string]Spec   `yaml:"experiments,omitempty" json:"experiments,omitempty"`
}

// ParseConfig decodes and checks a configuration document. Decoding is
// strict, so misspelled keys fail instead of being dropped. Experiments
// without an explicit schema come back with Schema set to DefaultSchema.
func ParseConfig(src []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	for name, spec := range cfg.Experiments {
		if spec.Schema == "" {
			spec.Schema = DefaultSchema
			cfg.Experiments[name] = spec
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads and parses a configuration file from disk.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the internal consistency of the configuration: supported
// version, filenames present, and every medium reference resolvable. It
// does not look at the referenced files.
func (c *Config) Validate() error {
	if c.Version != SupportedVersion {
		return fmt.Errorf("%w: %w: got %d, want %d",
			ErrInvalidConfig, ErrUnsupportedVersion, c.Version, SupportedVersion)
	}
	for name, m := range c.Media {
		if m.Filename == "" {
			return fmt.Errorf("%w: medium %q: %w", ErrInvalidConfig, name, ErrMissingFilename)
		}
	}
	for name, spec := range c.Experiments {
		if spec.Filename == "" {
			return fmt.Errorf("%w: experiment %q: %w", ErrInvalidConfig, name, ErrMissingFilename)
		}
		if spec.Medium != "" {
			if _, ok := c.Media[spec.Medium]; !ok {
				return fmt.Errorf("%w: experiment %q: %w: %q",
					ErrInvalidConfig, name, ErrUnknownMedium, spec.Medium)
			}
		}
	}
	return nil
}
