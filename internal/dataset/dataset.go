package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/five82/caliper/internal/logging"
	"github.com/five82/caliper/internal/measurement"
	"github.com/five82/caliper/internal/unit"
)

// ErrUnknownSet is returned when a named set is not in the file.
var ErrUnknownSet = errors.New("unknown set")

// File is a collection of named reading sets sharing defaults.
type File struct {
	Unit     string `toml:"unit" yaml:"unit"`
	Decimals *int   `toml:"decimals,omitempty" yaml:"decimals,omitempty"`
	Policy   string `toml:"policy,omitempty" yaml:"policy,omitempty"`
	Sets     []Set  `toml:"set" yaml:"set"`
}

// Set is one series of readings of the same quantity. Values and
// uncertainty are decimal strings so they load without binary rounding.
type Set struct {
	Name        string   `toml:"name" yaml:"name"`
	Unit        string   `toml:"unit,omitempty" yaml:"unit,omitempty"`
	Uncertainty string   `toml:"uncertainty,omitempty" yaml:"uncertainty,omitempty"`
	Values      []string `toml:"values" yaml:"values"`
}

type format int

const (
	formatTOML format = iota
	formatYAML
)

func formatFor(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatTOML
	}
}

// Load reads and validates a dataset. YAML is used for .yaml and .yml
// paths, TOML otherwise.
func Load(path string) (File, error) {
	resolved, err := expandPath(path)
	if err != nil {
		return File{}, fmt.Errorf("resolve path: %w", err)
	}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		return File{}, fmt.Errorf("read dataset: %w", err)
	}

	var f File
	switch formatFor(resolved) {
	case formatYAML:
		err = yaml.Unmarshal(bytes, &f)
	default:
		err = toml.Unmarshal(bytes, &f)
	}
	if err != nil {
		return File{}, fmt.Errorf("parse dataset %s: %w", resolved, err)
	}
	f.normalize()

	if err := f.Validate(); err != nil {
		return File{}, fmt.Errorf("dataset %s: %w", resolved, err)
	}

	logger := logging.Component("dataset")
	logger.Debug().Str("path", resolved).Int("sets", len(f.Sets)).Str("unit", f.Unit).Msg("loaded dataset")
	return f, nil
}

// Save writes f to path, creating directories as needed.
func Save(path string, f File) error {
	resolved, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := f.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}

	var bytes []byte
	switch formatFor(resolved) {
	case formatYAML:
		bytes, err = yaml.Marshal(f)
	default:
		bytes, err = toml.Marshal(f)
	}
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

func (f *File) normalize() {
	f.Unit = strings.TrimSpace(f.Unit)
	f.Policy = strings.TrimSpace(f.Policy)
	for i := range f.Sets {
		s := &f.Sets[i]
		s.Name = strings.TrimSpace(s.Name)
		s.Unit = strings.TrimSpace(s.Unit)
		s.Uncertainty = strings.TrimSpace(s.Uncertainty)
		for j, v := range s.Values {
			s.Values[j] = strings.TrimSpace(v)
		}
	}
}

// Validate checks names are present and unique, every set has readings,
// and the file-level settings parse.
func (f File) Validate() error {
	if f.Decimals != nil && *f.Decimals < 0 {
		return fmt.Errorf("decimals must not be negative, got %d", *f.Decimals)
	}
	if _, err := measurement.ParsePolicy(f.Policy); err != nil {
		return err
	}
	if len(f.Sets) == 0 {
		return errors.New("no sets defined")
	}
	seen := make(map[string]bool, len(f.Sets))
	for i, s := range f.Sets {
		if s.Name == "" {
			return fmt.Errorf("set %d has no name", i+1)
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate set %q", s.Name)
		}
		seen[s.Name] = true
		if len(s.Values) == 0 {
			return fmt.Errorf("set %q has no values", s.Name)
		}
	}
	return nil
}

// Names returns the set names in file order.
func (f File) Names() []string {
	names := make([]string, 0, len(f.Sets))
	for _, s := range f.Sets {
		names = append(names, s.Name)
	}
	return names
}

// Set returns the named set.
func (f File) Set(name string) (Set, error) {
	for _, s := range f.Sets {
		if s.Name == name {
			return s, nil
		}
	}
	return Set{}, fmt.Errorf("%w %q (have %s)", ErrUnknownSet, name, strings.Join(f.Names(), ", "))
}

// UnitFor returns the unit of the named set: its own, else the file's.
func (f File) UnitFor(s Set) unit.Unit {
	if s.Unit != "" {
		return unit.Resolve(s.Unit)
	}
	return unit.Resolve(f.Unit)
}

// Measurements builds the readings of the named set. opts apply first; the
// file's decimals and policy override them when present.
func (f File) Measurements(name string, opts ...measurement.Option) ([]measurement.Measurement, error) {
	s, err := f.Set(name)
	if err != nil {
		return nil, err
	}

	all := append([]measurement.Option{}, opts...)
	if f.Decimals != nil {
		all = append(all, measurement.WithDecimals(*f.Decimals))
	}
	if f.Policy != "" {
		policy, err := measurement.ParsePolicy(f.Policy)
		if err != nil {
			return nil, err
		}
		all = append(all, measurement.WithPolicy(policy))
	}

	u := f.UnitFor(s)
	out := make([]measurement.Measurement, 0, len(s.Values))
	for i, v := range s.Values {
		m, err := measurement.Parse(v, s.Uncertainty, u, all...)
		if err != nil {
			return nil, fmt.Errorf("set %q reading %d: %w", s.Name, i+1, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
