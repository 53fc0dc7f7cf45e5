// Package scenarios runs batches of generations described by a YAML manifest
// and checks every produced instance for structural consistency.
package scenarios

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Expected bounds the size of every instance produced by a run. Zero values
// are not checked.
type Expected struct {
	MinBreaks      int  `yaml:"min_breaks"`
	MinCommercials int  `yaml:"min_commercials"`
	Competitors    *int `yaml:"competitors,omitempty"`
}

// RunDef describes one entry of a manifest.
type RunDef struct {
	Name string `yaml:"name"`
	// Config is a generator configuration file, relative to the manifest.
	Config string `yaml:"config"`
	// Seed of the first instance; later instances use Seed+i. A nil seed
	// derives every seed from the clock.
	Seed     *int64   `yaml:"seed,omitempty"`
	Count    int      `yaml:"count"`
	Expected Expected `yaml:"expected"`
}

// Manifest is a named list of runs.
type Manifest struct {
	Name string `yaml:"name"`
	// OutputDir overrides output.dir of every run when set.
	OutputDir string   `yaml:"output_dir,omitempty"`
	Runs      []RunDef `yaml:"runs"`

	dir string
}

// Load reads a manifest. Config paths are resolved against its directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	m.dir = filepath.Dir(path)
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return &m, nil
}

// Validate checks that every run names a config file and a positive count.
// A missing count means one instance.
func (m *Manifest) Validate() error {
	if len(m.Runs) == 0 {
		return errors.New("no runs")
	}
	var errs []error
	for i := range m.Runs {
		r := &m.Runs[i]
		if r.Config == "" {
			errs = append(errs, fmt.Errorf("run %d: config is required", i))
		}
		if r.Count == 0 {
			r.Count = 1
		}
		if r.Count < 0 {
			errs = append(errs, fmt.Errorf("run %d: count must be positive", i))
		}
	}
	return errors.Join(errs...)
}

// ConfigPath returns the configuration file of r.
func (m *Manifest) ConfigPath(r RunDef) string {
	if filepath.IsAbs(r.Config) || m.dir == "" {
		return r.Config
	}
	return filepath.Join(m.dir, r.Config)
}
