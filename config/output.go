package config

import "fmt"

// OutputConfig controls where generated artifacts are written.
type OutputConfig struct {
	// Dir is the root directory; sub-directories are created on demand.
	Dir string `json:"dir"`
	// InstanceDir holds the human-readable instances.
	InstanceDir string `json:"instance_dir"`
	// SolverDir holds the quantized solver instances.
	SolverDir string `json:"solver_dir"`
	// CSV also writes a commercial roster next to the instance.
	CSV bool `json:"csv"`
}

// SetDefaults applies the historical directory names.
func (c *OutputConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "data"
	}
	if c.InstanceDir == "" {
		c.InstanceDir = "data_nsga"
	}
	if c.SolverDir == "" {
		c.SolverDir = "data_cplex"
	}
}

// Validate checks the output layout.
func (c OutputConfig) Validate() error {
	if c.InstanceDir == c.SolverDir {
		return fmt.Errorf("%w: instance_dir and solver_dir must differ", ErrInvalidValue)
	}
	return nil
}
