// Package config loads and validates simulation parameters from yaml
// files and named presets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mdsim/internal/md"
)

// Defaults match the reference molecular dynamics run.
const (
	DefaultParticles = 2000
	DefaultDims      = 3
	DefaultMass      = 1.0
	DefaultTimeStep  = 0.0001
	DefaultSteps     = 100
	DefaultSeed      = 123456789
)

type Config struct {
	ParticleCount int     `yaml:"particle_count"`
	Dimensions    int     `yaml:"dimensions"`
	Mass          float64 `yaml:"mass"`
	TimeStep      float64 `yaml:"time_step"`
	StepCount     int     `yaml:"step_count"`
	Seed          int32   `yaml:"seed"`

	// Parallel is the force-evaluation worker count: 0 serial, -1 all
	// available CPUs.
	Parallel int `yaml:"parallel"`

	// ValidateState aborts the run when particle state turns NaN/Inf.
	ValidateState bool `yaml:"validate_state"`
}

func DefaultConfig() *Config {
	return &Config{
		ParticleCount: DefaultParticles,
		Dimensions:    DefaultDims,
		Mass:          DefaultMass,
		TimeStep:      DefaultTimeStep,
		StepCount:     DefaultSteps,
		Seed:          DefaultSeed,
	}
}

// Load reads a yaml config, layering it over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first invalid field, if any.
func (c *Config) Validate() error {
	if c.ParticleCount < 1 {
		return fmt.Errorf("config: particle_count must be positive, got %d", c.ParticleCount)
	}
	if c.Dimensions < 1 {
		return fmt.Errorf("config: dimensions must be positive, got %d", c.Dimensions)
	}
	if c.Mass <= 0 {
		return fmt.Errorf("config: mass must be positive, got %g", c.Mass)
	}
	if c.TimeStep <= 0 {
		return fmt.Errorf("config: time_step must be positive, got %g", c.TimeStep)
	}
	if c.StepCount < 0 {
		return fmt.Errorf("config: step_count must be non-negative, got %d", c.StepCount)
	}
	if c.Seed == 0 {
		return fmt.Errorf("config: seed must be non-zero")
	}
	return nil
}

// Params converts the config into run parameters.
func (c *Config) Params() md.Params {
	return md.Params{
		Particles:     c.ParticleCount,
		Dims:          c.Dimensions,
		Mass:          c.Mass,
		Dt:            c.TimeStep,
		Steps:         c.StepCount,
		Seed:          c.Seed,
		Workers:       c.Parallel,
		ValidateState: c.ValidateState,
	}
}
