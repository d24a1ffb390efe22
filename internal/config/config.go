package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/oceanebm/internal/dynamo"
	"github.com/san-kum/oceanebm/internal/forcing"
	"github.com/san-kum/oceanebm/internal/physics"
	"github.com/san-kum/oceanebm/internal/sim"
)

const (
	DefaultYears = 200
	DefaultKvW   = 0.7
	DefaultKvI   = 0.05
	DefaultDs    = 0.6
	DefaultDd    = 0.02
	DefaultA     = 193.0
)

// Config is a run file: what to force the model with, the caller
// coefficients and the numerical setup.
type Config struct {
	Name         string               `yaml:"name,omitempty"`
	Years        int                  `yaml:"years"`
	Coefficients physics.Coefficients `yaml:"coefficients"`
	Forcing      forcing.Spec         `yaml:"forcing"`
	Sim          sim.Config           `yaml:"sim"`
	// Metrics selects run metrics by name; empty means all of them.
	Metrics []string `yaml:"metrics,omitempty"`
}

func DefaultCoefficients() physics.Coefficients {
	return physics.Coefficients{
		KvW: DefaultKvW,
		KvI: DefaultKvI,
		Ds:  DefaultDs,
		Dd:  DefaultDd,
		A:   DefaultA,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Name:         "default",
		Years:        DefaultYears,
		Coefficients: DefaultCoefficients(),
		Forcing:      forcing.Spec{Kind: "constant"},
		Sim:          sim.DefaultConfig(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// normalize lets a run file give the duration once, at the top level.
func (c *Config) normalize() {
	if c.Forcing.Years == 0 && c.Forcing.Kind != "file" {
		c.Forcing.Years = c.Years
	}
}

func (c *Config) Validate() error {
	if c.Years < 0 {
		return fmt.Errorf("%w: years must be non-negative, got %d", dynamo.ErrParameterBounds, c.Years)
	}
	if err := c.Coefficients.Validate(); err != nil {
		return err
	}
	return c.Sim.Validate()
}

// BuildForcing produces the forcing series, one value per year.
func (c *Config) BuildForcing() ([]float64, error) {
	c.normalize()
	return c.Forcing.Build()
}

// SetParam sets a caller coefficient (kv_w, kv_i, ds, dd, a) or, failing
// that, a physical constant by name.
func (c *Config) SetParam(name string, value float64) error {
	if _, ok := c.Coefficients.GetParams()[name]; ok {
		return c.Coefficients.SetParam(name, value)
	}
	return c.Sim.Constants.SetParam(name, value)
}

// Clone returns a copy that shares nothing mutable with c.
func (c *Config) Clone() *Config {
	out := *c
	out.Metrics = append([]string(nil), c.Metrics...)
	return &out
}
