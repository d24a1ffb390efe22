package sim

import (
	"fmt"

	"github.com/san-kum/oceanebm/internal/dynamo"
	"github.com/san-kum/oceanebm/internal/physics"
	"github.com/san-kum/oceanebm/internal/solver"
)

const (
	DefaultResolution    = 800
	DefaultStepsPerYear  = 5
	DefaultProgressYears = 100
)

// Config is the fixed numerical and physical setup of a run. It is copied
// into the simulator and never mutated afterwards.
type Config struct {
	Resolution    int               `yaml:"resolution" json:"resolution"`
	StepsPerYear  int               `yaml:"steps_per_year" json:"steps_per_year"`
	Constants     physics.Constants `yaml:"constants" json:"constants"`
	Solver        string            `yaml:"solver" json:"solver"`
	ProgressYears int               `yaml:"progress_years" json:"progress_years"`
}

func DefaultConfig() Config {
	return Config{
		Resolution:    DefaultResolution,
		StepsPerYear:  DefaultStepsPerYear,
		Constants:     physics.DefaultConstants(),
		Solver:        solver.DefaultName,
		ProgressYears: DefaultProgressYears,
	}
}

// Dt is the step length in years.
func (c Config) Dt() float64 {
	return 1.0 / float64(c.StepsPerYear)
}

func (c Config) Validate() error {
	if c.Resolution < 2 {
		return fmt.Errorf("%w: resolution must be at least 2, got %d", dynamo.ErrParameterBounds, c.Resolution)
	}
	if c.StepsPerYear < 1 {
		return fmt.Errorf("%w: steps per year must be positive, got %d", dynamo.ErrParameterBounds, c.StepsPerYear)
	}
	if c.ProgressYears < 0 {
		return fmt.Errorf("%w: progress interval must be non-negative, got %d", dynamo.ErrParameterBounds, c.ProgressYears)
	}
	return c.Constants.Validate()
}
