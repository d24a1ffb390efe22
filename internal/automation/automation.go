package automation

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/oceanebm/internal/config"
	"github.com/san-kum/oceanebm/internal/experiment"
	"github.com/san-kum/oceanebm/internal/sim"
	"github.com/san-kum/oceanebm/internal/storage"
)

// Scenario is a scripted sequence of runs sharing one base configuration.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Base        *config.Config `yaml:"base"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep overrides the base configuration for a single run.
type ScenarioStep struct {
	Preset string             `yaml:"preset"`
	Years  int                `yaml:"years"`
	Params map[string]float64 `yaml:"params"`
	SaveAs string             `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	scenario := Scenario{Base: config.DefaultConfig()}
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Config resolves the configuration of one step.
func (s *Scenario) Config(step ScenarioStep) (*config.Config, error) {
	base := s.Base
	if base == nil {
		base = config.DefaultConfig()
	}
	cfg := base.Clone()

	if step.Preset != "" {
		if cfg = config.GetPreset(step.Preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", step.Preset)
		}
	}
	if step.Years > 0 {
		cfg.Years = step.Years
		cfg.Forcing.Years = step.Years
	}
	for name, val := range step.Params {
		if err := cfg.SetParam(name, val); err != nil {
			return nil, err
		}
	}
	if step.SaveAs != "" {
		cfg.Name = step.SaveAs
	}
	return cfg, nil
}

// RunScenario executes all steps in order and saves each run. It returns
// the ids of the runs saved before any failure.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ids := make([]string, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := scenario.Config(step)
		if err != nil {
			return ids, fmt.Errorf("step %d: %w", i+1, err)
		}

		logger.Info("scenario step",
			zap.String("scenario", scenario.Name),
			zap.Int("step", i+1),
			zap.Int("of", len(scenario.Steps)),
			zap.String("run", cfg.Name))

		exp := experiment.New(cfg, logger)
		if err := exp.Setup(); err != nil {
			return ids, fmt.Errorf("step %d: %w", i+1, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return ids, fmt.Errorf("step %d: %w", i+1, err)
		}

		id, err := st.Save(cfg.Name, cfg.Sim, cfg.Coefficients, exp.Forcing(), result)
		if err != nil {
			return ids, fmt.Errorf("step %d: %w", i+1, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// ParameterSweep runs the base configuration across evenly spaced values of
// one parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds the end state summary of one sweep point.
type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
	FinalT     []float64
	Err        error
}

// Values returns the parameter values the sweep visits.
func (p *ParameterSweep) Values() []float64 {
	if p.NumSteps <= 1 {
		return []float64{p.ParamMin}
	}
	step := (p.ParamMax - p.ParamMin) / float64(p.NumSteps-1)
	vals := make([]float64, p.NumSteps)
	for i := range vals {
		vals[i] = p.ParamMin + float64(i)*step
	}
	return vals
}

// RunSweep executes a parameter sweep. A point whose run fails records the
// error and the sweep moves on; configuration errors abort it.
func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *zap.Logger) ([]SweepResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	vals := sweep.Values()
	results := make([]SweepResult, 0, len(vals))

	for i, val := range vals {
		cfg := sweep.Base.Clone()
		if err := cfg.SetParam(sweep.ParamName, val); err != nil {
			return nil, err
		}

		exp := experiment.New(cfg, logger)
		if err := exp.Setup(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, val, err)
		}

		sr := SweepResult{ParamValue: val}
		result, err := exp.Run(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return results, err
			}
			sr.Err = err
		} else {
			sr.Metrics = result.Metrics
			sr.FinalT = finalRow(result)
		}
		results = append(results, sr)

		logger.Debug("sweep point",
			zap.Int("point", i+1),
			zap.Int("of", len(vals)),
			zap.String("param", sweep.ParamName),
			zap.Float64("value", val),
			zap.Error(sr.Err))
	}

	return results, nil
}

func finalRow(r *sim.Result) []float64 {
	if len(r.T) == 0 {
		return nil
	}
	return r.T[len(r.T)-1]
}
