package experiment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/oceanebm/internal/config"
	"github.com/san-kum/oceanebm/internal/dynamo"
	"github.com/san-kum/oceanebm/internal/sim"
)

type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	logger    *zap.Logger
	simulator *sim.Simulator
	forcing   []float64
}

func New(cfg *config.Config, logger *zap.Logger) *Experiment {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
		logger:   logger,
	}
}

// Setup validates the run file, builds the forcing series and the simulator
// with the configured metrics attached (all of them by default).
func (e *Experiment) Setup() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	f, err := e.cfg.BuildForcing()
	if err != nil {
		return fmt.Errorf("forcing: %w", err)
	}

	sv, err := e.registry.GetSolver(e.cfg.Sim.Solver)
	if err != nil {
		return err
	}

	s, err := sim.New(e.cfg.Sim, sim.WithLogger(e.logger), sim.WithSolver(sv))
	if err != nil {
		return err
	}
	ms, err := e.registry.Metrics(e.cfg.Metrics, s.Grid().X, e.cfg.Sim.Constants)
	if err != nil {
		return err
	}
	for _, m := range ms {
		s.AddMetric(m)
	}

	e.simulator = s
	e.forcing = f
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	e.logger.Info("experiment started",
		zap.String("name", e.cfg.Name),
		zap.String("solver", e.simulator.SolverName()),
		zap.Int("years", len(e.forcing)))

	result, err := e.simulator.Run(ctx, e.forcing, e.cfg.Coefficients)
	if err != nil {
		return nil, err
	}

	e.logger.Info("experiment complete",
		zap.String("name", e.cfg.Name),
		zap.Int("ticks", result.StepsTaken))
	return result, nil
}

func (e *Experiment) AddObserver(o dynamo.Observer) {
	if e.simulator != nil {
		e.simulator.AddObserver(o)
	}
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// Forcing is the series built by Setup.
func (e *Experiment) Forcing() []float64 { return e.forcing }

func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }
