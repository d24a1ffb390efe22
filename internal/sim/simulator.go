package sim

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/oceanebm/internal/dynamo"
	"github.com/san-kum/oceanebm/internal/grid"
	"github.com/san-kum/oceanebm/internal/physics"
	"github.com/san-kum/oceanebm/internal/solver"
)

type Option func(*Simulator)

func WithLogger(l *zap.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSolver overrides the solver named in the config.
func WithSolver(sv solver.Solver) Option {
	return func(s *Simulator) {
		if sv != nil {
			s.solver = sv
		}
	}
}

type Simulator struct {
	cfg       Config
	grid      *grid.Grid
	solver    solver.Solver
	logger    *zap.Logger
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(cfg Config, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g, err := grid.New(cfg.Resolution)
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		cfg:       cfg,
		grid:      g,
		logger:    zap.NewNop(),
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.solver == nil {
		if s.solver, err = solver.New(cfg.Solver); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Config() Config     { return s.cfg }
func (s *Simulator) Grid() *grid.Grid   { return s.grid }
func (s *Simulator) SolverName() string { return s.solver.Name() }

// Run integrates from the built-in initial profiles, one forcing value per
// simulated year.
func (s *Simulator) Run(ctx context.Context, forcing []float64, coeffs physics.Coefficients) (*Result, error) {
	return s.RunFrom(ctx, physics.InitialState(s.grid), forcing, coeffs)
}

// RunFrom integrates from x0. Ticks run strictly in order; a failure at any
// tick aborts the run and no partial result is returned.
func (s *Simulator) RunFrom(ctx context.Context, x0 dynamo.State, forcing []float64, coeffs physics.Coefficients) (*Result, error) {
	if err := ValidateForcing(forcing); err != nil {
		return nil, err
	}
	if err := coeffs.Validate(); err != nil {
		return nil, err
	}
	n := s.grid.N
	if err := x0.Check(n); err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}

	spy := s.cfg.StepsPerYear
	ticks := len(forcing) * spy
	rec := newRecorder(s.grid.X, ticks, spy)

	asm := physics.NewAssembler(s.grid, s.cfg.Constants, coeffs, s.cfg.Dt())
	sys := solver.NewSystem(n)
	x := x0.Clone()
	next := dynamo.NewState(n)
	fb := make(dynamo.Field, n)

	for _, m := range s.metrics {
		m.Reset()
	}

	progressTicks := s.cfg.ProgressYears * spy
	start := time.Now()
	s.logger.Debug("run started",
		zap.String("solver", s.solver.Name()),
		zap.Int("cells", n),
		zap.Int("years", len(forcing)),
		zap.Int("ticks", ticks))

	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, err)
		}

		t := float64(i+1) / float64(spy)
		asm.Assemble(x, forcing[i/spy], sys, fb)

		if err := s.solver.Solve(sys, next.T, next.Td); err != nil {
			return nil, &dynamo.SimulationError{Step: i, Time: t, Wrapped: err}
		}
		if !next.IsValid() {
			return nil, &dynamo.SimulationError{Step: i, Time: t, Wrapped: dynamo.ErrUnstable}
		}

		x, next = next, x
		rec.record(t, x.T, x.Td, fb)

		for _, m := range s.metrics {
			m.Observe(x, fb, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(i, t, x, fb)
		}

		if progressTicks > 0 && (i+1)%progressTicks == 0 {
			s.logger.Info("simulation progress",
				zap.Int("year", (i+1)/spy),
				zap.Int("tick", i+1),
				zap.Float64("mean_t", x.T.Mean()),
				zap.Float64("mean_td", x.Td.Mean()))
		}
	}

	result := rec.result
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.logger.Debug("run complete",
		zap.Int("ticks", result.StepsTaken),
		zap.Duration("elapsed", time.Since(start)))

	return result, nil
}

func ValidateForcing(forcing []float64) error {
	if len(forcing) == 0 {
		return dynamo.ErrEmptyForcing
	}
	for i, f := range forcing {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: year %d", dynamo.ErrInvalidForcing, i)
		}
	}
	return nil
}

// Run integrates the model with the default configuration.
func Run(ctx context.Context, forcing []float64, kvW, kvI, ds, dd, a float64) (*Result, error) {
	s, err := New(DefaultConfig())
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, forcing, physics.Coefficients{KvW: kvW, KvI: kvI, Ds: ds, Dd: dd, A: a})
}
