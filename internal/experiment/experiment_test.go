package experiment

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/san-kum/oceanebm/internal/config"
	"github.com/san-kum/oceanebm/internal/dynamo"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Years = 3
	cfg.Sim.Resolution = 40
	return cfg
}

func TestExperimentRun(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := New(smallConfig(), zap.New(core))

	if err := e.Setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	steps := 0
	e.AddObserver(dynamo.ObserverFunc(func(int, float64, dynamo.State, dynamo.Field) { steps++ }))

	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	ticks, cells := result.Shape()
	if ticks != 15 || cells != 40 {
		t.Errorf("shape = (%d, %d), want (15, 40)", ticks, cells)
	}
	if steps != 15 {
		t.Errorf("observer saw %d steps, want 15", steps)
	}
	if len(e.Forcing()) != 3 {
		t.Errorf("forcing length = %d, want 3", len(e.Forcing()))
	}
	for _, name := range NewRegistry().ListMetrics() {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("missing metric %s", name)
		}
	}
	if logs.FilterMessage("experiment complete").Len() != 1 {
		t.Error("expected a completion log entry")
	}
}

func TestExperimentNotSetup(t *testing.T) {
	e := New(smallConfig(), nil)
	if _, err := e.Run(context.Background()); err == nil {
		t.Error("expected error when running without setup")
	}
}

func TestExperimentRejectsBadConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Sim.Solver = "gauss"
	if err := New(cfg, nil).Setup(); !errors.Is(err, dynamo.ErrUnknownSolver) {
		t.Errorf("expected ErrUnknownSolver, got %v", err)
	}

	cfg = smallConfig()
	cfg.Years = 0
	if err := New(cfg, nil).Setup(); !errors.Is(err, dynamo.ErrEmptyForcing) {
		t.Errorf("expected ErrEmptyForcing, got %v", err)
	}
}

func TestExperimentSelectedMetrics(t *testing.T) {
	cfg := smallConfig()
	cfg.Metrics = []string{"ice_area", "mean_flux"}

	e := New(cfg, nil)
	if err := e.Setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Metrics) != 2 {
		t.Errorf("expected 2 metrics, got %v", result.Metrics)
	}
	if _, ok := result.Metrics["ice_area"]; !ok {
		t.Error("missing ice_area")
	}

	cfg = smallConfig()
	cfg.Metrics = []string{"lyapunov"}
	if err := New(cfg, nil).Setup(); err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	if len(r.ListSolvers()) != 2 {
		t.Errorf("expected 2 solvers, got %v", r.ListSolvers())
	}
	if len(r.ListForcings()) == 0 {
		t.Error("expected forcing kinds")
	}
	if _, err := r.GetMetric("lyapunov", nil, config.DefaultConfig().Sim.Constants); err == nil {
		t.Error("expected error for unknown metric")
	}

	m, err := r.GetMetric("ice_edge", []float64{0.5}, config.DefaultConfig().Sim.Constants)
	if err != nil {
		t.Fatalf("get metric: %v", err)
	}
	if m.Name() != "ice_edge" {
		t.Errorf("metric name = %s", m.Name())
	}
}
