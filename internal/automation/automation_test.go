package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/oceanebm/internal/config"
	"github.com/san-kum/oceanebm/internal/storage"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Years = 2
	cfg.Sim.Resolution = 30
	return cfg
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	data := []byte(`name: olr
description: warmer and colder baselines
base:
  years: 2
  sim:
    resolution: 30
steps:
  - params: {a: 190}
    save_as: warm
  - params: {a: 200, kv_i: 0.01}
    save_as: cold
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(sc.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(sc.Steps))
	}
	if sc.Base.Sim.StepsPerYear != 5 {
		t.Errorf("base lost its defaults: %+v", sc.Base.Sim)
	}

	cfg, err := sc.Config(sc.Steps[1])
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "cold" || cfg.Coefficients.A != 200 || cfg.Coefficients.KvI != 0.01 {
		t.Errorf("step config = %+v", cfg)
	}
	if sc.Base.Coefficients.A == 200 {
		t.Error("step overrides leaked into the base")
	}
}

func TestRunScenario(t *testing.T) {
	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	sc := &Scenario{
		Name: "pair",
		Base: smallConfig(),
		Steps: []ScenarioStep{
			{SaveAs: "first"},
			{SaveAs: "second", Params: map[string]float64{"ds": 0.3}},
		},
	}

	ids, err := RunScenario(context.Background(), sc, st, nil)
	if err != nil {
		t.Fatalf("scenario failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(ids))
	}

	meta, err := st.Load(ids[1])
	if err != nil {
		t.Fatal(err)
	}
	if meta.Name != "second" || meta.Coefficients.Ds != 0.3 {
		t.Errorf("saved metadata = %+v", meta)
	}
}

func TestRunScenarioBadParam(t *testing.T) {
	st := storage.New(t.TempDir())
	sc := &Scenario{
		Base:  smallConfig(),
		Steps: []ScenarioStep{{Params: map[string]float64{"gain": 1}}},
	}
	if _, err := RunScenario(context.Background(), sc, st, nil); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestSweepValues(t *testing.T) {
	s := &ParameterSweep{ParamMin: 190, ParamMax: 200, NumSteps: 3}
	vals := s.Values()
	if len(vals) != 3 || vals[0] != 190 || vals[1] != 195 || vals[2] != 200 {
		t.Errorf("values = %v", vals)
	}

	s.NumSteps = 1
	if vals := s.Values(); len(vals) != 1 || vals[0] != 190 {
		t.Errorf("single step values = %v", vals)
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{
		Base:      smallConfig(),
		ParamName: "a",
		ParamMin:  180,
		ParamMax:  210,
		NumSteps:  3,
	}

	results, err := RunSweep(context.Background(), sweep, nil)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// Larger outgoing radiation cools the surface.
	prev := results[0].Metrics["mean_surface_t"]
	for _, r := range results[1:] {
		if r.Err != nil {
			t.Fatalf("a=%g failed: %v", r.ParamValue, r.Err)
		}
		cur := r.Metrics["mean_surface_t"]
		if cur >= prev {
			t.Errorf("mean T did not drop with a: %v then %v", prev, cur)
		}
		prev = cur
	}
	if len(results[0].FinalT) != 30 {
		t.Errorf("final profile has %d cells, want 30", len(results[0].FinalT))
	}
}
