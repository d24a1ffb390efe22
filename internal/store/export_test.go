package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/oceanebm/internal/physics"
	"github.com/san-kum/oceanebm/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		X:            []float64{0.25, 0.75},
		Times:        []float64{0.5, 1.0},
		T:            [][]float64{{20, -3}, {19.5, -2.5}},
		Td:           [][]float64{{4, 1}, {4.1, 1.2}},
		Fb:           [][]float64{{0.1, 0.2}, {0.3, 0.4}},
		StepsPerYear: 2,
		StepsTaken:   2,
		Metrics:      map[string]float64{"ice_edge": 0.6},
	}
}

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	coeffs := physics.Coefficients{KvW: 0.7, KvI: 0.05, Ds: 0.6, Dd: 0.02, A: 193}

	if err := Export(&buf, sim.DefaultConfig(), coeffs, testResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if got.Steps != 2 || got.Years != 1 {
		t.Errorf("steps=%d years=%d, want 2 and 1", got.Steps, got.Years)
	}
	if got.Solver != "banded" {
		t.Errorf("solver = %s", got.Solver)
	}
	if got.T[1][1] != -2.5 || got.Td[0][1] != 1 || got.Fb[1][0] != 0.3 {
		t.Errorf("series not exported: %+v", got)
	}
	if got.Coefficients.A != 193 {
		t.Errorf("coefficients not exported: %+v", got.Coefficients)
	}
	if got.Metrics["ice_edge"] != 0.6 {
		t.Errorf("metrics not exported: %v", got.Metrics)
	}
}

func TestExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")

	if err := ExportFile(path, sim.DefaultConfig(), physics.Coefficients{}, testResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !json.Valid(data) {
		t.Error("exported file is not valid json")
	}
}

func TestExportFileBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "run.json")
	if err := ExportFile(path, sim.DefaultConfig(), physics.Coefficients{}, testResult()); err == nil {
		t.Error("expected error for unwritable path")
	}
}
