package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/oceanebm/internal/config"
	"github.com/san-kum/oceanebm/internal/storage"
	"github.com/san-kum/oceanebm/internal/store"
)

func execute(t *testing.T, args ...string) {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("oceanebm %v: %v", args, err)
	}
}

func TestCLI_RunListExport(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "runs")
	t.Setenv("OCEANEBM_DATA", filepath.Join(dir, "unused"))
	t.Setenv("OCEANEBM_LOG_LEVEL", "error")

	cfgPath := filepath.Join(dir, "resolved.yaml")
	execute(t, "run", "--data", dataPath,
		"--n", "20", "--years", "1", "--a", "180",
		"--name", "cli/run",
		"--metrics", "mean_surface_t,ice_area",
		"--save-config", cfgPath)

	runs, err := storage.New(dataPath).List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run under --data, got %d", len(runs))
	}
	run := runs[0]
	if run.Name != "cli/run" || run.Resolution != 20 || run.Years != 1 {
		t.Errorf("unexpected run metadata: %+v", run)
	}
	if len(run.Metrics) != 2 {
		t.Errorf("expected only the selected metrics, got %v", run.Metrics)
	}
	if _, ok := run.Metrics["ice_area"]; !ok {
		t.Errorf("ice_area not recorded: %v", run.Metrics)
	}
	if _, err := os.Stat(filepath.Join(dir, "unused")); !os.IsNotExist(err) {
		t.Errorf("--data should win over OCEANEBM_DATA")
	}

	saved, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("load saved config: %v", err)
	}
	if saved.Coefficients.A != 180 || saved.Sim.Resolution != 20 || len(saved.Metrics) != 2 {
		t.Errorf("saved config does not match the run: %+v", saved)
	}

	outPath := filepath.Join(dir, "run.json")
	execute(t, "list", "--data", dataPath)
	execute(t, "export-json", run.ID, "--data", dataPath, "--final-year", "-o", outPath)

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var doc store.ExportData
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if len(doc.X) != 20 || len(doc.T) != doc.StepsPerYear {
		t.Errorf("export shape: %d cells, %d rows, %d steps per year", len(doc.X), len(doc.T), doc.StepsPerYear)
	}
}

func TestCLI_RunRejectsUnknownMetric(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OCEANEBM_LOG_LEVEL", "error")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"run", "--data", dir, "--n", "10", "--years", "1", "--metrics", "nope"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for an unknown metric")
	}
}
