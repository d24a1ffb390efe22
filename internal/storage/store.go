package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/oceanebm/internal/physics"
	"github.com/san-kum/oceanebm/internal/sim"
)

// Series files written next to metadata.json, one row per tick.
const (
	Surface = "surface"
	Deep    = "deep"
	Flux    = "flux"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Timestamp    time.Time            `json:"timestamp"`
	Solver       string               `json:"solver"`
	Resolution   int                  `json:"resolution"`
	StepsPerYear int                  `json:"steps_per_year"`
	Years        int                  `json:"years"`
	Ticks        int                  `json:"ticks"`
	Coefficients physics.Coefficients `json:"coefficients"`
	Constants    physics.Constants    `json:"constants"`
	Forcing      []float64            `json:"forcing"`
	Metrics      map[string]float64   `json:"metrics"`
}

// Save writes a run directory and returns its id.
func (s *Store) Save(name string, cfg sim.Config, coeffs physics.Coefficients, forcing []float64, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", runPrefix(name), now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Name:         name,
		Timestamp:    now,
		Solver:       cfg.Solver,
		Resolution:   len(result.X),
		StepsPerYear: result.StepsPerYear,
		Years:        result.Years(),
		Ticks:        result.StepsTaken,
		Coefficients: coeffs,
		Constants:    cfg.Constants,
		Forcing:      forcing,
		Metrics:      result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeGrid(filepath.Join(runDir, "grid.csv"), result.X); err != nil {
		return "", err
	}

	series := map[string][][]float64{
		Surface: result.T,
		Deep:    result.Td,
		Flux:    result.Fb,
	}
	for kind, rows := range series {
		path := filepath.Join(runDir, kind+".csv")
		if err := writeSeries(path, result.Times, rows); err != nil {
			return "", fmt.Errorf("write %s: %w", kind, err)
		}
	}

	return runID, nil
}

// runPrefix turns a run name into a single path element.
func runPrefix(name string) string {
	prefix := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator || r == ':' {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	prefix = strings.TrimLeft(prefix, ".")
	if prefix == "" {
		return "run"
	}
	return prefix
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeGrid(path string, x []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"i", "x"}); err != nil {
		return err
	}
	for i, v := range x {
		if err := w.Write([]string{strconv.Itoa(i), formatFloat(v)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeSeries(path string, times []float64, rows [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if len(rows) == 0 {
		w.Flush()
		return w.Error()
	}

	header := make([]string, 0, len(rows[0])+1)
	header = append(header, "time")
	for i := range rows[0] {
		header = append(header, fmt.Sprintf("c%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for i, row := range rows {
		record[0] = formatFloat(times[i])
		for j, val := range row {
			record[j+1] = formatFloat(val)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadGrid reads the cell centres of a run.
func (s *Store) LoadGrid(runID string) ([]float64, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "grid.csv"))
	if err != nil {
		return nil, err
	}

	x := make([]float64, 0, len(records))
	for _, record := range records {
		if len(record) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("grid.csv: %w", err)
		}
		x = append(x, v)
	}
	return x, nil
}

// LoadSeries reads one of Surface, Deep or Flux and returns rows and times.
func (s *Store) LoadSeries(runID, kind string) ([][]float64, []float64, error) {
	switch kind {
	case Surface, Deep, Flux:
	default:
		return nil, nil, fmt.Errorf("unknown series %q", kind)
	}

	records, err := readCSV(filepath.Join(s.baseDir, runID, kind+".csv"))
	if err != nil {
		return nil, nil, err
	}

	times := make([]float64, 0, len(records))
	rows := make([][]float64, 0, len(records))

	for i, record := range records {
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%s.csv row %d: %w", kind, i+1, err)
		}
		times = append(times, t)

		row := make([]float64, len(record)-1)
		for j := 1; j < len(record); j++ {
			if row[j-1], err = strconv.ParseFloat(record[j], 64); err != nil {
				return nil, nil, fmt.Errorf("%s.csv row %d: %w", kind, i+1, err)
			}
		}
		rows = append(rows, row)
	}

	return rows, times, nil
}

// readCSV returns the records after the header line.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}

// SimConfig rebuilds the numerical setup a run was made with.
func (m RunMetadata) SimConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Solver = m.Solver
	cfg.Resolution = m.Resolution
	cfg.StepsPerYear = m.StepsPerYear
	cfg.Constants = m.Constants
	return cfg
}

// LoadResult reassembles a saved run into the shape the simulator returned.
func (s *Store) LoadResult(runID string) (*RunMetadata, *sim.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	x, err := s.LoadGrid(runID)
	if err != nil {
		return nil, nil, err
	}

	result := &sim.Result{
		X:            x,
		StepsPerYear: meta.StepsPerYear,
		Metrics:      meta.Metrics,
	}
	if result.T, result.Times, err = s.LoadSeries(runID, Surface); err != nil {
		return nil, nil, err
	}
	if result.Td, _, err = s.LoadSeries(runID, Deep); err != nil {
		return nil, nil, err
	}
	if result.Fb, _, err = s.LoadSeries(runID, Flux); err != nil {
		return nil, nil, err
	}
	result.StepsTaken = len(result.Times)

	return meta, result, nil
}
