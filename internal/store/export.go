package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/oceanebm/internal/physics"
	"github.com/san-kum/oceanebm/internal/sim"
)

type ExportData struct {
	Solver       string               `json:"solver"`
	StepsPerYear int                  `json:"steps_per_year"`
	Years        int                  `json:"years"`
	Steps        int                  `json:"steps"`
	Coefficients physics.Coefficients `json:"coefficients"`
	Constants    physics.Constants    `json:"constants"`
	X            []float64            `json:"x"`
	Times        []float64            `json:"times"`
	T            [][]float64          `json:"t"`
	Td           [][]float64          `json:"td"`
	Fb           [][]float64          `json:"fb"`
	Metrics      map[string]float64   `json:"metrics"`
}

func newExportData(cfg sim.Config, coeffs physics.Coefficients, result *sim.Result) ExportData {
	return ExportData{
		Solver:       cfg.Solver,
		StepsPerYear: result.StepsPerYear,
		Years:        result.Years(),
		Steps:        len(result.Times),
		Coefficients: coeffs,
		Constants:    cfg.Constants,
		X:            result.X,
		Times:        result.Times,
		T:            result.T,
		Td:           result.Td,
		Fb:           result.Fb,
		Metrics:      result.Metrics,
	}
}

// Export writes the result as indented JSON.
func Export(w io.Writer, cfg sim.Config, coeffs physics.Coefficients, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(cfg, coeffs, result))
}

func ExportFile(path string, cfg sim.Config, coeffs physics.Coefficients, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Export(file, cfg, coeffs, result); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
