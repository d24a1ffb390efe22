package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/oceanebm/internal/analysis"
	"github.com/san-kum/oceanebm/internal/config"
	"github.com/san-kum/oceanebm/internal/experiment"
	"github.com/san-kum/oceanebm/internal/sim"
	"github.com/san-kum/oceanebm/internal/storage"
	"github.com/san-kum/oceanebm/internal/store"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tYEARS\tCELLS\tSOLVER\tMEAN T")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%.3f\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Years,
			run.Resolution,
			run.Solver,
			run.Metrics["mean_surface_t"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	if len(result.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Println(renderSummary(meta.ID, [][2]string{
		{"name", meta.Name},
		{"years", strconv.Itoa(meta.Years)},
		{"ticks", strconv.Itoa(len(result.Times))},
	}))

	meanT := analysis.GlobalMeanSeries(result.T)
	meanTd := analysis.GlobalMeanSeries(result.Td)
	graph := asciigraph.PlotMany([][]float64{meanT, meanTd},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.Caption("global mean T (red) and Td (blue), degC"),
	)
	fmt.Println(graph)
	fmt.Println()

	edge := analysis.IceEdgeSeries(result.X, result.T, meta.Constants.Tf)
	graph = asciigraph.Plot(edge,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("ice edge, sin(latitude)"),
	)
	fmt.Println(graph)
	fmt.Println()

	last := result.T[len(result.T)-1]
	graph = asciigraph.Plot(last,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("surface T at t=%.1f, equator to pole", result.Times[len(result.Times)-1])),
	)
	fmt.Println(graph)

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	rows, _, err := st.LoadSeries(meta.ID, seriesName)
	if err != nil {
		return err
	}
	if len(rows) < 4 {
		return fmt.Errorf("too few ticks for spectral analysis: %d", len(rows))
	}

	data := analysis.GlobalMeanSeries(rows)
	dt := 1.0 / float64(meta.StepsPerYear)

	ps := analysis.PowerSpectrum(data)
	graph := asciigraph.Plot(ps[1:],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum of global mean %s", seriesName)),
	)
	fmt.Println(graph)
	fmt.Println()

	period := analysis.DominantPeriod(data, dt)
	fmt.Println(renderSummary("frequency analysis", [][2]string{
		{"run", meta.ID},
		{"series", seriesName},
		{"samples", strconv.Itoa(len(data))},
		{"peak period", fmt.Sprintf("%.3f yr", period)},
		{"final mean", fmt.Sprintf("%.4f", data[len(data)-1])},
	}))

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	if finalYear {
		result = result.FinalYear()
	}

	var rows [][]float64
	switch seriesName {
	case storage.Surface:
		rows = result.T
	case storage.Deep:
		rows = result.Td
	case storage.Flux:
		rows = result.Fb
	default:
		return fmt.Errorf("unknown series %q", seriesName)
	}

	if len(rows) == 0 {
		return fmt.Errorf("no data to export for %s", meta.ID)
	}

	w := csv.NewWriter(os.Stdout)

	header := []string{"time"}
	for _, x := range result.X {
		header = append(header, strconv.FormatFloat(x, 'f', 6, 64))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range rows {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, val := range rows[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	if finalYear {
		result = result.FinalYear()
	}

	if outPath != "" {
		return store.ExportFile(outPath, meta.SimConfig(), meta.Coefficients, result)
	}
	return store.Export(os.Stdout, meta.SimConfig(), meta.Coefficients, result)
}

func listPresets(cmd *cobra.Command, args []string) error {
	rows := make([][2]string, 0, len(config.Presets))
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		rows = append(rows, [2]string{name, fmt.Sprintf("%d yr, %s forcing, A=%g", p.Years, p.Forcing.Kind, p.Coefficients.A)})
	}
	fmt.Println(renderSummary("presets", rows))

	registry := experiment.NewRegistry()
	fmt.Println(renderSummary("options", [][2]string{
		{"solvers", strings.Join(registry.ListSolvers(), ", ")},
		{"forcing kinds", strings.Join(registry.ListForcings(), ", ")},
		{"metrics", strings.Join(registry.ListMetrics(), ", ")},
	}))
	return nil
}

func benchSolvers(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	f, err := cfg.BuildForcing()
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %d years on %d cells\n\n", len(f), cfg.Sim.Resolution)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOLVER\tTICKS\tTIME\tTICKS/SEC")

	for _, name := range []string{"banded", "dense"} {
		sc := cfg.Sim
		sc.Solver = name
		s, err := sim.New(sc, sim.WithLogger(logger))
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := s.Run(context.Background(), f, cfg.Coefficients)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\n",
			name, result.StepsTaken, elapsed.Round(time.Millisecond), float64(result.StepsTaken)/elapsed.Seconds())
	}

	return w.Flush()
}

func compareSolvers(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	f, err := cfg.BuildForcing()
	if err != nil {
		return err
	}

	results, err := sim.Compare(context.Background(), cfg.Sim, args, f, cfg.Coefficients, logger)
	if err != nil {
		return err
	}

	ref := results[0]
	last := len(ref.Times) - 1

	fmt.Printf("comparing solvers against %s (%d years, %d cells)\n\n", args[0], len(f), cfg.Sim.Resolution)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOLVER\tMEAN T\tMAX |dT|\tMAX |dTd|\tMAX |dFb|")

	for i, res := range results {
		fmt.Fprintf(w, "%s\t%.6f\t%.3e\t%.3e\t%.3e\n",
			args[i],
			analysis.GlobalMean(res.T[last]),
			floats.Distance(res.T[last], ref.T[last], math.Inf(1)),
			floats.Distance(res.Td[last], ref.Td[last], math.Inf(1)),
			floats.Distance(res.Fb[last], ref.Fb[last], math.Inf(1)),
		)
	}

	return w.Flush()
}
