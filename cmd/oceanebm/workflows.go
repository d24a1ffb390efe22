package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/oceanebm/internal/automation"
	"github.com/san-kum/oceanebm/internal/export"
	"github.com/san-kum/oceanebm/internal/optim"
	"github.com/san-kum/oceanebm/internal/storage"
)

var (
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	gridParams []string
	targetSpec string
	svgWidth   int
	svgHeight  int
	svgOut     string
)

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ids, err := automation.RunScenario(ctx, sc, st, logger)
	rows := make([][2]string, len(ids))
	for i, id := range ids {
		rows[i] = [2]string{fmt.Sprintf("step %d", i+1), id}
	}
	if len(rows) > 0 {
		fmt.Println(renderSummary(fmt.Sprintf("scenario %s", sc.Name), rows))
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Base:      cfg,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunSweep(ctx, sweep, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMEAN T\tMEAN FB\tICE EDGE\tSTATUS\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%g\t-\t-\t-\t%v\n", r.ParamValue, r.Err)
			continue
		}
		fmt.Fprintf(w, "%g\t%.4f\t%.4f\t%.4f\tok\n",
			r.ParamValue, r.Metrics["mean_surface_t"], r.Metrics["mean_flux"], r.Metrics["ice_edge"])
	}
	return w.Flush()
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	metric, want, err := parseAssignment(targetSpec)
	if err != nil {
		return fmt.Errorf("--target: %w", err)
	}

	names := make([]string, 0, len(gridParams))
	ranges := make([][]float64, 0, len(gridParams))
	for _, spec := range gridParams {
		name, vals, err := parseRange(spec)
		if err != nil {
			return fmt.Errorf("--grid %q: %w", spec, err)
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	params, score, err := optim.NewGridSearch(names, ranges).Search(ctx, cfg, optim.Target(metric, want))
	if err != nil {
		return err
	}

	rows := make([][2]string, 0, len(names)+1)
	for _, name := range names {
		rows = append(rows, [2]string{name, strconv.FormatFloat(params[name], 'g', -1, 64)})
	}
	rows = append(rows, [2]string{"|" + metric + " - target|", fmt.Sprintf("%.6g", score)})
	fmt.Println(renderSummary("best fit", rows))
	return nil
}

// parseAssignment reads "name=value".
func parseAssignment(s string) (string, float64, error) {
	name, val, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", 0, fmt.Errorf("want name=value, got %q", s)
	}
	v, err := strconv.ParseFloat(val, 64)
	return name, v, err
}

// parseRange reads "name=v1,v2,..." or "name=min:max:step".
func parseRange(s string) (string, []float64, error) {
	name, list, ok := strings.Cut(s, "=")
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("want name=v1,v2 or name=min:max:step")
	}

	if parts := strings.Split(list, ":"); len(parts) == 3 {
		var lim [3]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return "", nil, err
			}
			lim[i] = v
		}
		if lim[2] <= 0 || lim[1] < lim[0] {
			return "", nil, fmt.Errorf("bad range %q", list)
		}
		var vals []float64
		for i := 0; lim[0]+float64(i)*lim[2] <= lim[1]+1e-9*lim[2]; i++ {
			vals = append(vals, lim[0]+float64(i)*lim[2])
		}
		return name, vals, nil
	}

	var vals []float64
	for _, p := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return "", nil, err
		}
		vals = append(vals, v)
	}
	return name, vals, nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	if len(result.Times) == 0 {
		return fmt.Errorf("no data to export")
	}

	last := len(result.Times) - 1
	svg := export.LineSVG([][]export.Point{
		export.Line(result.X, result.T[last]),
		export.Line(result.X, result.Td[last]),
	}, svgWidth, svgHeight, []string{"#ff5f5f", "#5f87ff"})

	if svgOut == "" {
		_, err = fmt.Println(svg)
		return err
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}
