package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/oceanebm/internal/config"
	"github.com/san-kum/oceanebm/internal/experiment"
	"github.com/san-kum/oceanebm/internal/storage"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	runName    string
	years      int
	solverName string
	resolution int
	// caller coefficients
	kvW  float64
	kvI  float64
	ds   float64
	dd   float64
	aOLR float64
	// forcing
	forcingKind  string
	forcingValue float64
	forcingEnd   float64
	forcingOnset int
	forcingFile  string
	// output
	seriesName string
	finalYear  bool
	outPath    string
	saveConfig string
	metricList []string

	logger = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "oceanebm",
		Short:         "two-layer ocean energy balance model",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.LoadEnv()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("data") {
				dataDir = env.DataDir
			}
			logger, err = newLogger(env.LogLevel, verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".oceanebm", "data directory (env OCEANEBM_DATA)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "development logging at debug level")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&runName, "name", "", "run name")
	runCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the resolved configuration to this yaml file")
	runCmd.Flags().StringSliceVar(&metricList, "metrics", nil, "metrics to record (default all)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot global means and the final latitude profile",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of global mean temperature",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&seriesName, "series", storage.Surface, "series to analyze (surface, deep, flux)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export one series to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&seriesName, "series", storage.Surface, "series to export (surface, deep, flux)")
	exportCSVCmd.Flags().BoolVar(&finalYear, "final-year", false, "only the last simulated year")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().BoolVar(&finalYear, "final-year", false, "only the last simulated year")
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time each solver on the same run",
		Args:  cobra.NoArgs,
		RunE:  benchSolvers,
	}
	addRunFlags(benchCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [solver1] [solver2] ...",
		Short: "run solvers concurrently and report their differences",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareSolvers,
	}
	addRunFlags(compareCmd)

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run and save every step of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter over an even range",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "a", "parameter to sweep (coefficient or constant name)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 185, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 205, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	calibrateCmd := &cobra.Command{
		Use:   "calibrate",
		Short: "grid search parameters to hit a metric target",
		Args:  cobra.NoArgs,
		RunE:  runCalibrate,
	}
	addRunFlags(calibrateCmd)
	calibrateCmd.Flags().StringArrayVar(&gridParams, "grid", nil, "parameter grid, name=v1,v2 or name=min:max:step (repeatable)")
	calibrateCmd.Flags().StringVar(&targetSpec, "target", "ice_edge=0.7", "metric=value to approach")
	_ = calibrateCmd.MarkFlagRequired("grid")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the final T and Td profiles as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd,
		presetsCmd, benchCmd, compareCmd, scenarioCmd, sweepCmd, calibrateCmd)

	return rootCmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&years, "years", config.DefaultYears, "simulated years")
	cmd.Flags().StringVar(&solverName, "solver", "banded", "implicit solver (banded, dense)")
	cmd.Flags().IntVar(&resolution, "n", 800, "grid cells")
	cmd.Flags().Float64Var(&kvW, "kv-w", config.DefaultKvW, "open-water vertical exchange")
	cmd.Flags().Float64Var(&kvI, "kv-i", config.DefaultKvI, "under-ice vertical exchange")
	cmd.Flags().Float64Var(&ds, "ds", config.DefaultDs, "surface diffusivity")
	cmd.Flags().Float64Var(&dd, "dd", config.DefaultDd, "deep diffusivity")
	cmd.Flags().Float64Var(&aOLR, "a", config.DefaultA, "OLR at 0 degC")
	cmd.Flags().StringVar(&forcingKind, "forcing", "constant", "forcing kind (constant, ramp, step, file)")
	cmd.Flags().Float64Var(&forcingValue, "f", 0, "forcing value (constant, step) or ramp start")
	cmd.Flags().Float64Var(&forcingEnd, "f-end", 0, "ramp end value")
	cmd.Flags().IntVar(&forcingOnset, "onset", 0, "first forced year (step)")
	cmd.Flags().StringVar(&forcingFile, "forcing-file", "", "forcing CSV (file)")
}

// buildConfig layers defaults, preset, config file and changed flags, in
// that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("years") {
		cfg.Years = years
		cfg.Forcing.Years = years
	}
	if flags.Changed("solver") {
		cfg.Sim.Solver = solverName
	}
	if flags.Changed("n") {
		cfg.Sim.Resolution = resolution
	}
	if flags.Changed("kv-w") {
		cfg.Coefficients.KvW = kvW
	}
	if flags.Changed("kv-i") {
		cfg.Coefficients.KvI = kvI
	}
	if flags.Changed("ds") {
		cfg.Coefficients.Ds = ds
	}
	if flags.Changed("dd") {
		cfg.Coefficients.Dd = dd
	}
	if flags.Changed("a") {
		cfg.Coefficients.A = aOLR
	}
	if flags.Changed("forcing") {
		cfg.Forcing.Kind = forcingKind
	}
	if flags.Changed("f") {
		cfg.Forcing.Value = forcingValue
		cfg.Forcing.Start = forcingValue
	}
	if flags.Changed("f-end") {
		cfg.Forcing.End = forcingEnd
	}
	if flags.Changed("onset") {
		cfg.Forcing.Onset = forcingOnset
	}
	if flags.Changed("forcing-file") {
		cfg.Forcing.Kind = "file"
		cfg.Forcing.Path = forcingFile
	}
	if flags.Lookup("name") != nil && flags.Changed("name") {
		cfg.Name = runName
	}
	if flags.Lookup("metrics") != nil && flags.Changed("metrics") {
		cfg.Metrics = metricList
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg, logger)
	if err := exp.Setup(); err != nil {
		return err
	}

	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s for %d years...\n", cfg.Name, len(exp.Forcing()))
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Name, cfg.Sim, cfg.Coefficients, exp.Forcing(), result)
	if err != nil {
		return err
	}

	ticks, cells := result.Shape()
	fmt.Println(renderSummary("run complete", [][2]string{
		{"run id", runID},
		{"solver", exp.Simulator().SolverName()},
		{"elapsed", elapsed.Round(time.Millisecond).String()},
		{"shape", fmt.Sprintf("%d ticks x %d cells", ticks, cells)},
	}))
	fmt.Println(renderMetrics(result.Metrics))

	return nil
}
