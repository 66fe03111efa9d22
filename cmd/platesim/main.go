package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir string
	verbose bool
	// Plate parameters
	size        int
	tolerance   float64
	maxIter     int
	method      string
	top         float64
	bottom      float64
	left        float64
	right       float64
	initial     float64
	corners     string
	cornerValue float64
	// Config file
	configFile string
	saveConfig string
	// Preset name
	preset string
	noSave bool
	// Output
	paletteName string
	gifPath     string
	outFile     string
	benchSizes  []int
	// Batch runs
	workers    int
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

func addPlateFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&size, "size", 32, "grid size (cells per side)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 1e-4, "stop when the max per-sweep change drops below this")
	cmd.Flags().IntVar(&maxIter, "max-iter", 10000, "sweep cap")
	cmd.Flags().StringVar(&method, "method", "gauss-seidel", "gauss-seidel or jacobi")
	cmd.Flags().Float64Var(&top, "top", 100, "top edge temperature")
	cmd.Flags().Float64Var(&bottom, "bottom", 0, "bottom edge temperature")
	cmd.Flags().Float64Var(&left, "left", 0, "left edge temperature")
	cmd.Flags().Float64Var(&right, "right", 0, "right edge temperature")
	cmd.Flags().Float64Var(&initial, "initial", 0, "initial interior temperature")
	cmd.Flags().StringVar(&corners, "corners", "mean", "corner policy: mean or fixed")
	cmd.Flags().Float64Var(&cornerValue, "corner-value", 0, "corner temperature (fixed policy)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "platesim",
		Short: "steady-state heat relaxation on a square plate",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(verbose)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".platesim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "relax a plate to steady state",
		Args:  cobra.NoArgs,
		RunE:  runSolve,
	}
	addPlateFlags(solveCmd)
	solveCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	solveCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the resolved config to this yaml file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show the final grid of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().StringVar(&paletteName, "palette", "thermal", "colour palette")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot convergence and centre profile",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "convergence rate analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the final grid to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id] [file]",
		Short: "render the final grid as a PNG heatmap",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportPNG,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [file]",
		Short: "render the final grid as an SVG heatmap",
		Long: `Render the final grid as an SVG heatmap with one outlined square per
edge cell and one square per interior cell, coloured with the same palettes
as the terminal views (--palette). For a gonum/plot rendering with axes and
the PNG colour ramp, pass a .svg file name to export-png instead.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&paletteName, "palette", "thermal", "colour palette")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare gauss-seidel and jacobi on the same plate",
		Args:  cobra.NoArgs,
		RunE:  compareMethods,
	}
	addPlateFlags(compareCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark solves over grid sizes",
		Args:  cobra.NoArgs,
		RunE:  benchSolve,
	}
	benchCmd.Flags().IntSliceVar(&benchSizes, "sizes", []int{8, 16, 32, 64}, "grid sizes")
	benchCmd.Flags().Float64Var(&tolerance, "tolerance", 1e-4, "convergence tolerance")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the plate relax",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addPlateFlags(liveCmd)
	liveCmd.Flags().StringVar(&paletteName, "palette", "thermal", "colour palette")
	liveCmd.Flags().StringVar(&gifPath, "gif", "platesim.gif", "recording output path")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml batch of solves",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().IntVar(&workers, "workers", 0, "parallel solves (0 = GOMAXPROCS)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "solve across a range of one parameter",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addPlateFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "top", "parameter to vary")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 100, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel solves (0 = GOMAXPROCS)")

	rootCmd.AddCommand(solveCmd, listCmd, showCmd, plotCmd, analyzeCmd, exportJSONCmd, exportCSVCmd,
		exportPNGCmd, exportSVGCmd, presetsCmd, compareCmd, benchCmd, liveCmd, scenarioCmd, sweepCmd)

	return rootCmd
}
