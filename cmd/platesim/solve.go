package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/platesim/internal/analysis"
	"github.com/san-kum/platesim/internal/automation"
	"github.com/san-kum/platesim/internal/config"
	"github.com/san-kum/platesim/internal/plate"
	"github.com/san-kum/platesim/internal/storage"
	"github.com/san-kum/platesim/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, names)
		}
	}

	// Config file keys override the preset, absent keys keep it
	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("tolerance") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("max-iter") {
		cfg.MaxIterations = maxIter
	}
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("top") {
		cfg.Boundary.Top = top
	}
	if flags.Changed("bottom") {
		cfg.Boundary.Bottom = bottom
	}
	if flags.Changed("left") {
		cfg.Boundary.Left = left
	}
	if flags.Changed("right") {
		cfg.Boundary.Right = right
	}
	if flags.Changed("initial") {
		cfg.Boundary.Initial = initial
	}
	if flags.Changed("corners") {
		cfg.Boundary.Corners = corners
	}
	if flags.Changed("corner-value") {
		cfg.Boundary.CornerValue = cornerValue
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		slog.Info("config written", "path", saveConfig)
	}

	fmt.Printf("relaxing %dx%d plate (%s)...\n", cfg.Size, cfg.Size, cfg.Method)
	run, err := automation.Solve(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", run.Elapsed)
	fmt.Printf("sweeps: %d\n", run.Result.Iterations)
	fmt.Printf("delta: %.6e\n", run.Result.Delta)
	fmt.Printf("converged: %v\n", run.Result.Converged)
	fmt.Printf("average: %.6f\n", run.Result.Average)

	names := make([]string, 0, len(run.Result.Metrics))
	for name := range run.Result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, run.Result.Metrics[name])
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(run)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func compareMethods(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("comparing methods on a %dx%d plate\n\n", base.Size, base.Size)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tSWEEPS\tDELTA\tAVERAGE\tTIME\tCONTRACTION\tTHEORY")

	var grids []*plate.Grid
	for _, m := range []plate.Method{plate.GaussSeidel, plate.Jacobi} {
		cfg := base.Clone()
		cfg.Method = m.String()

		run, err := automation.Solve(cfg)
		if err != nil {
			return err
		}
		grids = append(grids, run.Grid)

		rep := analysis.Analyze(run.History, cfg.Size, m, cfg.Tolerance)
		fmt.Fprintf(w, "%s\t%d\t%.3e\t%.6f\t%v\t%.5f\t%.5f\n",
			m, run.Result.Iterations, run.Result.Delta, run.Result.Average,
			run.Elapsed, rep.Contraction, rep.Theoretical)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	diff := floats.Distance(grids[0].Cells, grids[1].Cells, math.Inf(1))
	fmt.Printf("\nmax cell difference: %.3e\n", diff)
	return nil
}

func benchSolve(cmd *cobra.Command, args []string) error {
	fmt.Println("benchmarking relaxation")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tMETHOD\tSWEEPS\tTIME\tSWEEPS/SEC\tCELLS/SEC")

	for _, n := range benchSizes {
		for _, m := range []plate.Method{plate.GaussSeidel, plate.Jacobi} {
			b := plate.DefaultBoundary()
			g := plate.NewGrid(n)
			plate.MakeGrid(g, b)

			s := plate.NewSolver()
			s.Method = m
			s.Tolerance = tolerance
			s.MaxIterations = 100 * g.N * g.N

			start := time.Now()
			res := s.Relax(g)
			elapsed := time.Since(start)

			perSec := float64(res.Iterations) / elapsed.Seconds()
			interior := float64((g.N - 2) * (g.N - 2))
			fmt.Fprintf(w, "%d\t%s\t%d\t%v\t%.0f\t%.0f\n",
				g.N, m, res.Iterations, elapsed, perSec, perSec*interior)
		}
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	solver, err := cfg.Solver()
	if err != nil {
		return err
	}
	b, err := cfg.PlateBoundary()
	if err != nil {
		return err
	}
	g, err := cfg.NewGrid()
	if err != nil {
		return err
	}

	viz.CurrentPalette = viz.GetPalette(paletteName)
	m := viz.NewModel(g, b, solver, gifPath)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
