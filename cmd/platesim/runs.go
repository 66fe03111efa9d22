package main

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/san-kum/platesim/internal/analysis"
	"github.com/san-kum/platesim/internal/config"
	"github.com/san-kum/platesim/internal/export"
	"github.com/san-kum/platesim/internal/plate"
	"github.com/san-kum/platesim/internal/storage"
	"github.com/san-kum/platesim/internal/viz"
	"github.com/spf13/cobra"
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
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tMETHOD\tSWEEPS\tDELTA\tCONVERGED\tAVERAGE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%.2e\t%v\t%.4f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Size,
			run.Config.Method,
			run.Iterations,
			run.Delta,
			run.Converged,
			run.Average,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	g, err := st.LoadGrid(runID)
	if err != nil {
		return err
	}

	p := viz.GetPalette(paletteName)
	fmt.Println(viz.GradientText("run "+meta.ID, p))
	fmt.Println()
	fmt.Print(viz.RenderHeatmap(g, p, 64))
	fmt.Println(viz.RenderLegend(p, meta.Min, meta.Max, 32))
	fmt.Println()
	fmt.Println(viz.RenderStats(g,
		[2]string{"method", meta.Config.Method},
		[2]string{"sweeps", fmt.Sprintf("%d", meta.Iterations)},
		[2]string{"delta", fmt.Sprintf("%.3e", meta.Delta)},
		[2]string{"converged", fmt.Sprintf("%v", meta.Converged)},
	))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	history, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		return fmt.Errorf("no data to plot")
	}
	g, err := st.LoadGrid(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("sweeps: %d\n\n", len(history))
	fmt.Println(viz.ConvergencePlot(history, 80, 12))
	fmt.Println()
	fmt.Println(viz.ProfilePlot(g, 80, 10))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	history, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		return fmt.Errorf("no data")
	}

	m, err := plate.ParseMethod(meta.Config.Method)
	if err != nil {
		return err
	}
	rep := analysis.Analyze(history, meta.Config.Size, m, meta.Config.Tolerance)

	fmt.Printf("convergence analysis: %s\n", meta.ID)
	fmt.Printf("method: %s, size: %d\n\n", m, meta.Config.Size)
	fmt.Printf("sweeps: %d\n", rep.Sweeps)
	fmt.Printf("final delta: %.6e\n", rep.FinalDelta)
	fmt.Printf("observed contraction: %.6f\n", rep.Contraction)
	fmt.Printf("theoretical radius: %.6f\n", rep.Theoretical)
	switch {
	case rep.Remaining == 0:
		fmt.Println("tolerance reached")
	case rep.Remaining < 0:
		fmt.Println("sweeps to tolerance: unknown (not contracting)")
	default:
		fmt.Printf("sweeps to tolerance: ~%d more\n", rep.Remaining)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	data, err := st.Export(args[0])
	if err != nil {
		return err
	}
	if outFile == "" {
		return storage.ExportJSONStdout(data)
	}
	if err := storage.ExportJSON(outFile, data); err != nil {
		return err
	}
	slog.Info("exported", "run", args[0], "path", outFile)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	g, err := st.LoadGrid(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	if err := storage.WriteGridCSV(w, g); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func exportPNG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	path := runID + ".png"
	if len(args) > 1 {
		path = args[1]
	}

	st := storage.New(dataDir)
	g, err := st.LoadGrid(runID)
	if err != nil {
		return err
	}
	if err := export.SavePNG(path, g, runID); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	path := runID + ".svg"
	if len(args) > 1 {
		path = args[1]
	}

	st := storage.New(dataDir)
	g, err := st.LoadGrid(runID)
	if err != nil {
		return err
	}
	svg := export.GridToSVG(g, viz.GetPalette(paletteName), 16)
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := config.ListPresets()
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tMETHOD\tTOP\tBOTTOM\tLEFT\tRIGHT\tCORNERS")
	for _, name := range names {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%s\t%g\t%g\t%g\t%g\t%s\n",
			name, p.Size, p.Method,
			p.Boundary.Top, p.Boundary.Bottom, p.Boundary.Left, p.Boundary.Right,
			p.Boundary.Corners)
	}
	return w.Flush()
}
