package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/san-kum/platesim/internal/automation"
	"github.com/san-kum/platesim/internal/storage"
	"github.com/spf13/cobra"
)

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running scenario %s (%d steps)\n", scenario.Name, len(scenario.Steps))
	results, err := automation.RunScenario(ctx, scenario, workers)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSIZE\tMETHOD\tSWEEPS\tCONVERGED\tAVERAGE\tTIME\tRUN")
	for _, r := range results {
		runID := "-"
		if r.Step.Save {
			runID, err = st.Save(r.Run)
			if err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%v\t%.6f\t%v\t%s\n",
			r.Step.Name, r.Run.Config.Size, r.Run.Config.Method,
			r.Run.Result.Iterations, r.Run.Result.Converged, r.Run.Result.Average,
			r.Run.Elapsed, runID)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sweep := &automation.ParameterSweep{
		Base:  base,
		Param: sweepParam,
		Min:   sweepMin,
		Max:   sweepMax,
		Steps: sweepSteps,
	}
	results, err := automation.RunSweep(ctx, sweep, workers)
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s from %g to %g\n\n", sweepParam, sweepMin, sweepMax)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSWEEPS\tDELTA\tCONVERGED\tAVERAGE\tTIME\n", sweepParam)
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%d\t%.3e\t%v\t%.6f\t%v\n",
			r.Value, r.Sweeps, r.Delta, r.Converged, r.Average, r.Elapsed)
	}
	return w.Flush()
}
