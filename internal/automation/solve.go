package automation

import (
	"log/slog"
	"time"

	"github.com/san-kum/platesim/internal/config"
	"github.com/san-kum/platesim/internal/metrics"
	"github.com/san-kum/platesim/internal/storage"
)

// Solve builds a grid and solver from cfg and relaxes it to steady state
// with the standard metric set attached.
func Solve(cfg *config.Config) (storage.Run, error) {
	solver, err := cfg.Solver()
	if err != nil {
		return storage.Run{}, err
	}
	g, err := cfg.NewGrid()
	if err != nil {
		return storage.Run{}, err
	}

	history := metrics.NewHistory()
	solver.AddMetric(metrics.NewSweeps())
	solver.AddMetric(metrics.NewFinalDelta())
	solver.AddMetric(metrics.NewReduction())
	solver.AddMetric(history)

	start := time.Now()
	res := solver.Relax(g)
	elapsed := time.Since(start)

	if !res.Converged {
		slog.Warn("sweep cap reached before convergence",
			"size", cfg.Size, "max_iterations", cfg.MaxIterations,
			"delta", res.Delta, "tolerance", cfg.Tolerance)
	}

	return storage.Run{
		Config:  cfg,
		Result:  res,
		Grid:    g,
		History: history.Deltas(),
		Elapsed: elapsed,
	}, nil
}
