package automation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/platesim/internal/config"
)

var ErrUnknownParam = errors.New("automation: unknown sweep parameter")

// SweepParams lists the config values a ParameterSweep can vary.
var SweepParams = []string{
	"top", "bottom", "left", "right", "initial", "corner_value",
	"size", "tolerance", "max_iterations",
}

// ParameterSweep solves the base config once per evenly spaced value of
// one parameter between Min and Max inclusive.
type ParameterSweep struct {
	Base  *config.Config
	Param string
	Min   float64
	Max   float64
	Steps int
}

// SweepResult holds the outcome of one sweep point.
type SweepResult struct {
	Value     float64
	Sweeps    int
	Delta     float64
	Converged bool
	Average   float64
	Elapsed   time.Duration
}

// Values returns the parameter values the sweep visits.
func (p *ParameterSweep) Values() []float64 {
	if p.Steps <= 1 {
		return []float64{p.Min}
	}
	step := (p.Max - p.Min) / float64(p.Steps-1)
	vals := make([]float64, p.Steps)
	for i := range vals {
		vals[i] = p.Min + float64(i)*step
	}
	vals[len(vals)-1] = p.Max
	return vals
}

func setParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "top":
		cfg.Boundary.Top = v
	case "bottom":
		cfg.Boundary.Bottom = v
	case "left":
		cfg.Boundary.Left = v
	case "right":
		cfg.Boundary.Right = v
	case "initial":
		cfg.Boundary.Initial = v
	case "corner_value":
		cfg.Boundary.CornerValue = v
	case "size":
		cfg.Size = int(v + 0.5)
	case "tolerance":
		cfg.Tolerance = v
	case "max_iterations":
		cfg.MaxIterations = int(v + 0.5)
	default:
		return fmt.Errorf("%w: %q (available: %v)", ErrUnknownParam, name, SweepParams)
	}
	return nil
}

// RunSweep executes a parameter sweep on up to workers goroutines.
func RunSweep(ctx context.Context, sweep *ParameterSweep, workers int) ([]SweepResult, error) {
	vals := sweep.Values()
	cfgs := make([]*config.Config, len(vals))
	for i, v := range vals {
		cfg := sweep.Base.Clone()
		if err := setParam(cfg, sweep.Param, v); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
		}
		cfgs[i] = cfg
	}

	results := make([]SweepResult, len(vals))
	errs := forEach(ctx, len(vals), workers, func(i int) error {
		run, err := Solve(cfgs[i])
		if err != nil {
			return err
		}
		results[i] = SweepResult{
			Value:     vals[i],
			Sweeps:    run.Result.Iterations,
			Delta:     run.Result.Delta,
			Converged: run.Result.Converged,
			Average:   run.Result.Average,
			Elapsed:   run.Elapsed,
		}
		return nil
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
