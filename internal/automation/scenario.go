package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/san-kum/platesim/internal/config"
	"github.com/san-kum/platesim/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario is a batch of plate solves described in YAML.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one solve. Config fields are applied over the preset
// (or the defaults when no preset is named), so a step only lists what
// it changes.
type ScenarioStep struct {
	Name   string
	Preset string
	Save   bool
	Config *config.Config
}

func (s *ScenarioStep) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Name   string    `yaml:"name"`
		Preset string    `yaml:"preset"`
		Save   bool      `yaml:"save"`
		Config yaml.Node `yaml:"config"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	if raw.Preset != "" {
		cfg = config.GetPreset(raw.Preset)
		if cfg == nil {
			return fmt.Errorf("line %d: unknown preset %q", value.Line, raw.Preset)
		}
	}
	if !raw.Config.IsZero() {
		if err := raw.Config.Decode(cfg); err != nil {
			return err
		}
	}

	s.Name = raw.Name
	s.Preset = raw.Preset
	s.Save = raw.Save
	s.Config = cfg
	return nil
}

// LoadScenario loads a scenario from a YAML file and validates every step.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	for i, step := range scenario.Steps {
		if step.Name == "" {
			scenario.Steps[i].Name = fmt.Sprintf("step-%d", i+1)
		}
		if err := step.Config.Validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &scenario, nil
}

// StepResult pairs a scenario step with the run it produced.
type StepResult struct {
	Step ScenarioStep
	Run  storage.Run
}

// RunScenario solves every step, up to workers at a time. Results keep the
// order of the steps. A cancelled context stops steps that have not started.
func RunScenario(ctx context.Context, scenario *Scenario, workers int) ([]StepResult, error) {
	results := make([]StepResult, len(scenario.Steps))

	errs := forEach(ctx, len(scenario.Steps), workers, func(i int) error {
		step := scenario.Steps[i]
		slog.Debug("running step", "scenario", scenario.Name, "step", step.Name, "size", step.Config.Size)

		run, err := Solve(step.Config.Clone())
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Name, err)
		}
		results[i] = StepResult{Step: step, Run: run}
		return nil
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// forEach calls fn for 0..n-1 on at most workers goroutines and returns
// the error of each call. Indices not started before ctx is done get
// ctx.Err().
func forEach(ctx context.Context, n, workers int, fn func(i int) error) []error {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	errs := make([]error, n)
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			for j := i; j < n; j++ {
				errs[j] = err
			}
			break
		}
		sem <- struct{}{}

		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			errs[idx] = fn(idx)
		}(i)
	}
	wg.Wait()
	return errs
}
