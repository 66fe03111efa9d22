package config

import (
	"fmt"
	"os"

	"github.com/san-kum/platesim/internal/plate"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSize          = plate.DefaultSize
	DefaultTolerance     = plate.DefaultTolerance
	DefaultMaxIterations = plate.DefaultMaxIterations
	DefaultMethod        = "gauss-seidel"
	DefaultCorners       = "mean"
	DefaultTop           = 100.0
)

type Config struct {
	Size          int            `yaml:"size" json:"size"`
	Tolerance     float64        `yaml:"tolerance" json:"tolerance"`
	MaxIterations int            `yaml:"max_iterations" json:"max_iterations"`
	Method        string         `yaml:"method" json:"method"`
	Boundary      BoundaryConfig `yaml:"boundary" json:"boundary"`
}

type BoundaryConfig struct {
	Top         float64 `yaml:"top" json:"top"`
	Bottom      float64 `yaml:"bottom" json:"bottom"`
	Left        float64 `yaml:"left" json:"left"`
	Right       float64 `yaml:"right" json:"right"`
	Initial     float64 `yaml:"initial" json:"initial"`
	Corners     string  `yaml:"corners" json:"corners"`
	CornerValue float64 `yaml:"corner_value" json:"corner_value"`
}

func DefaultConfig() *Config {
	return &Config{
		Size:          DefaultSize,
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		Method:        DefaultMethod,
		Boundary: BoundaryConfig{
			Top:     DefaultTop,
			Corners: DefaultCorners,
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto decodes the file over cfg, so keys the file leaves out keep
// whatever cfg already held.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a copy that can be modified without touching presets.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) Validate() error {
	if c.Size < plate.MinSize {
		return fmt.Errorf("size %d: %w", c.Size, plate.ErrGridSize)
	}
	if _, err := c.Solver(); err != nil {
		return err
	}
	b, err := c.PlateBoundary()
	if err != nil {
		return err
	}
	return b.Validate()
}

// Solver builds a plate solver from the config.
func (c *Config) Solver() (*plate.Solver, error) {
	m, err := plate.ParseMethod(c.Method)
	if err != nil {
		return nil, err
	}
	s := plate.NewSolver()
	s.Tolerance = c.Tolerance
	s.MaxIterations = c.MaxIterations
	s.Method = m
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Config) PlateBoundary() (plate.Boundary, error) {
	p, err := plate.ParseCornerPolicy(c.Boundary.Corners)
	if err != nil {
		return plate.Boundary{}, err
	}
	return plate.Boundary{
		Top:         c.Boundary.Top,
		Bottom:      c.Boundary.Bottom,
		Left:        c.Boundary.Left,
		Right:       c.Boundary.Right,
		Initial:     c.Boundary.Initial,
		Corners:     p,
		CornerValue: c.Boundary.CornerValue,
	}, nil
}

// NewGrid allocates and initialises a grid for the config.
func (c *Config) NewGrid() (*plate.Grid, error) {
	b, err := c.PlateBoundary()
	if err != nil {
		return nil, err
	}
	g := plate.NewGrid(c.Size)
	plate.MakeGrid(g, b)
	return g, nil
}
