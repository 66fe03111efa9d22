package config

var Presets = map[string]*Config{
	"classic": {
		Size: 32, Tolerance: 1e-4, MaxIterations: 10000, Method: "gauss-seidel",
		Boundary: BoundaryConfig{Top: 100, Corners: "mean"},
	},
	"gradient": {
		Size: 32, Tolerance: 1e-4, MaxIterations: 10000, Method: "gauss-seidel",
		Boundary: BoundaryConfig{Top: 100, Bottom: 0, Left: 50, Right: 50, Corners: "mean"},
	},
	"small": {
		Size: 4, Tolerance: 1e-4, MaxIterations: 1000, Method: "gauss-seidel",
		Boundary: BoundaryConfig{Top: 100, Bottom: 0, Left: 50, Right: 50, Corners: "mean"},
	},
	"uniform": {
		Size: 32, Tolerance: 1e-4, MaxIterations: 10000, Method: "gauss-seidel",
		Boundary: BoundaryConfig{Top: 50, Bottom: 50, Left: 50, Right: 50, Initial: 50, Corners: "mean"},
	},
	"hot-sides": {
		Size: 32, Tolerance: 1e-4, MaxIterations: 10000, Method: "jacobi",
		Boundary: BoundaryConfig{Left: 100, Right: 100, Corners: "fixed", CornerValue: 50},
	},
	"precise": {
		Size: 64, Tolerance: 1e-8, MaxIterations: 50000, Method: "gauss-seidel",
		Boundary: BoundaryConfig{Top: 100, Corners: "mean"},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
