package plate

import (
	"fmt"
	"math"
)

const (
	DefaultTolerance     = 1e-4
	DefaultMaxIterations = 10000
)

type Method int

const (
	// GaussSeidel updates in place, sweeping rows top to bottom and each row
	// left to right; later cells read values already updated in the sweep.
	GaussSeidel Method = iota
	// Jacobi reads every neighbour from the previous sweep and writes into a
	// second buffer; the buffers swap after each sweep.
	Jacobi
)

func (m Method) String() string {
	switch m {
	case GaussSeidel:
		return "gauss-seidel"
	case Jacobi:
		return "jacobi"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

func ParseMethod(s string) (Method, error) {
	switch s {
	case "", "gauss-seidel", "gs":
		return GaussSeidel, nil
	case "jacobi":
		return Jacobi, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrMethod, s)
}

// Observer is notified after every sweep with its 1-based index and delta.
type Observer interface {
	OnSweep(iter int, delta float64)
}

type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset()
}

type Result struct {
	// Delta is the maximum absolute interior change of the last sweep.
	Delta      float64
	Iterations int
	Converged  bool
	Average    float64
	Metrics    map[string]float64
}

// Solver relaxes the interior of a grid towards its steady state.
// A Solver is not safe for concurrent use.
type Solver struct {
	Tolerance     float64
	MaxIterations int
	Method        Method

	observers []Observer
	metrics   []Metric
	scratch   []float64
}

func NewSolver() *Solver {
	return &Solver{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		Method:        GaussSeidel,
	}
}

func (s *Solver) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Solver) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }

func (s *Solver) Validate() error {
	if s.Tolerance < 0 || math.IsNaN(s.Tolerance) || math.IsInf(s.Tolerance, 0) {
		return fmt.Errorf("%w, got %v", ErrTolerance, s.Tolerance)
	}
	if s.MaxIterations < 1 {
		return fmt.Errorf("%w, got %d", ErrMaxIterations, s.MaxIterations)
	}
	if s.Method != GaussSeidel && s.Method != Jacobi {
		return fmt.Errorf("%w: %d", ErrMethod, int(s.Method))
	}
	return nil
}

// Converged reports whether a sweep delta satisfies the solver's tolerance.
// A zero delta is an exact fixed point and counts even at tolerance 0.
func (s *Solver) Converged(delta float64) bool {
	return delta < s.Tolerance || delta == 0
}

// SolveGrid relaxes g in place and returns the final sweep delta. A returned
// value at or above the tolerance means the iteration cap was hit first.
func (s *Solver) SolveGrid(g *Grid) float64 {
	return s.Relax(g).Delta
}

// SolveGrid relaxes g with the default solver.
func SolveGrid(g *Grid) float64 {
	return NewSolver().SolveGrid(g)
}

// Relax sweeps until the delta drops below the tolerance or MaxIterations
// sweeps have run. Boundary cells are never written. A grid holding Inf or
// NaN yields a NaN delta, which ends the run unconverged.
func (s *Solver) Relax(g *Grid) Result {
	for _, m := range s.metrics {
		m.Reset()
	}

	maxIter := s.MaxIterations
	if maxIter < 1 {
		maxIter = 1
	}

	var (
		delta   float64
		iter    int
		cur     = g.Cells
		next    []float64
		swapped bool
	)
	if s.Method == Jacobi {
		next = s.buffer(len(cur))
		copy(next, cur)
	}

	for iter < maxIter {
		if s.Method == Jacobi {
			delta = jacobiSweep(g.N, cur, next)
			cur, next = next, cur
			swapped = !swapped
		} else {
			delta = gaussSeidelSweep(g.N, cur)
		}
		iter++
		s.notify(iter, delta)
		if s.Converged(delta) || math.IsNaN(delta) {
			break
		}
	}
	if swapped {
		copy(g.Cells, cur)
	}

	res := Result{
		Delta:      delta,
		Iterations: iter,
		Converged:  s.Converged(delta),
		Average:    CalculateGridAverage(g),
		Metrics:    make(map[string]float64, len(s.metrics)),
	}
	for _, m := range s.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res
}

// Sweep performs exactly one sweep and returns its delta. Observers are not
// notified; callers driving sweeps one at a time track their own count.
func (s *Solver) Sweep(g *Grid) float64 {
	if s.Method == Jacobi {
		next := s.buffer(len(g.Cells))
		copy(next, g.Cells)
		delta := jacobiSweep(g.N, g.Cells, next)
		copy(g.Cells, next)
		return delta
	}
	return gaussSeidelSweep(g.N, g.Cells)
}

func (s *Solver) notify(iter int, delta float64) {
	for _, m := range s.metrics {
		m.OnSweep(iter, delta)
	}
	for _, o := range s.observers {
		o.OnSweep(iter, delta)
	}
}

func (s *Solver) buffer(n int) []float64 {
	if cap(s.scratch) < n {
		s.scratch = make([]float64, n)
	}
	return s.scratch[:n]
}

func gaussSeidelSweep(n int, cells []float64) float64 {
	maxDelta := 0.0
	for r := 1; r < n-1; r++ {
		for c := 1; c < n-1; c++ {
			i := r*n + c
			v := stencil(cells[i-n], cells[i+n], cells[i-1], cells[i+1])
			maxDelta = foldDelta(maxDelta, v-cells[i])
			cells[i] = v
		}
	}
	return maxDelta
}

// jacobiSweep writes the relaxed interior of src into dst. dst must already
// hold the boundary values of src.
func jacobiSweep(n int, src, dst []float64) float64 {
	maxDelta := 0.0
	for r := 1; r < n-1; r++ {
		for c := 1; c < n-1; c++ {
			i := r*n + c
			dst[i] = stencil(src[i-n], src[i+n], src[i-1], src[i+1])
			maxDelta = foldDelta(maxDelta, dst[i]-src[i])
		}
	}
	return maxDelta
}

// stencil is the mean of four neighbours. Halving pairwise keeps every
// partial result within the range of the inputs, so finite inputs never
// overflow and equal inputs come back exactly.
func stencil(up, down, left, right float64) float64 {
	return mean2(mean2(up, down), mean2(left, right))
}

// foldDelta folds one change into a running maximum. NaN is sticky.
func foldDelta(maxDelta, d float64) float64 {
	d = math.Abs(d)
	if d > maxDelta || d != d {
		return d
	}
	return maxDelta
}
