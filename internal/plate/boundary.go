package plate

import (
	"fmt"
	"math"
)

type CornerPolicy int

const (
	// CornerMean sets each corner to the mean of its two adjacent edge cells.
	CornerMean CornerPolicy = iota
	// CornerFixed sets all four corners to Boundary.CornerValue.
	CornerFixed
)

func (p CornerPolicy) String() string {
	switch p {
	case CornerMean:
		return "mean"
	case CornerFixed:
		return "fixed"
	}
	return fmt.Sprintf("CornerPolicy(%d)", int(p))
}

func ParseCornerPolicy(s string) (CornerPolicy, error) {
	switch s {
	case "", "mean":
		return CornerMean, nil
	case "fixed":
		return CornerFixed, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrCornerPolicy, s)
}

// Boundary holds the fixed edge temperatures of a plate.
type Boundary struct {
	Top, Bottom, Left, Right float64
	// Initial is the starting value of every interior cell.
	Initial     float64
	Corners     CornerPolicy
	CornerValue float64
}

func DefaultBoundary() Boundary {
	return Boundary{Top: 100}
}

func (b Boundary) Validate() error {
	for name, v := range map[string]float64{
		"top":     b.Top,
		"bottom":  b.Bottom,
		"left":    b.Left,
		"right":   b.Right,
		"initial": b.Initial,
		"corner":  b.CornerValue,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s=%v", ErrBoundaryValue, name, v)
		}
	}
	if b.Corners != CornerMean && b.Corners != CornerFixed {
		return fmt.Errorf("%w: %d", ErrCornerPolicy, int(b.Corners))
	}
	return nil
}

// Bounds returns the smallest and largest edge temperature.
func (b Boundary) Bounds() (lo, hi float64) {
	lo, hi = b.Top, b.Top
	for _, v := range []float64{b.Bottom, b.Left, b.Right} {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	return lo, hi
}

// MakeGrid writes the edge temperatures, resets the interior to b.Initial
// and solves the corners. Prior grid contents do not affect the result.
func MakeGrid(g *Grid, b Boundary) {
	n := g.N
	g.Fill(b.Initial)
	for c := 1; c < n-1; c++ {
		g.Set(0, c, b.Top)
		g.Set(n-1, c, b.Bottom)
	}
	for r := 1; r < n-1; r++ {
		g.Set(r, 0, b.Left)
		g.Set(r, n-1, b.Right)
	}
	SolveCorners(g, b)
}

// SolveCorners sets only the four corner cells according to b.Corners.
func SolveCorners(g *Grid, b Boundary) {
	n := g.N
	if b.Corners == CornerFixed {
		g.Set(0, 0, b.CornerValue)
		g.Set(0, n-1, b.CornerValue)
		g.Set(n-1, 0, b.CornerValue)
		g.Set(n-1, n-1, b.CornerValue)
		return
	}
	g.Set(0, 0, mean2(g.At(0, 1), g.At(1, 0)))
	g.Set(0, n-1, mean2(g.At(0, n-2), g.At(1, n-1)))
	g.Set(n-1, 0, mean2(g.At(n-1, 1), g.At(n-2, 0)))
	g.Set(n-1, n-1, mean2(g.At(n-1, n-2), g.At(n-2, n-1)))
}

func mean2(a, b float64) float64 {
	return 0.5*a + 0.5*b
}
