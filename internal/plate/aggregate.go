package plate

import "gonum.org/v1/gonum/floats"

type Stats struct {
	Mean float64
	Min  float64
	Max  float64
}

// CalculateGridAverage returns the arithmetic mean of all N×N cells,
// boundary and corners included. The mean is taken relative to the first
// cell, so a constant grid averages to exactly its value and large values
// do not overflow the sum.
func CalculateGridAverage(g *Grid) float64 {
	if len(g.Cells) == 0 {
		return 0
	}
	k0 := g.Cells[0]
	var dev float64
	for _, v := range g.Cells {
		dev += v - k0
	}
	return k0 + dev/float64(len(g.Cells))
}

func GridStats(g *Grid) Stats {
	if len(g.Cells) == 0 {
		return Stats{}
	}
	return Stats{
		Mean: CalculateGridAverage(g),
		Min:  floats.Min(g.Cells),
		Max:  floats.Max(g.Cells),
	}
}

// InteriorBounds returns the smallest and largest interior cell value.
func InteriorBounds(g *Grid) (lo, hi float64) {
	n := g.N
	lo, hi = g.At(1, 1), g.At(1, 1)
	for r := 1; r < n-1; r++ {
		row := g.Row(r)[1 : n-1]
		lo = min(lo, floats.Min(row))
		hi = max(hi, floats.Max(row))
	}
	return lo, hi
}
