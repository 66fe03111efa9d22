package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/platesim/internal/plate"
)

// floorLog10 stands in for log10(0) so exact fixed points stay plottable.
const floorLog10 = -16.0

func LogDeltas(deltas []float64) []float64 {
	out := make([]float64, len(deltas))
	for i, d := range deltas {
		if d <= 0 {
			out[i] = floorLog10
			continue
		}
		out[i] = math.Max(floorLog10, math.Log10(d))
	}
	return out
}

// ConvergencePlot charts log10 of the per-sweep delta.
func ConvergencePlot(deltas []float64, width, height int) string {
	if len(deltas) == 0 {
		return ""
	}
	return asciigraph.Plot(LogDeltas(deltas),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("log10 max delta per sweep"),
	)
}

// ProfilePlot charts the temperature down the centre column, top to bottom.
func ProfilePlot(g *plate.Grid, width, height int) string {
	col := g.N / 2
	data := make([]float64, g.N)
	for r := range data {
		data[r] = g.At(r, col)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("temperature along centre column (top to bottom)"),
	)
}
