package export

import (
	"fmt"

	"github.com/san-kum/platesim/internal/plate"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// paletteSize is the number of colours in the PNG heat ramp.
const paletteSize = 64

// gridXYZ adapts a grid to plotter.GridXYZ. Plot rows grow upwards, so
// row r of the plot is grid row N-1-r.
type gridXYZ struct {
	g *plate.Grid
}

func (x gridXYZ) Dims() (c, r int)   { return x.g.N, x.g.N }
func (x gridXYZ) Z(c, r int) float64 { return x.g.At(x.g.N-1-r, c) }
func (x gridXYZ) X(c int) float64    { return float64(c) }
func (x gridXYZ) Y(r int) float64    { return float64(r) }

// HeatmapPlot builds a gonum plot of the grid.
func HeatmapPlot(g *plate.Grid, title string) *plot.Plot {
	h := plotter.NewHeatMap(gridXYZ{g}, palette.Heat(paletteSize, 1))
	if h.Min == h.Max {
		h.Max = h.Min + 1
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row (from bottom)"
	p.Add(h)
	return p
}

// SavePNG writes the grid heatmap to path. The image format follows the
// file extension, so .svg and .pdf work as well.
func SavePNG(path string, g *plate.Grid, title string) error {
	p := HeatmapPlot(g, title)
	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save heatmap: %w", err)
	}
	return nil
}
