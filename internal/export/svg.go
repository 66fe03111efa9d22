package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/platesim/internal/plate"
	"github.com/san-kum/platesim/internal/viz"
)

// GridToSVG renders the grid as one square per cell, row 0 at the top, in
// the terminal palettes. Edge cells, whose temperatures are fixed, are
// outlined.
func GridToSVG(g *plate.Grid, p viz.Palette, cellSize float64) string {
	if g == nil || g.N == 0 {
		return ""
	}
	if cellSize <= 0 {
		cellSize = 10
	}

	size := float64(g.N) * cellSize
	st := plate.GridStats(g)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<g shape-rendering="crispEdges">
`, size, size, size, size))

	for r := 0; r < g.N; r++ {
		for c := 0; c < g.N; c++ {
			v := g.At(r, c)
			fill := p.Hex(viz.Normalize(v, st.Min, st.Max))
			outline := ""
			if g.IsBoundary(r, c) {
				outline = ` stroke="#000000" stroke-opacity="0.4" stroke-width="0.5"`
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"%s><title>%.4f</title></rect>
`, float64(c)*cellSize, float64(r)*cellSize, cellSize, cellSize, fill, outline, v))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
