package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/platesim/internal/plate"
)

// sampleStep is the stride that fits n cells into at most limit columns.
func sampleStep(n, limit int) int {
	if limit <= 0 || n <= limit {
		return 1
	}
	return (n + limit - 1) / limit
}

// RenderHeatmap draws the grid as coloured two-character blocks, row 0 at
// the top. Grids wider than maxCols are sampled with a fixed stride.
func RenderHeatmap(g *plate.Grid, p Palette, maxCols int) string {
	st := plate.GridStats(g)
	step := sampleStep(g.N, maxCols)

	var sb strings.Builder
	for r := 0; r < g.N; r += step {
		for c := 0; c < g.N; c += step {
			t := Normalize(g.At(r, c), st.Min, st.Max)
			cell := lipgloss.NewStyle().Background(lipgloss.Color(p.Hex(t)))
			sb.WriteString(cell.Render("  "))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderLegend draws the palette ramp between lo and hi.
func RenderLegend(p Palette, lo, hi float64, width int) string {
	if width < 2 {
		width = 2
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%8.2f ", lo))
	for i := 0; i < width; i++ {
		t := float64(i) / float64(width-1)
		sb.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(p.Hex(t))).Render(" "))
	}
	sb.WriteString(fmt.Sprintf(" %.2f", hi))
	return sb.String()
}

// RenderStats lays out the aggregate values of a grid.
func RenderStats(g *plate.Grid, extra ...[2]string) string {
	st := plate.GridStats(g)
	rows := []string{
		MetricLabel.Render("size") + MetricValue.Render(fmt.Sprintf("%dx%d", g.N, g.N)),
		MetricLabel.Render("average") + MetricValue.Render(fmt.Sprintf("%.6f", st.Mean)),
		MetricLabel.Render("min") + MetricValue.Render(fmt.Sprintf("%.4f", st.Min)),
		MetricLabel.Render("max") + MetricValue.Render(fmt.Sprintf("%.4f", st.Max)),
	}
	for _, kv := range extra {
		rows = append(rows, MetricLabel.Render(kv[0])+MetricValue.Render(kv[1]))
	}
	return GlassPanel.Render(strings.Join(rows, "\n"))
}
