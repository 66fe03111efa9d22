package plate

import "math"

const (
	DefaultSize = 32
	MinSize     = 3
)

// Grid is an N×N plate stored row-major in a single buffer.
type Grid struct {
	N     int
	Cells []float64
}

func NewGrid(n int) *Grid {
	if n < MinSize {
		n = MinSize
	}
	return &Grid{N: n, Cells: make([]float64, n*n)}
}

func (g *Grid) At(r, c int) float64     { return g.Cells[r*g.N+c] }
func (g *Grid) Set(r, c int, v float64) { g.Cells[r*g.N+c] = v }

// Row returns a view of row r that shares the grid's storage.
func (g *Grid) Row(r int) []float64 {
	return g.Cells[r*g.N : (r+1)*g.N]
}

func (g *Grid) Clone() *Grid {
	c := &Grid{N: g.N, Cells: make([]float64, len(g.Cells))}
	copy(c.Cells, g.Cells)
	return c
}

func (g *Grid) Fill(v float64) {
	for i := range g.Cells {
		g.Cells[i] = v
	}
}

func (g *Grid) IsBoundary(r, c int) bool {
	return r == 0 || c == 0 || r == g.N-1 || c == g.N-1
}

func (g *Grid) IsValid() bool {
	for _, v := range g.Cells {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Rows copies the grid into a nested slice, for encoders that want one.
func (g *Grid) Rows() [][]float64 {
	rows := make([][]float64, g.N)
	for r := range rows {
		rows[r] = make([]float64, g.N)
		copy(rows[r], g.Row(r))
	}
	return rows
}

// FromRows builds a grid from a square nested slice.
func FromRows(rows [][]float64) (*Grid, error) {
	n := len(rows)
	if n < MinSize {
		return nil, ErrGridSize
	}
	g := &Grid{N: n, Cells: make([]float64, n*n)}
	for r, row := range rows {
		if len(row) != n {
			return nil, ErrGridShape
		}
		copy(g.Row(r), row)
	}
	return g, nil
}
