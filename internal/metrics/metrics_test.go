package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/platesim/internal/plate"
)

var (
	_ plate.Metric = (*Sweeps)(nil)
	_ plate.Metric = (*FinalDelta)(nil)
	_ plate.Metric = (*Reduction)(nil)
	_ plate.Metric = (*History)(nil)
)

func feed(m plate.Metric, deltas ...float64) {
	for i, d := range deltas {
		m.OnSweep(i+1, d)
	}
}

func TestSweeps(t *testing.T) {
	m := NewSweeps()
	feed(m, 4, 2, 1)
	if m.Value() != 3 {
		t.Errorf("expected 3 sweeps, got %v", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %v", m.Value())
	}
}

func TestFinalDelta(t *testing.T) {
	m := NewFinalDelta()
	feed(m, 4, 2, 0.5)
	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %v", m.Value())
	}
}

func TestReduction(t *testing.T) {
	tests := []struct {
		name   string
		deltas []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"three orders", []float64{10, 1, 0.1, 0.01}, 3},
		{"no change", []float64{5, 5}, 0},
		{"exact fixed point", []float64{1, 0}, maxReductionOrders},
		{"fixed point from the first sweep", []float64{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewReduction()
			feed(m, tt.deltas...)
			got := m.Value()
			if math.IsInf(got, 0) || math.IsNaN(got) {
				t.Fatalf("expected a finite value, got %v", got)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHistory(t *testing.T) {
	m := NewHistory()
	feed(m, 8, 4, 2)

	if got := m.Value(); got != 0.5 {
		t.Errorf("contraction = %v, want 0.5", got)
	}

	d := m.Deltas()
	d[0] = 100
	if m.Deltas()[0] != 8 {
		t.Error("Deltas should return a copy")
	}

	m.Reset()
	if len(m.Deltas()) != 0 || m.Value() != 0 {
		t.Error("history not cleared by Reset")
	}
}

func TestMetricsInSolver(t *testing.T) {
	g := plate.NewGrid(12)
	plate.MakeGrid(g, plate.DefaultBoundary())

	s := plate.NewSolver()
	h := NewHistory()
	s.AddMetric(NewSweeps())
	s.AddMetric(NewFinalDelta())
	s.AddMetric(h)

	res := s.Relax(g)

	if res.Metrics["sweeps"] != float64(res.Iterations) {
		t.Errorf("sweeps metric %v != iterations %d", res.Metrics["sweeps"], res.Iterations)
	}
	if res.Metrics["final_delta"] != res.Delta {
		t.Errorf("final_delta %v != delta %v", res.Metrics["final_delta"], res.Delta)
	}
	if len(h.Deltas()) != res.Iterations {
		t.Errorf("history holds %d deltas, want %d", len(h.Deltas()), res.Iterations)
	}
	if c := res.Metrics["contraction"]; c <= 0 || c >= 1 {
		t.Errorf("contraction %v should lie in (0, 1)", c)
	}
}
