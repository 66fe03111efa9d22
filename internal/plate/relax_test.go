package plate

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type recorder struct {
	iters  []int
	deltas []float64
}

func (r *recorder) OnSweep(iter int, delta float64) {
	r.iters = append(r.iters, iter)
	r.deltas = append(r.deltas, delta)
}

type countMetric struct{ n int }

func (c *countMetric) Name() string         { return "count" }
func (c *countMetric) OnSweep(int, float64) { c.n++ }
func (c *countMetric) Value() float64       { return float64(c.n) }
func (c *countMetric) Reset()               { c.n = 0 }

func newPlate(n int, b Boundary) *Grid {
	g := NewGrid(n)
	MakeGrid(g, b)
	return g
}

func TestRelaxZeroGradient(t *testing.T) {
	for _, m := range []Method{GaussSeidel, Jacobi} {
		t.Run(m.String(), func(t *testing.T) {
			g := newPlate(16, Boundary{Top: 50, Bottom: 50, Left: 50, Right: 50, Initial: 50})
			s := NewSolver()
			s.Method = m

			res := s.Relax(g)
			if res.Iterations != 1 {
				t.Errorf("expected 1 sweep, got %d", res.Iterations)
			}
			if res.Delta != 0 {
				t.Errorf("expected delta 0, got %v", res.Delta)
			}
			if !res.Converged {
				t.Error("expected convergence")
			}
		})
	}
}

func TestRelaxIterationCap(t *testing.T) {
	for _, m := range []Method{GaussSeidel, Jacobi} {
		t.Run(m.String(), func(t *testing.T) {
			g := newPlate(8, DefaultBoundary())
			s := &Solver{Tolerance: 0, MaxIterations: 1, Method: m}
			rec := &recorder{}
			s.AddObserver(rec)

			res := s.Relax(g)
			if res.Iterations != 1 {
				t.Errorf("expected exactly 1 sweep, got %d", res.Iterations)
			}
			if res.Delta <= s.Tolerance {
				t.Errorf("expected delta above tolerance, got %v", res.Delta)
			}
			if res.Converged {
				t.Error("capped run must not report convergence")
			}
			if len(rec.iters) != 1 {
				t.Errorf("observer saw %d sweeps, want 1", len(rec.iters))
			}
		})
	}
}

func TestRelaxLeavesBoundaryUntouched(t *testing.T) {
	for _, m := range []Method{GaussSeidel, Jacobi} {
		t.Run(m.String(), func(t *testing.T) {
			g := newPlate(10, Boundary{Top: 100, Bottom: 10, Left: 70, Right: 30})
			before := g.Clone()
			s := NewSolver()
			s.Method = m
			s.SolveGrid(g)

			for r := 0; r < g.N; r++ {
				for c := 0; c < g.N; c++ {
					if g.IsBoundary(r, c) && g.At(r, c) != before.At(r, c) {
						t.Fatalf("boundary (%d,%d) changed from %v to %v", r, c, before.At(r, c), g.At(r, c))
					}
				}
			}
		})
	}
}

func TestRelaxMaximumPrinciple(t *testing.T) {
	b := Boundary{Top: 100, Bottom: -20, Left: 35, Right: 60, Initial: 0}
	g := newPlate(DefaultSize, b)
	NewSolver().SolveGrid(g)

	lo, hi := b.Bounds()
	ilo, ihi := InteriorBounds(g)
	if ilo < lo || ihi > hi {
		t.Errorf("interior range [%v, %v] escapes boundary range [%v, %v]", ilo, ihi, lo, hi)
	}
}

func TestJacobiAndGaussSeidelAgree(t *testing.T) {
	b := Boundary{Top: 100, Bottom: 0, Left: 50, Right: 25}

	gs := newPlate(16, b)
	jac := gs.Clone()

	s := &Solver{Tolerance: 1e-9, MaxIterations: 20000, Method: GaussSeidel}
	gsRes := s.Relax(gs)
	s.Method = Jacobi
	jacRes := s.Relax(jac)

	if !gsRes.Converged || !jacRes.Converged {
		t.Fatalf("both methods should converge: gs=%+v jacobi=%+v", gsRes, jacRes)
	}
	if diff := cmp.Diff(gs.Cells, jac.Cells, cmpopts.EquateApprox(0, 1e-5)); diff != "" {
		t.Errorf("steady states differ (-gauss-seidel +jacobi):\n%s", diff)
	}
	if gsRes.Iterations >= jacRes.Iterations {
		t.Errorf("gauss-seidel took %d sweeps, jacobi %d; expected gauss-seidel to be faster",
			gsRes.Iterations, jacRes.Iterations)
	}
}

func TestRelaxSecondCallIsFixedPoint(t *testing.T) {
	for _, m := range []Method{GaussSeidel, Jacobi} {
		t.Run(m.String(), func(t *testing.T) {
			g := newPlate(DefaultSize, DefaultBoundary())
			s := NewSolver()
			s.Method = m

			first := s.Relax(g)
			if !first.Converged {
				t.Fatalf("first relax did not converge after %d sweeps", first.Iterations)
			}
			settled := g.Clone()

			second := s.Relax(g)
			if second.Iterations != 1 {
				t.Errorf("second relax took %d sweeps, want 1", second.Iterations)
			}
			if second.Delta >= s.Tolerance {
				t.Errorf("second delta %v not below tolerance %v", second.Delta, s.Tolerance)
			}
			if diff := cmp.Diff(settled.Cells, g.Cells, cmpopts.EquateApprox(0, s.Tolerance)); diff != "" {
				t.Errorf("second relax moved cells by more than the tolerance:\n%s", diff)
			}
		})
	}
}

func TestRelaxExtremeBoundary(t *testing.T) {
	for _, m := range []Method{GaussSeidel, Jacobi} {
		t.Run(m.String(), func(t *testing.T) {
			b := Boundary{Top: 1e308, Bottom: 1e308, Left: 1e308, Right: 1e308, Initial: 1e308}
			if err := b.Validate(); err != nil {
				t.Fatal(err)
			}
			g := newPlate(8, b)
			s := NewSolver()
			s.Method = m

			res := s.Relax(g)
			if !res.Converged || res.Delta != 0 || res.Iterations != 1 {
				t.Errorf("expected exact fixed point in one sweep, got %+v", res)
			}
			if !g.IsValid() {
				t.Fatal("interior overflowed")
			}
			if got := g.At(3, 3); got != 1e308 {
				t.Errorf("interior = %v, want 1e308", got)
			}
			if res.Average != 1e308 {
				t.Errorf("average = %v, want 1e308", res.Average)
			}
		})
	}
}

func TestRelaxOppositeExtremes(t *testing.T) {
	b := Boundary{Top: math.MaxFloat64, Bottom: -math.MaxFloat64, Left: math.MaxFloat64, Right: -math.MaxFloat64}
	g := newPlate(10, b)
	s := &Solver{Tolerance: 1e300, MaxIterations: 5000}

	res := s.Relax(g)
	if !g.IsValid() || math.IsNaN(res.Delta) {
		t.Fatalf("non-finite values after relax: %+v", res)
	}
	lo, hi := b.Bounds()
	ilo, ihi := InteriorBounds(g)
	if ilo < lo || ihi > hi {
		t.Errorf("interior range [%v, %v] escapes [%v, %v]", ilo, ihi, lo, hi)
	}
}

func TestRelaxNonFiniteGridNeverConverges(t *testing.T) {
	inf := math.Inf(1)
	for _, m := range []Method{GaussSeidel, Jacobi} {
		t.Run(m.String(), func(t *testing.T) {
			g, err := FromRows([][]float64{
				{inf, inf, inf},
				{inf, 0, inf},
				{inf, inf, inf},
			})
			if err != nil {
				t.Fatal(err)
			}
			s := NewSolver()
			s.Method = m

			res := s.Relax(g)
			if res.Converged {
				t.Errorf("non-finite grid reported convergence: %+v", res)
			}
			if !math.IsNaN(res.Delta) {
				t.Errorf("delta = %v, want NaN", res.Delta)
			}
			if res.Iterations != 2 {
				t.Errorf("expected the run to stop at the first NaN sweep (2), got %d", res.Iterations)
			}
		})
	}
}

func TestFoldDelta(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name    string
		max, d  float64
		want    float64
		wantNaN bool
	}{
		{"larger", 1, -3, 3, false},
		{"smaller", 5, 2, 5, false},
		{"nan change", 5, nan, 0, true},
		{"nan is sticky", nan, 7, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := foldDelta(tt.max, tt.d)
			if tt.wantNaN {
				if !math.IsNaN(got) {
					t.Errorf("foldDelta(%v, %v) = %v, want NaN", tt.max, tt.d, got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("foldDelta(%v, %v) = %v, want %v", tt.max, tt.d, got, tt.want)
			}
		})
	}
}

func TestRelaxObserversAndMetrics(t *testing.T) {
	g := newPlate(8, DefaultBoundary())
	s := NewSolver()
	rec := &recorder{}
	metric := &countMetric{n: 42}
	s.AddObserver(rec)
	s.AddMetric(metric)

	res := s.Relax(g)

	if len(rec.iters) != res.Iterations {
		t.Errorf("observer saw %d sweeps, result reports %d", len(rec.iters), res.Iterations)
	}
	for i, it := range rec.iters {
		if it != i+1 {
			t.Fatalf("sweep %d reported index %d", i, it)
		}
	}
	if rec.deltas[len(rec.deltas)-1] != res.Delta {
		t.Errorf("last observed delta %v != result delta %v", rec.deltas[len(rec.deltas)-1], res.Delta)
	}
	if got := res.Metrics["count"]; got != float64(res.Iterations) {
		t.Errorf("metric count = %v, want %d (metric must be reset per run)", got, res.Iterations)
	}
}

func TestSweepMatchesRelaxStep(t *testing.T) {
	for _, m := range []Method{GaussSeidel, Jacobi} {
		t.Run(m.String(), func(t *testing.T) {
			a := newPlate(6, DefaultBoundary())
			b := a.Clone()

			s := &Solver{Tolerance: 0, MaxIterations: 3, Method: m}
			res := s.Relax(a)

			var delta float64
			for i := 0; i < 3; i++ {
				delta = s.Sweep(b)
			}

			if delta != res.Delta {
				t.Errorf("Sweep delta %v != Relax delta %v", delta, res.Delta)
			}
			if diff := cmp.Diff(a.Cells, b.Cells); diff != "" {
				t.Errorf("Sweep and Relax disagree:\n%s", diff)
			}
		})
	}
}

func TestRelaxAverage(t *testing.T) {
	g := newPlate(4, Boundary{Top: 100, Bottom: 0, Left: 50, Right: 50})
	s := &Solver{Tolerance: 1e-10, MaxIterations: 1000}
	res := s.Relax(g)

	if math.Abs(res.Average-50) > 1e-8 {
		t.Errorf("average = %v, want 50", res.Average)
	}
}

func TestPackageSolveGrid(t *testing.T) {
	g := newPlate(DefaultSize, DefaultBoundary())
	if delta := SolveGrid(g); delta >= DefaultTolerance {
		t.Errorf("default solve did not converge, delta %v", delta)
	}
}

func TestSolverValidate(t *testing.T) {
	tests := []struct {
		name string
		s    Solver
		want error
	}{
		{"negative tolerance", Solver{Tolerance: -1, MaxIterations: 10}, ErrTolerance},
		{"NaN tolerance", Solver{Tolerance: math.NaN(), MaxIterations: 10}, ErrTolerance},
		{"zero iterations", Solver{Tolerance: 1e-4, MaxIterations: 0}, ErrMaxIterations},
		{"bad method", Solver{Tolerance: 1e-4, MaxIterations: 10, Method: Method(7)}, ErrMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.s.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}

	if err := NewSolver().Validate(); err != nil {
		t.Errorf("default solver invalid: %v", err)
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
		err  bool
	}{
		{"", GaussSeidel, false},
		{"gs", GaussSeidel, false},
		{"gauss-seidel", GaussSeidel, false},
		{"jacobi", Jacobi, false},
		{"sor", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if tt.err {
			if !errors.Is(err, ErrMethod) {
				t.Errorf("ParseMethod(%q) error = %v, want ErrMethod", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseMethod(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func BenchmarkGaussSeidelSweep(b *testing.B) {
	g := newPlate(DefaultSize, DefaultBoundary())
	s := NewSolver()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Sweep(g)
	}
}

func BenchmarkJacobiSweep(b *testing.B) {
	g := newPlate(DefaultSize, DefaultBoundary())
	s := NewSolver()
	s.Method = Jacobi

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Sweep(g)
	}
}
