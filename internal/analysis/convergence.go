package analysis

import (
	"math"

	"github.com/san-kum/platesim/internal/plate"
)

// tailFraction is the share of a delta history treated as asymptotic.
const tailFraction = 0.5

// ContractionFactor estimates the asymptotic ratio between successive sweep
// deltas as the geometric mean of the ratios over the tail of the history.
//
// Algorithm:
// 1. Skip the transient head of the history
// 2. Average ln(d[k+1]/d[k]) over the remaining positive deltas
// 3. ρ ≈ exp(mean)
func ContractionFactor(deltas []float64) float64 {
	if len(deltas) < 2 {
		return 0
	}

	start := int(float64(len(deltas)) * tailFraction)
	if start > len(deltas)-2 {
		start = len(deltas) - 2
	}

	sumLog := 0.0
	count := 0
	for k := start; k < len(deltas)-1; k++ {
		if deltas[k] <= 0 || deltas[k+1] <= 0 {
			continue
		}
		sumLog += math.Log(deltas[k+1] / deltas[k])
		count++
	}

	if count == 0 {
		return 0
	}
	return math.Exp(sumLog / float64(count))
}

// SweepsToTolerance extrapolates how many more sweeps the run needs before
// its delta drops below tol. It returns 0 when the last delta is already
// below tol and -1 when the history does not contract.
func SweepsToTolerance(deltas []float64, tol float64) int {
	if len(deltas) == 0 {
		return -1
	}
	last := deltas[len(deltas)-1]
	if last < tol || last == 0 {
		return 0
	}
	rho := ContractionFactor(deltas)
	if rho <= 0 || rho >= 1 || tol <= 0 {
		return -1
	}
	return int(math.Ceil(math.Log(tol/last) / math.Log(rho)))
}

// TheoreticalRadius is the spectral radius of the iteration matrix for the
// five-point Laplacian on an n×n grid with Dirichlet edges.
func TheoreticalRadius(n int, m plate.Method) float64 {
	if n < plate.MinSize {
		return 0
	}
	rho := math.Cos(math.Pi / float64(n-1))
	if m == plate.GaussSeidel {
		return rho * rho
	}
	return rho
}

// Report summarises a finished run's convergence behaviour.
type Report struct {
	Sweeps      int
	FinalDelta  float64
	Contraction float64
	Theoretical float64
	Remaining   int
}

func Analyze(deltas []float64, n int, m plate.Method, tol float64) Report {
	r := Report{
		Sweeps:      len(deltas),
		Contraction: ContractionFactor(deltas),
		Theoretical: TheoreticalRadius(n, m),
		Remaining:   SweepsToTolerance(deltas, tol),
	}
	if len(deltas) > 0 {
		r.FinalDelta = deltas[len(deltas)-1]
	}
	return r
}
