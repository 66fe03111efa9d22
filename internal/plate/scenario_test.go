package plate_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/platesim/internal/plate"
)

var _ = Describe("Relaxing a plate", func() {
	var (
		g      *plate.Grid
		b      plate.Boundary
		solver *plate.Solver
	)

	Context("on a 4x4 plate with a hot top edge", func() {
		BeforeEach(func() {
			b = plate.Boundary{Top: 100, Bottom: 0, Left: 50, Right: 50}
			g = plate.NewGrid(4)
			plate.MakeGrid(g, b)
			solver = plate.NewSolver()
		})

		It("averages each corner from its two edges", func() {
			Expect(g.At(0, 0)).To(Equal(75.0))
			Expect(g.At(0, 3)).To(Equal(75.0))
			Expect(g.At(3, 0)).To(Equal(25.0))
			Expect(g.At(3, 3)).To(Equal(25.0))
		})

		It("converges strictly between the coldest and hottest edge", func() {
			delta := solver.SolveGrid(g)
			Expect(delta).To(BeNumerically("<", plate.DefaultTolerance))

			for r := 1; r < 3; r++ {
				for c := 1; c < 3; c++ {
					Expect(g.At(r, c)).To(BeNumerically(">", 0.0))
					Expect(g.At(r, c)).To(BeNumerically("<", 100.0))
				}
			}
		})

		It("reaches the analytic steady state", func() {
			solver.SolveGrid(g)
			Expect(g.At(1, 1)).To(BeNumerically("~", 62.5, 1e-3))
			Expect(g.At(1, 2)).To(BeNumerically("~", 62.5, 1e-3))
			Expect(g.At(2, 1)).To(BeNumerically("~", 37.5, 1e-3))
			Expect(g.At(2, 2)).To(BeNumerically("~", 37.5, 1e-3))
			Expect(plate.CalculateGridAverage(g)).To(BeNumerically("~", 50.0, 1e-3))
		})

		It("stays put on a second relax", func() {
			solver.SolveGrid(g)
			Expect(solver.SolveGrid(g)).To(BeNumerically("<", plate.DefaultTolerance))
		})
	})

	Context("on the default 32x32 plate", func() {
		BeforeEach(func() {
			b = plate.DefaultBoundary()
			g = plate.NewGrid(plate.DefaultSize)
			plate.MakeGrid(g, b)
			solver = plate.NewSolver()
		})

		It("obeys the maximum principle", func() {
			res := solver.Relax(g)
			Expect(res.Converged).To(BeTrue())

			lo, hi := b.Bounds()
			ilo, ihi := plate.InteriorBounds(g)
			Expect(ilo).To(BeNumerically(">=", lo))
			Expect(ihi).To(BeNumerically("<=", hi))
		})

		It("reports a capped run through its delta", func() {
			solver.Tolerance = 0
			solver.MaxIterations = 1
			res := solver.Relax(g)
			Expect(res.Iterations).To(Equal(1))
			Expect(res.Delta).To(BeNumerically(">", solver.Tolerance))
			Expect(res.Converged).To(BeFalse())
		})

		It("converges in one sweep with no gradient", func() {
			plate.MakeGrid(g, plate.Boundary{Top: 20, Bottom: 20, Left: 20, Right: 20, Initial: 20})
			res := solver.Relax(g)
			Expect(res.Iterations).To(Equal(1))
			Expect(res.Delta).To(BeNumerically("~", 0, 1e-12))
		})

		DescribeTable("settles the interior to a quarter of the hot edge",
			func(m plate.Method) {
				solver.Method = m
				solver.Tolerance = 1e-8
				res := solver.Relax(g)
				Expect(res.Converged).To(BeTrue())

				// the four rotations of this plate sum to a uniformly hot one
				sum, n := 0.0, g.N
				for r := 1; r < n-1; r++ {
					for c := 1; c < n-1; c++ {
						sum += g.At(r, c)
					}
				}
				mean := sum / float64((n-2)*(n-2))
				Expect(mean).To(BeNumerically("~", b.Top/4, 1e-4))
			},
			Entry("gauss-seidel", plate.GaussSeidel),
			Entry("jacobi", plate.Jacobi),
		)
	})
})
