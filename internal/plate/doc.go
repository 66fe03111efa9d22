// Package plate computes the steady-state temperature of a square plate
// whose edges are held at fixed temperatures.
//
// A solve runs in three steps over caller-owned storage:
//
//	g := plate.NewGrid(plate.DefaultSize)
//	plate.MakeGrid(g, plate.DefaultBoundary())
//	delta := plate.NewSolver().SolveGrid(g)
//	avg := plate.CalculateGridAverage(g)
//
// [MakeGrid] writes the edges and calls [SolveCorners]. [Solver] relaxes
// every interior cell towards the mean of its four neighbours, either in
// place ([GaussSeidel], row-major) or double-buffered ([Jacobi]), until the
// largest change in a sweep falls below the tolerance or the iteration cap
// is reached. The returned delta tells the two apart.
//
// # Corners
//
// Corners never enter an interior stencil. Under [CornerMean] each corner
// holds the mean of its two adjacent edge cells; under [CornerFixed] all
// four hold Boundary.CornerValue. The policy only moves the average.
package plate
