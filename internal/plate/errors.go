package plate

import "errors"

// Domain errors for plate configuration and decoding. The solver itself
// never returns them; they are raised where grids and solvers are built
// from outside input.
var (
	// ErrGridSize indicates a grid smaller than MinSize.
	ErrGridSize = errors.New("plate: grid size must be at least 3")

	// ErrGridShape indicates a non-square or ragged grid.
	ErrGridShape = errors.New("plate: grid rows must be square")

	// ErrTolerance indicates a negative or non-finite tolerance.
	ErrTolerance = errors.New("plate: tolerance must be finite and non-negative")

	// ErrMaxIterations indicates an iteration cap below one.
	ErrMaxIterations = errors.New("plate: max iterations must be at least 1")

	// ErrMethod indicates an unknown relaxation method name.
	ErrMethod = errors.New("plate: unknown relaxation method")

	// ErrCornerPolicy indicates an unknown corner policy name.
	ErrCornerPolicy = errors.New("plate: unknown corner policy")

	// ErrBoundaryValue indicates a NaN or infinite boundary temperature.
	ErrBoundaryValue = errors.New("plate: boundary value must be finite")
)
