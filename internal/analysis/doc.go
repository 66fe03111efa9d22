// Package analysis inspects the sweep-delta history of a relaxation run.
//
//   - [ContractionFactor]: observed asymptotic ratio between sweep deltas
//   - [TheoreticalRadius]: spectral radius predicted for the grid and method
//   - [SweepsToTolerance]: extrapolated sweeps left to reach a tolerance
//
// # Reading the numbers
//
// The observed contraction factor approaches [TheoreticalRadius] once the
// slowest error mode dominates; a capped run with a factor close to one is
// far from converged.
package analysis
