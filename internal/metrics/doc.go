// Package metrics provides streaming observers of a relaxation run.
//
// Each type implements [plate.Metric]; register them with
// [plate.Solver.AddMetric] and read the values from Result.Metrics.
package metrics
