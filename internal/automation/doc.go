// Package automation runs batches of plate solves: YAML scenarios and
// one-parameter sweeps, fanned out over a bounded set of goroutines.
package automation
