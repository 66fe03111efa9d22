// Package export writes solved grids to image formats: a dependency-free
// SVG heatmap and a gonum/plot heatmap for PNG, PDF or SVG output.
package export
