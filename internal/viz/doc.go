// Package viz renders plate grids in the terminal.
//
//   - [RenderHeatmap]: lipgloss colour blocks, one per cell
//   - [ConvergencePlot], [ProfilePlot]: asciigraph line charts
//   - [Model]: Bubble Tea live view of a relaxation in progress
//   - [Palette]: colour ramps shared with the image exporters
//
// # Key Bindings
//
//	Space - Pause/Resume
//	S     - Single sweep
//	R     - Reset the grid
//	M     - Switch between Gauss-Seidel and Jacobi
//	T     - Cycle palettes
//	+/-   - Sweeps per frame
//	G     - Toggle GIF recording
//	?     - Show help
package viz
