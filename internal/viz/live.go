package viz

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/platesim/internal/plate"
)

const (
	historyCapacity  = 600
	maxSweepsPerTick = 256
	heatmapCols      = 48
	recordScale      = 8
	maxFrames        = 600
)

type TickMsg time.Time

// Model drives a relaxation one batch of sweeps per tick.
type Model struct {
	grid          *plate.Grid
	boundary      plate.Boundary
	solver        *plate.Solver
	iter          int
	delta         float64
	deltas        []float64
	sweepsPerTick int
	running       bool
	done          bool
	palette       Palette
	recording     bool
	frames        []*image.Paletted
	gifPath       string
	status        string
	showHelp      bool
}

// NewModel takes ownership of g, which must already hold boundary b.
func NewModel(g *plate.Grid, b plate.Boundary, s *plate.Solver, gifPath string) Model {
	return Model{
		grid:          g,
		boundary:      b,
		solver:        s,
		delta:         math.Inf(1),
		deltas:        make([]float64, 0, historyCapacity),
		sweepsPerTick: 1,
		running:       true,
		palette:       CurrentPalette,
		gifPath:       gifPath,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and advances the relaxation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "s":
			if m.step() {
				m.captureFrame()
			}
		case "r":
			m.reset()
		case "m":
			if m.solver.Method == plate.GaussSeidel {
				m.solver.Method = plate.Jacobi
			} else {
				m.solver.Method = plate.GaussSeidel
			}
			m.reset()
		case "t":
			m.palette = NextPalette(m.palette)
		case "+", "=":
			m.sweepsPerTick = min(m.sweepsPerTick*2, maxSweepsPerTick)
		case "-", "_":
			m.sweepsPerTick = max(m.sweepsPerTick/2, 1)
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && !m.done {
			for i := 0; i < m.sweepsPerTick && !m.done; i++ {
				m.step()
			}
			m.captureFrame()
		}
		return m, tick()
	}
	return m, nil
}

// step runs one sweep and reports whether the grid advanced.
func (m *Model) step() bool {
	if m.done {
		return false
	}
	m.delta = m.solver.Sweep(m.grid)
	m.iter++
	m.deltas = append(m.deltas, m.delta)
	if len(m.deltas) > historyCapacity {
		m.deltas = m.deltas[1:]
	}
	if m.solver.Converged(m.delta) || m.iter >= m.solver.MaxIterations {
		m.done = true
	}
	return true
}

// captureFrame records the grid as it is drawn, once per tick or step.
func (m *Model) captureFrame() {
	if !m.recording {
		return
	}
	if len(m.frames) >= maxFrames {
		m.status = fmt.Sprintf("frame limit reached (%d), press g to save", maxFrames)
		return
	}
	lo, hi := m.boundary.Bounds()
	m.frames = append(m.frames, GridFrame(m.grid, m.palette, recordScale, lo, hi))
}

func (m *Model) reset() {
	plate.MakeGrid(m.grid, m.boundary)
	m.iter = 0
	m.delta = math.Inf(1)
	m.deltas = m.deltas[:0]
	m.done = false
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.frames = make([]*image.Paletted, 0)
		m.status = "recording"
		return
	}
	m.recording = false
	if len(m.frames) == 0 {
		m.status = "nothing recorded"
		return
	}
	if err := SaveGIF(m.gifPath, m.frames, 3); err != nil {
		slog.Error("saving recording", "path", m.gifPath, "err", err)
		m.status = "save failed: " + err.Error()
	} else {
		m.status = fmt.Sprintf("saved %d frames to %s", len(m.frames), m.gifPath)
	}
	m.frames = nil
}

func (m Model) View() string {
	title := GradientText("platesim · steady-state relaxation", m.palette)

	var state string
	switch {
	case m.recording:
		state = StatusRecording.Render("● REC")
	case m.done && m.solver.Converged(m.delta):
		state = StatusRunning.Render("converged")
	case m.done:
		state = StatusPaused.Render("iteration cap reached")
	case m.running:
		state = StatusRunning.Render("running")
	default:
		state = StatusPaused.Render("paused")
	}

	delta := "-"
	if m.iter > 0 {
		delta = fmt.Sprintf("%.3e", m.delta)
	}
	stats := RenderStats(m.grid,
		[2]string{"method", m.solver.Method.String()},
		[2]string{"sweep", fmt.Sprintf("%d / %d", m.iter, m.solver.MaxIterations)},
		[2]string{"delta", delta},
		[2]string{"tolerance", fmt.Sprintf("%.1e", m.solver.Tolerance)},
		[2]string{"speed", fmt.Sprintf("%d/tick", m.sweepsPerTick)},
		[2]string{"palette", m.palette.Name},
	)

	lo, hi := m.boundary.Bounds()
	left := RenderHeatmap(m.grid, m.palette, heatmapCols) + RenderLegend(m.palette, lo, hi, 24)
	right := lipgloss.JoinVertical(lipgloss.Left,
		stats,
		"",
		Subtle.Render("log10 delta"),
		SparklineChart(LogDeltas(m.deltas), 40),
		"",
		m.progress(),
	)

	var sb strings.Builder
	sb.WriteString(title + "  " + state + "\n\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
	sb.WriteString("\n")
	if m.status != "" {
		sb.WriteString(Subtle.Render(m.status) + "\n")
	}
	if m.showHelp {
		sb.WriteString(KeyHint.Render("space pause · s step · r reset · m method · t palette · +/- speed · g record gif · q quit") + "\n")
	} else {
		sb.WriteString(KeyHint.Render("? help · q quit") + "\n")
	}
	return sb.String()
}

// progress shows how far the delta has come from the first sweep towards
// the tolerance on a log scale.
func (m Model) progress() string {
	if len(m.deltas) == 0 || m.solver.Tolerance <= 0 {
		return ProgressBar(0, 30)
	}
	first := math.Log10(math.Max(m.deltas[0], 1e-300))
	target := math.Log10(m.solver.Tolerance)
	cur := math.Log10(math.Max(m.delta, 1e-300))
	if first <= target {
		return ProgressBar(1, 30)
	}
	return ProgressBar((first-cur)/(first-target), 30)
}

// Sweeps reports how many sweeps have run since the last reset.
func (m Model) Sweeps() int { return m.iter }

// Done reports whether the run converged or hit its cap.
func (m Model) Done() bool { return m.done }
