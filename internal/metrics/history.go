package metrics

// History records the delta of every sweep. Its value is the ratio of the
// last two deltas, a running estimate of the contraction factor.
type History struct {
	name   string
	deltas []float64
}

func NewHistory() *History {
	return &History{name: "contraction", deltas: make([]float64, 0, 256)}
}

func (h *History) Name() string { return h.name }

func (h *History) OnSweep(iter int, delta float64) {
	h.deltas = append(h.deltas, delta)
}

func (h *History) Value() float64 {
	n := len(h.deltas)
	if n < 2 || h.deltas[n-2] == 0 {
		return 0
	}
	return h.deltas[n-1] / h.deltas[n-2]
}

func (h *History) Reset() {
	h.deltas = h.deltas[:0]
}

// Deltas returns a copy of the recorded deltas.
func (h *History) Deltas() []float64 {
	out := make([]float64, len(h.deltas))
	copy(out, h.deltas)
	return out
}
