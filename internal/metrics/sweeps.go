package metrics

// Sweeps counts the sweeps of a relaxation run.
type Sweeps struct {
	name  string
	count int
}

func NewSweeps() *Sweeps {
	return &Sweeps{name: "sweeps"}
}

func (s *Sweeps) Name() string { return s.name }

func (s *Sweeps) OnSweep(iter int, delta float64) {
	s.count++
}

func (s *Sweeps) Value() float64 {
	return float64(s.count)
}

func (s *Sweeps) Reset() {
	s.count = 0
}

// FinalDelta keeps the delta of the most recent sweep.
type FinalDelta struct {
	name  string
	delta float64
}

func NewFinalDelta() *FinalDelta {
	return &FinalDelta{name: "final_delta"}
}

func (f *FinalDelta) Name() string { return f.name }

func (f *FinalDelta) OnSweep(iter int, delta float64) {
	f.delta = delta
}

func (f *FinalDelta) Value() float64 {
	return f.delta
}

func (f *FinalDelta) Reset() {
	f.delta = 0
}
