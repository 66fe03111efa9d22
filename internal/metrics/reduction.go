package metrics

import "math"

// maxReductionOrders is reported once the delta reaches an exact fixed
// point, where the ratio would otherwise be infinite.
const maxReductionOrders = 16.0

// Reduction measures how many orders of magnitude the sweep delta fell
// between the first and the latest sweep.
type Reduction struct {
	name         string
	first, last  float64
	observations int
}

func NewReduction() *Reduction {
	return &Reduction{name: "reduction_orders"}
}

func (r *Reduction) Name() string { return r.name }

func (r *Reduction) OnSweep(iter int, delta float64) {
	if r.observations == 0 {
		r.first = delta
	}
	r.last = delta
	r.observations++
}

func (r *Reduction) Value() float64 {
	if r.observations == 0 || r.first <= 0 {
		return 0
	}
	if r.last <= 0 {
		return maxReductionOrders
	}
	return math.Log10(r.first / r.last)
}

func (r *Reduction) Reset() {
	r.first, r.last = 0, 0
	r.observations = 0
}
