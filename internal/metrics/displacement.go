package metrics

import "github.com/san-kum/gravgrid/internal/sim"

// Displacement tracks how many tiles bodies moved on each pass.
type Displacement struct {
	name    string
	history []float64
	total   int
}

func NewDisplacement() *Displacement {
	return &Displacement{
		name:    "displacement",
		history: make([]float64, 0),
	}
}

func (d *Displacement) Name() string { return d.name }

func (d *Displacement) Observe(p sim.Pass) {
	d.total += p.Displacement
	d.history = append(d.history, float64(p.Displacement))
}

// Value is the mean displacement per pass.
func (d *Displacement) Value() float64 {
	if len(d.history) == 0 {
		return 0
	}
	return float64(d.total) / float64(len(d.history))
}

func (d *Displacement) Total() int { return d.total }

// History returns per-pass displacement, oldest first.
func (d *Displacement) History() []float64 {
	out := make([]float64, len(d.history))
	copy(out, d.history)
	return out
}

func (d *Displacement) Reset() {
	d.history = d.history[:0]
	d.total = 0
}
