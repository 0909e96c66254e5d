package metrics

import "github.com/san-kum/gravgrid/internal/sim"

type Collisions struct {
	name  string
	count int
}

func NewCollisions() *Collisions {
	return &Collisions{
		name: "collisions",
	}
}

func (c *Collisions) Name() string {
	return c.name
}

func (c *Collisions) Observe(p sim.Pass) {
	c.count += p.Collisions
}

func (c *Collisions) Value() float64 {
	return float64(c.count)
}

func (c *Collisions) Reset() {
	c.count = 0
}

// Default returns the metrics every replay collects.
func Default() []sim.Metric {
	return []sim.Metric{
		NewDisplacement(),
		NewStability(),
		NewCollisions(),
	}
}
