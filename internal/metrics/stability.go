package metrics

import "github.com/san-kum/gravgrid/internal/sim"

// Stability is the share of passes on which nothing moved.
type Stability struct {
	name    string
	moving  int
	samples int
}

func NewStability() *Stability {
	return &Stability{
		name: "stability",
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(p sim.Pass) {
	s.samples++
	if p.Moved > 0 {
		s.moving++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.moving)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.moving = 0
	s.samples = 0
}
