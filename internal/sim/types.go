package sim

import "github.com/san-kum/gravgrid/internal/level"

// Pass summarises one displacement + collision step.
type Pass struct {
	Index        int
	Moved        int
	Displacement int
	Collisions   int
}

type Metric interface {
	Name() string
	Observe(p Pass)
	Value() float64
	Reset()
}

type Observer interface {
	OnPass(l *level.Level, p Pass)
}

type ObserverFunc func(l *level.Level, p Pass)

func (f ObserverFunc) OnPass(l *level.Level, p Pass) { f(l, p) }
