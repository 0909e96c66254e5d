package sim

import (
	"github.com/san-kum/gravgrid/internal/body"
	"github.com/san-kum/gravgrid/internal/level"
)

// Engine runs at most one pass per requested step.
type Engine struct {
	computed  int
	passes    int
	metrics   []Metric
	observers []Observer
	snapshot  []source
}

type source struct {
	index   int
	tile    body.Tile
	gravity body.GravityField
}

func New() *Engine {
	return &Engine{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (e *Engine) AddMetric(m Metric)     { e.metrics = append(e.metrics, m) }
func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Engine) Computed() int { return e.computed }
func (e *Engine) Passes() int   { return e.passes }

// Reset zeroes the computed step, for a freshly entered or retried level.
func (e *Engine) Reset() {
	e.computed = 0
	e.passes = 0
	for _, m := range e.metrics {
		m.Reset()
	}
}

// Update catches the engine up to requested. It reports false, and
// touches nothing, when the level is already up to date.
func (e *Engine) Update(l *level.Level, requested int) (Pass, bool) {
	if e.computed >= requested {
		return Pass{}, false
	}

	p := e.step(l)
	e.passes++
	p.Index = e.passes
	e.computed = requested

	for _, m := range e.metrics {
		m.Observe(p)
	}
	for _, o := range e.observers {
		o.OnPass(l, p)
	}
	return p, true
}

// Step runs a single pass on l without any step bookkeeping.
func Step(l *level.Level) Pass {
	var e Engine
	return e.step(l)
}

func (e *Engine) step(l *level.Level) Pass {
	var p Pass
	p.Moved, p.Displacement = e.displace(l)
	p.Collisions = collide(l)
	return p
}

// displace computes every placed body's delta from one snapshot of
// positions, then moves them all at once.
func (e *Engine) displace(l *level.Level) (moved, total int) {
	e.snapshot = e.snapshot[:0]
	for i := range l.Bodies {
		b := &l.Bodies[i]
		if t, ok := b.State.Tile(); ok && b.State.IsPlaced() {
			e.snapshot = append(e.snapshot, source{index: i, tile: t, gravity: b.Gravity})
		}
	}

	deltas := make([]body.Delta, len(e.snapshot))
	for i, self := range e.snapshot {
		var d body.Delta
		for j, other := range e.snapshot {
			if i == j {
				continue
			}
			d = pull(d, self.tile, other)
		}
		deltas[i] = d.Clamp()
	}

	for i, self := range e.snapshot {
		b := &l.Bodies[self.index]
		b.Delta = deltas[i]
		b.State = body.PlacedAt(self.tile.Add(deltas[i]))
		if !deltas[i].IsZero() {
			moved++
			total += deltas[i].Abs()
		}
	}
	return moved, total
}

// pull adds o's contribution at any distance along a shared row or column,
// so a body next to its attractor is drawn onto it.
func pull(d body.Delta, at body.Tile, o source) body.Delta {
	switch {
	case o.tile.Y == at.Y:
		gap := o.tile.X - at.X
		if gap < 0 && o.gravity.Right() {
			d.X--
		} else if gap > 0 && o.gravity.Left() {
			d.X++
		}
	case o.tile.X == at.X:
		gap := o.tile.Y - at.Y
		if gap < 0 && o.gravity.Down() {
			d.Y--
		} else if gap > 0 && o.gravity.Up() {
			d.Y++
		}
	}
	return d
}

// collide marks every body sharing a tile as colliding and fails the
// level. It returns how many bodies newly collided.
func collide(l *level.Level) int {
	occupants := make(map[body.Tile][]int)
	for i := range l.Bodies {
		if t, ok := l.Bodies[i].State.Tile(); ok {
			occupants[t] = append(occupants[t], i)
		}
	}

	n := 0
	for t, idx := range occupants {
		if len(idx) < 2 {
			continue
		}
		for _, i := range idx {
			if l.Bodies[i].State.IsPlaced() {
				l.Bodies[i].State = body.CollidingAt(t)
				n++
			}
		}
		l.Failed = true
	}
	return n
}
