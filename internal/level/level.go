package level

import (
	"fmt"

	"github.com/san-kum/gravgrid/internal/body"
)

// Size is a grid size in tiles.
type Size struct {
	W, H int
}

// BodyTemplate is the static description of one body in a level.
// A template with At set starts out placed on that tile.
type BodyTemplate struct {
	Gravity   body.GravityField
	Removable bool
	At        *body.Tile
	Size      float64
	Color     string
}

// Definition is the immutable input a level is built from.
type Definition struct {
	Name   string
	Grid   Size
	Bodies []BodyTemplate
}

// Level is one puzzle: an ordered set of bodies on a grid plus its
// terminal flags. Body order never changes; it is both the placement
// queue and the render stacking order.
type Level struct {
	Name   string
	Grid   Size
	Bodies []body.Body
	Score  int

	Failed    bool
	Stable    bool
	WasFailed bool
	WasStable bool
	Setup     bool

	original []body.Body
}

func New(def Definition) (*Level, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	bodies := make([]body.Body, len(def.Bodies))
	for i, tpl := range def.Bodies {
		b := body.Body{
			Gravity:   tpl.Gravity,
			Removable: tpl.Removable,
			State:     body.PendingState(),
			Size:      tpl.Size,
			Color:     tpl.Color,
		}
		if tpl.At != nil {
			b.State = body.PlacedAt(*tpl.At)
		}
		bodies[i] = b
	}

	l := &Level{
		Name:     def.Name,
		Grid:     def.Grid,
		original: bodies,
	}
	l.Reset()
	return l, nil
}

// MustNew is New for compiled-in definitions.
func MustNew(def Definition) *Level {
	l, err := New(def)
	if err != nil {
		panic(err)
	}
	return l
}

func (d Definition) Validate() error {
	if d.Grid.W <= 0 || d.Grid.H <= 0 {
		return fmt.Errorf("%q: %w", d.Name, ErrInvalidGrid)
	}
	if len(d.Bodies) == 0 {
		return fmt.Errorf("%q: %w", d.Name, ErrNoBodies)
	}
	seen := make(map[body.Tile]bool)
	for i, tpl := range d.Bodies {
		if tpl.At == nil {
			continue
		}
		t := *tpl.At
		if t.X < 0 || t.Y < 0 || t.X >= d.Grid.W || t.Y >= d.Grid.H {
			return fmt.Errorf("%q body %d at %s: %w", d.Name, i, t, ErrTileOutOfGrid)
		}
		if seen[t] {
			return fmt.Errorf("%q body %d at %s: %w", d.Name, i, t, ErrOverlap)
		}
		seen[t] = true
	}
	return nil
}

// Reset restores the initial bodies and clears score and all flags.
func (l *Level) Reset() {
	l.Bodies = make([]body.Body, len(l.original))
	copy(l.Bodies, l.original)
	l.Score = 0
	l.Failed = false
	l.Stable = false
	l.WasFailed = false
	l.WasStable = false
	l.Setup = false
}

// Terminal reports whether the level has failed or been solved.
func (l *Level) Terminal() bool {
	return l.Failed || l.Stable
}

func (l *Level) Contains(t body.Tile) bool {
	return t.X >= 0 && t.Y >= 0 && t.X < l.Grid.W && t.Y < l.Grid.H
}

// Occupant returns the index of the body on t, placed or colliding.
func (l *Level) Occupant(t body.Tile) (int, bool) {
	for i := range l.Bodies {
		if l.Bodies[i].State.Occupies(t) {
			return i, true
		}
	}
	return -1, false
}

// FirstPending returns the lowest pending index, or len(Bodies) when
// every body is on the grid.
func (l *Level) FirstPending() int {
	for i := range l.Bodies {
		if l.Bodies[i].State.IsPending() {
			return i
		}
	}
	return len(l.Bodies)
}

func (l *Level) Counts() (pending, placed, colliding int) {
	for i := range l.Bodies {
		switch l.Bodies[i].State.Status() {
		case body.Pending:
			pending++
		case body.Placed:
			placed++
		case body.Colliding:
			colliding++
		}
	}
	return
}

// IsStable evaluates the win predicate: nothing pending, nothing
// colliding, at least one body placed, and no placed body moved on
// the last pass. Every body is inspected.
func (l *Level) IsStable() bool {
	pending, placed, colliding := l.Counts()
	if pending > 0 || colliding > 0 || placed == 0 {
		return false
	}
	for i := range l.Bodies {
		if !l.Bodies[i].Delta.IsZero() {
			return false
		}
	}
	return true
}
