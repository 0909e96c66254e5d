// Package placement turns a click on a tile into at most one body
// state transition per tick.
package placement

import (
	"github.com/san-kum/gravgrid/internal/body"
	"github.com/san-kum/gravgrid/internal/events"
	"github.com/san-kum/gravgrid/internal/level"
)

// Input is one tick of player intent.
type Input struct {
	Click  bool
	Hover  body.Tile
	InGrid bool
}

// Cursor tracks which pending body the next click places and how many
// simulation steps have been requested.
type Cursor struct {
	Pending   int
	Requested int
}

// RemovalMode reports whether every body has been placed, so clicks
// pick a body up instead of putting one down.
func (c Cursor) RemovalMode(l *level.Level) bool {
	return c.Pending >= len(l.Bodies)
}

type Outcome int

const (
	None Outcome = iota
	Skipped
	Placed
	Removed
	Denied
	RemoveDenied
	Terminal
)

func (o Outcome) String() string {
	switch o {
	case None:
		return "none"
	case Skipped:
		return "skipped"
	case Placed:
		return "placed"
	case Removed:
		return "removed"
	case Denied:
		return "denied"
	case RemoveDenied:
		return "remove-denied"
	case Terminal:
		return "terminal"
	}
	return "unknown"
}

// Mutated reports whether the outcome changed a body and requested a
// simulation step.
func (o Outcome) Mutated() bool {
	return o == Placed || o == Removed
}

// Apply runs the placement rules for one tick.
func Apply(l *level.Level, cur *Cursor, in Input, sink events.Sink) Outcome {
	if sink == nil {
		sink = events.Discard
	}
	if l.Terminal() {
		return Terminal
	}

	if !cur.RemovalMode(l) {
		if !l.Bodies[cur.Pending].State.IsPending() {
			cur.Pending++
			return Skipped
		}
		if !in.Click {
			return None
		}
		return place(l, cur, in, sink)
	}

	if !in.Click {
		return None
	}
	return remove(l, cur, in, sink)
}

func place(l *level.Level, cur *Cursor, in Input, sink events.Sink) Outcome {
	if !in.InGrid || !l.Contains(in.Hover) {
		sink.Emit(events.PlaceDeny)
		return Denied
	}
	if _, taken := l.Occupant(in.Hover); taken {
		sink.Emit(events.PlaceDeny)
		return Denied
	}

	l.Bodies[cur.Pending].Place(in.Hover)
	// removal can reopen an earlier slot, so rescan from the start
	cur.Pending = l.FirstPending()
	l.Score--
	cur.Requested++
	sink.Emit(events.PlaceSuccess)
	return Placed
}

// remove picks up the placed body under the cursor. Clicks on empty
// tiles or off the grid do nothing.
func remove(l *level.Level, cur *Cursor, in Input, sink events.Sink) Outcome {
	if !in.InGrid || !l.Contains(in.Hover) {
		return None
	}

	for i := range l.Bodies {
		b := &l.Bodies[i]
		if !b.State.IsPlaced() || !b.State.Occupies(in.Hover) {
			continue
		}
		if !b.Removable {
			sink.Emit(events.RemoveDeny)
			return RemoveDenied
		}
		b.Remove()
		cur.Pending = i
		l.Score--
		cur.Requested++
		sink.Emit(events.RemoveSuccess)
		return Removed
	}
	return None
}
