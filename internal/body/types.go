package body

import (
	"fmt"
	"strings"
)

// Tile is an integer grid coordinate. Y grows downward.
type Tile struct {
	X, Y int
}

func (t Tile) Add(d Delta) Tile {
	return Tile{X: t.X + d.X, Y: t.Y + d.Y}
}

func (t Tile) String() string {
	return fmt.Sprintf("%d,%d", t.X, t.Y)
}

// Delta is a per-axis displacement in tiles.
type Delta struct {
	X, Y int
}

func (d Delta) IsZero() bool { return d.X == 0 && d.Y == 0 }

// Clamp limits each axis to a single tile.
func (d Delta) Clamp() Delta {
	return Delta{X: clampUnit(d.X), Y: clampUnit(d.Y)}
}

// Abs returns the Manhattan length of the delta.
func (d Delta) Abs() int {
	return absInt(d.X) + absInt(d.Y)
}

func clampUnit(v int) int {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// GravityField is a 4-bit mask of the directions a body pulls others toward it.
type GravityField uint8

const (
	GravityRight GravityField = 1 << iota
	GravityLeft
	GravityDown
	GravityUp

	GravityNone GravityField = 0
	GravityAll               = GravityUp | GravityDown | GravityLeft | GravityRight
)

func (g GravityField) Has(dir GravityField) bool { return g&dir != 0 }

func (g GravityField) Up() bool    { return g.Has(GravityUp) }
func (g GravityField) Down() bool  { return g.Has(GravityDown) }
func (g GravityField) Left() bool  { return g.Has(GravityLeft) }
func (g GravityField) Right() bool { return g.Has(GravityRight) }

// String renders the field as arrows in up, down, left, right order.
func (g GravityField) String() string {
	if g&GravityAll == 0 {
		return "·"
	}
	var sb strings.Builder
	if g.Up() {
		sb.WriteString("↑")
	}
	if g.Down() {
		sb.WriteString("↓")
	}
	if g.Left() {
		sb.WriteString("←")
	}
	if g.Right() {
		sb.WriteString("→")
	}
	return sb.String()
}

type Status int

const (
	Pending Status = iota
	Placed
	Colliding
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Placed:
		return "placed"
	case Colliding:
		return "colliding"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// State is the tagged placement state of a body. The tile is only
// meaningful for Placed and Colliding.
type State struct {
	status Status
	tile   Tile
}

func PendingState() State      { return State{status: Pending} }
func PlacedAt(t Tile) State    { return State{status: Placed, tile: t} }
func CollidingAt(t Tile) State { return State{status: Colliding, tile: t} }

func (s State) Status() Status    { return s.status }
func (s State) IsPending() bool   { return s.status == Pending }
func (s State) IsPlaced() bool    { return s.status == Placed }
func (s State) IsColliding() bool { return s.status == Colliding }

// Occupies reports whether the body sits on t, colliding or not.
func (s State) Occupies(t Tile) bool {
	return s.status != Pending && s.tile == t
}

// Tile returns the occupied tile, or false for a pending body.
func (s State) Tile() (Tile, bool) {
	if s.status == Pending {
		return Tile{}, false
	}
	return s.tile, true
}

func (s State) String() string {
	switch s.status {
	case Placed:
		return fmt.Sprintf("placed(%s)", s.tile)
	case Colliding:
		return fmt.Sprintf("colliding(%s)", s.tile)
	}
	return "pending"
}

// Body is a single placeable planet.
type Body struct {
	Gravity   GravityField
	Removable bool
	State     State

	// Delta is the displacement computed on the last simulation pass.
	Delta Delta

	Size  float64
	Color string
}

func (b *Body) Place(t Tile) {
	b.State = PlacedAt(t)
	b.Delta = Delta{}
}

func (b *Body) Remove() {
	b.State = PendingState()
	b.Delta = Delta{}
}
