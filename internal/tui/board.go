package tui

import (
	"strings"

	"github.com/san-kum/gravgrid/internal/body"
	"github.com/san-kum/gravgrid/internal/session"
)

// Board draws snap as plain text with one character per tile: '.' for
// empty, 'o' for a placed body and 'X' for a collision.
func Board(snap session.Snapshot) string {
	canvas := make([][]rune, snap.Grid.H)
	for y := range canvas {
		canvas[y] = []rune(strings.Repeat(".", snap.Grid.W))
	}

	for _, b := range snap.Bodies {
		t, ok := b.State.Tile()
		if !ok || !inside(snap, t) {
			continue
		}
		c := 'o'
		if b.State.IsColliding() {
			c = 'X'
		}
		canvas[t.Y][t.X] = c
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func inside(snap session.Snapshot, t body.Tile) bool {
	return t.X >= 0 && t.Y >= 0 && t.X < snap.Grid.W && t.Y < snap.Grid.H
}
