package level

import "github.com/san-kum/gravgrid/internal/body"

// DefaultGrid is the full-screen board size.
var DefaultGrid = Size{W: 16, H: 9}

// Geometry maps tiles to screen units (pixels or terminal cells) for a
// grid centred inside a screen.
type Geometry struct {
	Grid    Size
	TileW   int
	TileH   int
	OffsetX int
	OffsetY int
}

// Centered lays grid out in the middle of a screen of the given size.
// The offset never goes negative, so oversized grids anchor top-left.
func Centered(grid Size, screenW, screenH, tileW, tileH int) Geometry {
	g := Geometry{Grid: grid, TileW: tileW, TileH: tileH}
	w, h := g.SizePx()
	if screenW > w {
		g.OffsetX = (screenW - w) / 2
	}
	if screenH > h {
		g.OffsetY = (screenH - h) / 2
	}
	return g
}

func (g Geometry) SizePx() (int, int) {
	return g.Grid.W * g.TileW, g.Grid.H * g.TileH
}

// Origin returns the top-left screen position of t.
func (g Geometry) Origin(t body.Tile) (int, int) {
	return g.OffsetX + t.X*g.TileW, g.OffsetY + t.Y*g.TileH
}

// TileAt resolves a screen position to a tile. The bool is false when
// the position lies outside the grid.
func (g Geometry) TileAt(x, y int) (body.Tile, bool) {
	if g.TileW <= 0 || g.TileH <= 0 {
		return body.Tile{}, false
	}
	rx, ry := x-g.OffsetX, y-g.OffsetY
	w, h := g.SizePx()
	if rx < 0 || ry < 0 || rx >= w || ry >= h {
		return body.Tile{}, false
	}
	return body.Tile{X: rx / g.TileW, Y: ry / g.TileH}, true
}
