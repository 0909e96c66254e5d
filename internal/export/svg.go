// Package export renders boards as standalone SVG images.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/gravgrid/internal/body"
	"github.com/san-kum/gravgrid/internal/level"
	"github.com/san-kum/gravgrid/internal/session"
)

const (
	ScreenW   = 960
	ScreenH   = 540
	TileSize  = 32
	lineWidth = 2
)

const (
	colorLines = "#102e30"
	colorDark  = "#050505"
	colorLight = "#111111"
	colorCrash = "#f52d37"
	colorText  = "#f1f1f1"
)

// BoardSVG draws snap on a 960x540 canvas with 32px tiles, grid centred.
func BoardSVG(snap session.Snapshot) string {
	g := level.Centered(snap.Grid, ScreenW, ScreenH, TileSize, TileSize)
	w, h := g.SizePx()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, ScreenW, ScreenH, ScreenW, ScreenH, colorDark))

	// chess board cells
	for y := 0; y < snap.Grid.H; y++ {
		for x := 0; x < snap.Grid.W; x++ {
			fill := colorDark
			if (x+y)%2 != 0 {
				fill = colorLight
			}
			px, py := g.Origin(body.Tile{X: x, Y: y})
			sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>
`, px, py, TileSize, TileSize, fill))
		}
	}

	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="%d">
`, colorLines, lineWidth))
	for i := 0; i <= snap.Grid.W; i++ {
		x := g.OffsetX + i*TileSize
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d"/>
`, x, g.OffsetY, x, g.OffsetY+h))
	}
	for j := 0; j <= snap.Grid.H; j++ {
		y := g.OffsetY + j*TileSize
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d"/>
`, g.OffsetX, y, g.OffsetX+w, y))
	}
	sb.WriteString("</g>\n")

	for _, b := range snap.Bodies {
		t, ok := b.State.Tile()
		if !ok {
			continue
		}
		px, py := g.Origin(t)
		fill := b.Color
		if b.State.IsColliding() || fill == "" {
			fill = colorCrash
		}
		r := b.Size * TileSize / 2
		sb.WriteString(fmt.Sprintf(`<circle cx="%d" cy="%d" r="%.1f" fill="%s"/>
`, px+TileSize/2, py+TileSize/2, r, fill))
	}

	sb.WriteString(fmt.Sprintf(`<text x="8" y="24" fill="%s" font-family="monospace" font-size="16">%s</text>
`, colorText, escape(caption(snap))))
	sb.WriteString("</svg>")
	return sb.String()
}

func caption(snap session.Snapshot) string {
	state := "in progress"
	switch {
	case snap.Failed:
		state = "collision"
	case snap.Stable:
		state = "stable"
	}
	return fmt.Sprintf("%d. %s · %s · score %d", snap.Index+1, snap.Name, state, snap.Score)
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
