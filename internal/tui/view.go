package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gravgrid/internal/body"
	"github.com/san-kum/gravgrid/internal/session"
)

const helpLine = "click/space place · arrows move · r retry · n/p level · g/G first/last · enter continue · q quit"

func (m Model) View() string {
	snap, ok := m.sess.Snapshot()
	if !ok {
		return dim.Render("no level loaded") + "\n"
	}

	var b strings.Builder
	b.WriteString(header(snap) + "\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.grid(snap), "   ", stack(snap)))
	b.WriteString("\n\n")
	b.WriteString(status(snap) + "\n")
	b.WriteString(dimmer.Render(helpLine) + "\n")
	return b.String()
}

func header(snap session.Snapshot) string {
	return title.Render("gravgrid") +
		dim.Render(fmt.Sprintf("  level %d/%d · %s", snap.Index+1, snap.Count, snap.Name))
}

func (m Model) grid(snap session.Snapshot) string {
	occupants := make(map[body.Tile][]int)
	for i, b := range snap.Bodies {
		if t, ok := b.State.Tile(); ok {
			occupants[t] = append(occupants[t], i)
		}
	}

	margin := strings.Repeat(" ", marginLeft)
	lines := make([]string, 0, snap.Grid.H*m.cfg.TileHeight)
	for y := 0; y < snap.Grid.H; y++ {
		rows := make([]strings.Builder, m.cfg.TileHeight)
		for x := 0; x < snap.Grid.W; x++ {
			t := body.Tile{X: x, Y: y}
			for i, cell := range m.tile(snap, t, occupants[t]) {
				rows[i].WriteString(cell)
			}
		}
		for i := range rows {
			lines = append(lines, margin+rows[i].String())
		}
	}
	return strings.Join(lines, "\n")
}

// tile renders one grid tile as TileHeight lines of TileWidth cells.
func (m Model) tile(snap session.Snapshot, t body.Tile, occ []int) []string {
	bg := tileLight
	if (t.X+t.Y)%2 == 0 {
		bg = tileDark
	}
	hovered := snap.HoverInGrid && snap.Hover == t
	if hovered {
		bg = tileHover
	}

	var glyph, arrows string
	fg := white
	switch {
	case len(occ) > 1:
		glyph, fg = "✕", redLight
	case len(occ) == 1:
		b := snap.Bodies[occ[0]]
		glyph, arrows, fg = bodyGlyph(b), b.Gravity.String(), lipgloss.Color(b.Color)
		if b.State.IsColliding() {
			glyph, fg = "✕", redLight
		}
	case hovered && !snap.RemovalMode && snap.Pending < len(snap.Bodies):
		b := snap.Bodies[snap.Pending]
		glyph, arrows, fg = "○", b.Gravity.String(), lipgloss.Color(b.Color)
	}

	style := bg.Foreground(fg).Width(m.cfg.TileWidth).Align(lipgloss.Center)
	out := make([]string, m.cfg.TileHeight)
	for i := range out {
		text := ""
		switch i {
		case 0:
			text = glyph
		case 1:
			text = arrows
		}
		out[i] = style.Render(truncate(text, m.cfg.TileWidth))
	}
	return out
}

func bodyGlyph(b body.Body) string {
	switch {
	case b.Size >= 0.7:
		return "⬤"
	case b.Size >= 0.5:
		return "●"
	}
	return "•"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

// stack lists every body in placement order, marking the next one to
// place and striking out the ones already on the grid.
func stack(snap session.Snapshot) string {
	lines := []string{dim.Render("queue")}
	for i, b := range snap.Bodies {
		marker := " "
		if i == snap.Pending && !snap.RemovalMode {
			marker = "▸"
		}
		label := fmt.Sprintf("%s %-4s", bodyGlyph(b), b.Gravity.String())
		if !b.Removable {
			label += " fixed"
		}

		if b.State.IsPending() {
			label = lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color)).Render(label)
		} else {
			label = struck.Render(label)
		}
		lines = append(lines, hint.Render(marker)+" "+label)
	}
	return strings.Join(lines, "\n")
}

func status(snap session.Snapshot) string {
	var msg string
	switch {
	case snap.Finished:
		msg = success.Render("thanks for playing!")
	case snap.Failed:
		msg = alert.Render("collision!") + dim.Render("  r retry")
	case snap.Stable && snap.Last():
		msg = success.Render("stable system!") + dim.Render("  enter finish")
	case snap.Stable:
		msg = success.Render("stable system!") + dim.Render("  enter next level")
	case snap.RemovalMode:
		msg = hint.Render("Remove a planet")
	default:
		msg = hint.Render("Place planet")
	}

	msg += dim.Render(fmt.Sprintf("   score %d  total %d", snap.Score, snap.TotalScore))
	if snap.HoverInGrid {
		msg += dim.Render(fmt.Sprintf("   tile %d,%d", snap.Hover.X+1, snap.Hover.Y+1))
	}
	return msg
}
