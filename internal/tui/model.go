// Package tui is the terminal frontend: it turns mouse and key events
// into placement input and renders session snapshots with lipgloss.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/gravgrid/internal/body"
	"github.com/san-kum/gravgrid/internal/config"
	"github.com/san-kum/gravgrid/internal/level"
	"github.com/san-kum/gravgrid/internal/placement"
	"github.com/san-kum/gravgrid/internal/session"
)

const (
	marginLeft  = 2
	headerLines = 2
)

type tickMsg time.Time

type Model struct {
	sess *session.Session
	cfg  config.TUIConfig

	cursor  body.Tile
	hover   body.Tile
	hoverIn bool
	click   bool

	width  int
	height int
}

func New(sess *session.Session, cfg config.TUIConfig) Model {
	return Model{
		sess:   sess,
		cfg:    cfg,
		width:  80,
		height: 24,
	}
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) tick() tea.Cmd {
	fps := max(m.cfg.FPS, 1)
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Geometry maps terminal cells to tiles for the grid as View draws it.
func (m Model) Geometry(grid level.Size) level.Geometry {
	return level.Geometry{
		Grid:    grid,
		TileW:   m.cfg.TileWidth,
		TileH:   m.cfg.TileHeight,
		OffsetX: marginLeft,
		OffsetY: headerLines,
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m = m.step()
		return m, m.tick()
	}
	return m, nil
}

// step feeds one tick of input to the session. A click is consumed
// by exactly one tick.
func (m Model) step() Model {
	m.sess.Update(placement.Input{Click: m.click, Hover: m.hover, InGrid: m.hoverIn})
	m.click = false
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	snap, _ := m.sess.Snapshot()

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "r":
		m.sess.Navigate(session.NavRetry)
	case "n":
		m.sess.Navigate(session.NavNext)
	case "p":
		m.sess.Navigate(session.NavPrev)
	case "g", "home":
		m.sess.Navigate(session.NavFirst)
	case "G", "end":
		m.sess.Navigate(session.NavLast)
	case "enter":
		if snap.Finished {
			return m, tea.Quit
		}
		m.sess.AdvanceIfStable(true)
	case "up", "k":
		m = m.moveCursor(0, -1, snap.Grid)
	case "down", "j":
		m = m.moveCursor(0, 1, snap.Grid)
	case "left", "h":
		m = m.moveCursor(-1, 0, snap.Grid)
	case "right", "l":
		m = m.moveCursor(1, 0, snap.Grid)
	case " ":
		m.hover, m.hoverIn = m.cursor, true
		m.click = true
	}
	return m, nil
}

func (m Model) moveCursor(dx, dy int, grid level.Size) Model {
	m.cursor.X = max(0, min(m.cursor.X+dx, grid.W-1))
	m.cursor.Y = max(0, min(m.cursor.Y+dy, grid.H-1))
	m.hover, m.hoverIn = m.cursor, true
	return m
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	snap, ok := m.sess.Snapshot()
	if !ok {
		return m
	}

	t, in := m.Geometry(snap.Grid).TileAt(msg.X, msg.Y)
	m.hover, m.hoverIn = t, in
	if in {
		m.cursor = t
	}

	if msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonLeft || msg.Button == tea.MouseButtonRight) {
		m.click = true
	}
	return m
}

// Run blocks until the player quits.
func Run(sess *session.Session, cfg config.TUIConfig) error {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	_, err := tea.NewProgram(New(sess, cfg), opts...).Run()
	return err
}
