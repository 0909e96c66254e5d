package replay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/gravgrid/internal/body"
	"github.com/san-kum/gravgrid/internal/session"
)

var ErrBadMove = errors.New("replay: bad move")

type MoveKind int

const (
	MoveClick MoveKind = iota
	MoveNav
	MoveConfirm
)

// Move is one scripted player action. Click tiles are zero-based.
type Move struct {
	Kind MoveKind
	Tile body.Tile
	Nav  session.Nav
}

var navWords = map[string]session.Nav{
	"retry": session.NavRetry,
	"prev":  session.NavPrev,
	"next":  session.NavNext,
	"first": session.NavFirst,
	"last":  session.NavLast,
}

// ParseMove reads "x,y" clicks using the 1-based coordinates shown on
// screen, or one of the words retry, prev, next, first, last, confirm.
func ParseMove(s string) (Move, error) {
	word := strings.ToLower(strings.TrimSpace(s))
	if word == "confirm" {
		return Move{Kind: MoveConfirm}, nil
	}
	if nav, ok := navWords[word]; ok {
		return Move{Kind: MoveNav, Nav: nav}, nil
	}

	xs, ys, ok := strings.Cut(word, ",")
	if !ok {
		return Move{}, fmt.Errorf("%q: %w", s, ErrBadMove)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Move{}, fmt.Errorf("%q: %w", s, ErrBadMove)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Move{}, fmt.Errorf("%q: %w", s, ErrBadMove)
	}
	if x < 1 || y < 1 {
		return Move{}, fmt.Errorf("%q: coordinates start at 1: %w", s, ErrBadMove)
	}
	return Move{Kind: MoveClick, Tile: body.Tile{X: x - 1, Y: y - 1}}, nil
}

func ParseMoves(words []string) ([]Move, error) {
	moves := make([]Move, 0, len(words))
	for i, w := range words {
		m, err := ParseMove(w)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		moves = append(moves, m)
	}
	return moves, nil
}

func (m Move) String() string {
	switch m.Kind {
	case MoveClick:
		return fmt.Sprintf("%d,%d", m.Tile.X+1, m.Tile.Y+1)
	case MoveNav:
		return m.Nav.String()
	case MoveConfirm:
		return "confirm"
	}
	return "unknown"
}
