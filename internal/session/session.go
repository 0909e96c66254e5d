// Package session drives a sequence of levels: per-tick placement and
// simulation, terminal latches, navigation and scoring.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/san-kum/gravgrid/internal/body"
	"github.com/san-kum/gravgrid/internal/events"
	"github.com/san-kum/gravgrid/internal/level"
	"github.com/san-kum/gravgrid/internal/placement"
	"github.com/san-kum/gravgrid/internal/sim"
)

var ErrNoLevels = errors.New("session: no levels")

// StableBonus is added to a solved level's score.
const StableBonus = 100

type Nav int

const (
	NavNone Nav = iota
	NavRetry
	NavPrev
	NavNext
	NavFirst
	NavLast
)

func (n Nav) String() string {
	switch n {
	case NavRetry:
		return "retry"
	case NavPrev:
		return "prev"
	case NavNext:
		return "next"
	case NavFirst:
		return "first"
	case NavLast:
		return "last"
	}
	return "none"
}

type Option func(*Session)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithSink routes core signals to collaborators such as audio.
func WithSink(sink events.Sink) Option {
	return func(s *Session) {
		if sink != nil {
			s.sink = sink
		}
	}
}

func WithMetrics(ms ...sim.Metric) Option {
	return func(s *Session) {
		for _, m := range ms {
			s.engine.AddMetric(m)
		}
	}
}

func WithObserver(o sim.Observer) Option {
	return func(s *Session) { s.engine.AddObserver(o) }
}

type Session struct {
	ID uuid.UUID

	levels []*level.Level
	active int
	cursor placement.Cursor
	engine *sim.Engine

	// banked holds the stable result of a level at the moment it was left.
	banked []int
	solved []bool

	hover    body.Tile
	hoverIn  bool
	finished bool

	sink events.Sink
	log  zerolog.Logger
}

// New builds one level per definition. No level is active until
// EnterLevel is called.
func New(defs []level.Definition, opts ...Option) (*Session, error) {
	if len(defs) == 0 {
		return nil, ErrNoLevels
	}

	levels := make([]*level.Level, len(defs))
	for i, def := range defs {
		l, err := level.New(def)
		if err != nil {
			return nil, fmt.Errorf("session: level %d: %w", i, err)
		}
		levels[i] = l
	}

	s := &Session{
		ID:     uuid.New(),
		levels: levels,
		active: -1,
		engine: sim.New(),
		banked: make([]int, len(levels)),
		solved: make([]bool, len(levels)),
		sink:   events.Discard,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("session_id", s.ID.String()).Logger()
	return s, nil
}

func (s *Session) Len() int { return len(s.levels) }

// ActiveIndex returns -1 before the first EnterLevel.
func (s *Session) ActiveIndex() int { return s.active }

func (s *Session) Active() *level.Level {
	if s.active < 0 {
		return nil
	}
	return s.levels[s.active]
}

func (s *Session) Cursor() placement.Cursor { return s.cursor }
func (s *Session) Engine() *sim.Engine      { return s.engine }

// Finished reports that the last level was solved and confirmed.
func (s *Session) Finished() bool { return s.finished }

// EnterLevel switches to level i, clamped to the valid range. Both the
// level being left and the one entered start from scratch.
func (s *Session) EnterLevel(i int) {
	i = max(0, min(i, len(s.levels)-1))

	if prev := s.Active(); prev != nil {
		if prev.Stable {
			s.banked[s.active] = StableBonus + prev.Score
			s.solved[s.active] = true
		}
		prev.Reset()
	}

	s.active = i
	s.levels[i].Reset()
	s.restart()

	s.log.Info().Int("level", i).Str("name", s.levels[i].Name).Msg("entered level")
}

// ResetActive retries the active level.
func (s *Session) ResetActive() {
	l := s.Active()
	if l == nil {
		return
	}
	l.Reset()
	s.restart()
	s.log.Info().Int("level", s.active).Msg("level reset")
}

func (s *Session) restart() {
	s.cursor = placement.Cursor{}
	s.engine.Reset()
	s.hoverIn = false
	s.finished = false
}

// Navigate applies a navigation request. Out of range targets clamp.
func (s *Session) Navigate(n Nav) {
	switch n {
	case NavRetry:
		s.ResetActive()
	case NavPrev:
		s.EnterLevel(s.active - 1)
	case NavNext:
		s.EnterLevel(s.active + 1)
	case NavFirst:
		s.EnterLevel(0)
	case NavLast:
		s.EnterLevel(len(s.levels) - 1)
	}
}

// Update runs one tick: setup, hover tracking, placement, simulation
// and the terminal latches.
func (s *Session) Update(in placement.Input) placement.Outcome {
	l := s.Active()
	if l == nil {
		return placement.None
	}

	if !l.Setup {
		l.Setup = true
		s.sink.Emit(events.LevelStarted)
	}

	if in.InGrid && (!s.hoverIn || in.Hover != s.hover) {
		s.sink.Emit(events.HoverChanged)
	}
	s.hover, s.hoverIn = in.Hover, in.InGrid

	out := placement.Apply(l, &s.cursor, in, s.sink)
	if out != placement.None && out != placement.Skipped {
		s.log.Debug().
			Str("outcome", out.String()).
			Str("tile", in.Hover.String()).
			Int("score", l.Score).
			Msg("placement")
	}

	if p, ok := s.engine.Update(l, s.cursor.Requested); ok {
		s.log.Debug().
			Int("pass", p.Index).
			Int("moved", p.Moved).
			Int("collisions", p.Collisions).
			Msg("simulated")
	}

	s.latch(l)
	return out
}

func (s *Session) latch(l *level.Level) {
	if l.Failed && !l.WasFailed {
		l.WasFailed = true
		s.sink.Emit(events.Collision)
		s.log.Info().Int("level", s.active).Int("score", l.Score).Msg("collision")
	}

	// deltas mean nothing until a pass has produced them
	if s.engine.Computed() == 0 {
		return
	}
	if !l.Failed && !l.WasStable && l.IsStable() {
		l.Stable = true
		l.WasStable = true
		s.sink.Emit(events.Stable)
		s.log.Info().Int("level", s.active).Int("score", l.Score).Msg("stable system")
	}
}

// AdvanceIfStable moves on from a solved level once the player
// confirms. On the last level it marks the session finished instead.
func (s *Session) AdvanceIfStable(confirm bool) bool {
	l := s.Active()
	if l == nil || !l.Stable || !confirm {
		return false
	}
	if s.active == len(s.levels)-1 {
		if !s.finished {
			s.finished = true
			s.log.Info().Int("total", s.TotalScore()).Msg("finished")
		}
		return false
	}
	s.EnterLevel(s.active + 1)
	return true
}

// TotalScore sums StableBonus plus score over every solved level. The
// active level counts with its live result when stable; levels left
// earlier count with the result banked when they were left.
func (s *Session) TotalScore() int {
	total := 0
	for i, l := range s.levels {
		switch {
		case i == s.active && l.Stable:
			total += StableBonus + l.Score
		case s.solved[i]:
			total += s.banked[i]
		}
	}
	return total
}
