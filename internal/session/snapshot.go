package session

import (
	"github.com/san-kum/gravgrid/internal/body"
	"github.com/san-kum/gravgrid/internal/level"
)

// Snapshot is a read-only copy of the active level for renderers.
type Snapshot struct {
	Index int
	Count int
	Name  string
	Grid  level.Size

	Bodies      []body.Body
	Pending     int
	RemovalMode bool

	Score      int
	TotalScore int
	Failed     bool
	Stable     bool
	Finished   bool

	Hover       body.Tile
	HoverInGrid bool
}

// Snapshot reports false when no level is active.
func (s *Session) Snapshot() (Snapshot, bool) {
	l := s.Active()
	if l == nil {
		return Snapshot{Index: -1, Count: len(s.levels)}, false
	}

	bodies := make([]body.Body, len(l.Bodies))
	copy(bodies, l.Bodies)

	return Snapshot{
		Index:       s.active,
		Count:       len(s.levels),
		Name:        l.Name,
		Grid:        l.Grid,
		Bodies:      bodies,
		Pending:     s.cursor.Pending,
		RemovalMode: s.cursor.RemovalMode(l),
		Score:       l.Score,
		TotalScore:  s.TotalScore(),
		Failed:      l.Failed,
		Stable:      l.Stable,
		Finished:    s.finished,
		Hover:       s.hover,
		HoverInGrid: s.hoverIn,
	}, true
}

// Last reports whether the snapshot shows the final level.
func (sn Snapshot) Last() bool {
	return sn.Index == sn.Count-1
}
