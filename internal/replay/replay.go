// Package replay drives a session from scripted moves and probes levels
// with random play.
package replay

import (
	"context"
	"fmt"
	"os"

	"github.com/guptarohit/asciigraph"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravgrid/internal/level"
	"github.com/san-kum/gravgrid/internal/metrics"
	"github.com/san-kum/gravgrid/internal/placement"
	"github.com/san-kum/gravgrid/internal/session"
	"github.com/san-kum/gravgrid/internal/sim"
)

// Scenario is a scripted sequence of moves against the catalog.
type Scenario struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	StartLevel  int      `yaml:"start_level"`
	Moves       []string `yaml:"moves"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("replay: parse %s: %w", path, err)
	}
	return &sc, nil
}

type Result int

const (
	Undecided Result = iota
	Stable
	Failed
	Finished
)

func (r Result) String() string {
	switch r {
	case Stable:
		return "stable"
	case Failed:
		return "failed"
	case Finished:
		return "finished"
	}
	return "undecided"
}

// Step records the state right after one move.
type Step struct {
	Move    Move
	Outcome placement.Outcome
	Level   int
	Score   int
	Total   int
}

type Report struct {
	Scenario   string
	Steps      []Step
	Passes     []sim.Pass
	Level      int
	LevelName  string
	Result     Result
	Score      int
	TotalScore int
	Stability  float64
	Collisions int
	Final      session.Snapshot
}

// Displacement returns tiles moved per pass across the whole replay.
func (r *Report) Displacement() []float64 {
	out := make([]float64, len(r.Passes))
	for i, p := range r.Passes {
		out[i] = float64(p.Displacement)
	}
	return out
}

func (r *Report) TotalScores() []float64 {
	out := make([]float64, len(r.Steps))
	for i, s := range r.Steps {
		out[i] = float64(s.Total)
	}
	return out
}

// Chart plots displacement per pass. It is empty when nothing ran.
func (r *Report) Chart(height, width int) string {
	data := r.Displacement()
	if len(data) == 0 {
		return ""
	}
	if len(data) == 1 {
		data = append(data, data[0])
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("tiles moved per pass"),
	)
}

// Run plays moves against a fresh session over defs.
func Run(ctx context.Context, defs []level.Definition, start int, moves []Move, opts ...session.Option) (*Report, error) {
	rep := &Report{}
	stab := metrics.NewStability()
	col := metrics.NewCollisions()

	opts = append(opts,
		session.WithMetrics(stab, col),
		session.WithObserver(sim.ObserverFunc(func(_ *level.Level, p sim.Pass) {
			rep.Passes = append(rep.Passes, p)
		})),
	)
	s, err := session.New(defs, opts...)
	if err != nil {
		return nil, err
	}
	s.EnterLevel(start)

	for i, m := range moves {
		if err := ctx.Err(); err != nil {
			return rep, fmt.Errorf("replay: move %d: %w", i+1, err)
		}

		out := apply(s, m)
		l := s.Active()
		rep.Steps = append(rep.Steps, Step{
			Move:    m,
			Outcome: out,
			Level:   s.ActiveIndex(),
			Score:   l.Score,
			Total:   s.TotalScore(),
		})
	}

	l := s.Active()
	rep.Level = s.ActiveIndex()
	rep.LevelName = l.Name
	rep.Result = resultOf(s, l)
	rep.Score = l.Score
	rep.TotalScore = s.TotalScore()
	rep.Stability = stab.Value()
	rep.Collisions = int(col.Value())
	rep.Final, _ = s.Snapshot()
	return rep, nil
}

// RunScenario resolves a scenario's moves and runs them.
func RunScenario(ctx context.Context, defs []level.Definition, sc *Scenario, opts ...session.Option) (*Report, error) {
	moves, err := ParseMoves(sc.Moves)
	if err != nil {
		return nil, fmt.Errorf("replay: %s: %w", sc.Name, err)
	}
	rep, err := Run(ctx, defs, sc.StartLevel, moves, opts...)
	if rep != nil {
		rep.Scenario = sc.Name
	}
	return rep, err
}

func apply(s *session.Session, m Move) placement.Outcome {
	switch m.Kind {
	case MoveNav:
		s.Navigate(m.Nav)
	case MoveConfirm:
		s.AdvanceIfStable(true)
	case MoveClick:
		return click(s, m)
	}
	return placement.None
}

// click repeats the input through skip ticks so the click always lands.
func click(s *session.Session, m Move) placement.Outcome {
	in := placement.Input{Click: true, Hover: m.Tile, InGrid: s.Active().Contains(m.Tile)}
	out := s.Update(in)
	for out == placement.Skipped {
		out = s.Update(in)
	}
	return out
}

func resultOf(s *session.Session, l *level.Level) Result {
	switch {
	case s.Finished():
		return Finished
	case l.Failed:
		return Failed
	case l.Stable:
		return Stable
	}
	return Undecided
}
