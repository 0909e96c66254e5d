package replay

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/san-kum/gravgrid/internal/body"
	"github.com/san-kum/gravgrid/internal/level"
	"github.com/san-kum/gravgrid/internal/levels"
	"github.com/san-kum/gravgrid/internal/placement"
	"github.com/san-kum/gravgrid/internal/session"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		in      string
		want    Move
		wantErr bool
	}{
		{"3,4", Move{Kind: MoveClick, Tile: body.Tile{X: 2, Y: 3}}, false},
		{" 16 , 9 ", Move{Kind: MoveClick, Tile: body.Tile{X: 15, Y: 8}}, false},
		{"next", Move{Kind: MoveNav, Nav: session.NavNext}, false},
		{"Retry", Move{Kind: MoveNav, Nav: session.NavRetry}, false},
		{"CONFIRM", Move{Kind: MoveConfirm}, false},
		{"0,1", Move{}, true},
		{"a,b", Move{}, true},
		{"3", Move{}, true},
		{"jump", Move{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMove(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrBadMove) {
					t.Fatalf("err = %v, want ErrBadMove", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMoveString(t *testing.T) {
	for _, in := range []string{"3,4", "last", "confirm"} {
		m, err := ParseMove(in)
		if err != nil {
			t.Fatal(err)
		}
		if m.String() != in {
			t.Errorf("String() = %q, want %q", m.String(), in)
		}
	}
}

func TestParseMoves_ReportsPosition(t *testing.T) {
	_, err := ParseMoves([]string{"1,1", "next", "x"})
	if err == nil || !strings.Contains(err.Error(), "move 3") {
		t.Errorf("err = %v", err)
	}
}

func mustMoves(t *testing.T, words ...string) []Move {
	t.Helper()
	moves, err := ParseMoves(words)
	if err != nil {
		t.Fatal(err)
	}
	return moves
}

func TestRun_CatalogOpening(t *testing.T) {
	moves := mustMoves(t, "8,5", "confirm", "3,2")

	rep, err := Run(context.Background(), levels.All(), 0, moves)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rep.Result != Stable {
		t.Errorf("result = %v, want stable", rep.Result)
	}
	if rep.Level != 1 || rep.LevelName != "tether" {
		t.Errorf("level = %d %q", rep.Level, rep.LevelName)
	}
	if rep.TotalScore != 2*(session.StableBonus-1) {
		t.Errorf("total = %d", rep.TotalScore)
	}
	if len(rep.Steps) != 3 || len(rep.Passes) != 2 {
		t.Errorf("steps=%d passes=%d", len(rep.Steps), len(rep.Passes))
	}
	if rep.Steps[0].Outcome != placement.Placed || rep.Steps[1].Level != 1 {
		t.Errorf("steps = %+v", rep.Steps)
	}
	if got := rep.TotalScores(); !reflect.DeepEqual(got, []float64{99, 99, 198}) {
		t.Errorf("TotalScores() = %v", got)
	}
}

func TestRun_Collision(t *testing.T) {
	lr := body.GravityLeft | body.GravityRight
	defs := []level.Definition{{
		Name: "wreck",
		Grid: level.Size{W: 4, H: 1},
		Bodies: []level.BodyTemplate{
			{Gravity: lr, At: &body.Tile{X: 1, Y: 0}},
			{Gravity: lr},
		},
	}}

	rep, err := Run(context.Background(), defs, 0, mustMoves(t, "4,1", "1,1"))
	if err != nil {
		t.Fatal(err)
	}
	if rep.Result != Failed {
		t.Errorf("result = %v, want failed", rep.Result)
	}
	if rep.Collisions != 2 {
		t.Errorf("collisions = %d", rep.Collisions)
	}
	if rep.Steps[1].Outcome != placement.Terminal {
		t.Errorf("post-failure click = %v", rep.Steps[1].Outcome)
	}
	if got := rep.Displacement(); !reflect.DeepEqual(got, []float64{2}) {
		t.Errorf("Displacement() = %v", got)
	}
}

func TestRun_Finished(t *testing.T) {
	all := levels.All()
	last := len(all) - 1

	rep, err := Run(context.Background(), all[:1], 0, mustMoves(t, "1,1", "confirm"))
	if err != nil {
		t.Fatal(err)
	}
	if rep.Result != Finished {
		t.Errorf("result = %v, want finished", rep.Result)
	}

	rep, err = Run(context.Background(), all, 0, mustMoves(t, "last"))
	if err != nil {
		t.Fatal(err)
	}
	if rep.Level != last || rep.Result != Undecided {
		t.Errorf("level=%d result=%v", rep.Level, rep.Result)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, levels.All(), 0, mustMoves(t, "1,1"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRunScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opening.yaml")
	data := `name: opening
description: solve the first level twice
moves:
  - "1,1"
  - retry
  - "2,2"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	rep, err := RunScenario(context.Background(), levels.All(), sc)
	if err != nil {
		t.Fatalf("RunScenario: %v", err)
	}
	if rep.Scenario != "opening" || rep.Result != Stable || rep.Score != -1 {
		t.Errorf("report = %+v", rep)
	}

	sc.Moves = append(sc.Moves, "nowhere")
	if _, err := RunScenario(context.Background(), levels.All(), sc); !errors.Is(err, ErrBadMove) {
		t.Errorf("err = %v, want ErrBadMove", err)
	}
}

func TestChart(t *testing.T) {
	var empty Report
	if empty.Chart(5, 40) != "" {
		t.Error("empty report should not chart")
	}

	rep, err := Run(context.Background(), levels.All(), 0, mustMoves(t, "8,5"))
	if err != nil {
		t.Fatal(err)
	}
	if chart := rep.Chart(5, 40); !strings.Contains(chart, "tiles moved per pass") {
		t.Errorf("chart = %q", chart)
	}
}
