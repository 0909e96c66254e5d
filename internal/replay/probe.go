package replay

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/san-kum/gravgrid/internal/body"
	"github.com/san-kum/gravgrid/internal/level"
	"github.com/san-kum/gravgrid/internal/session"
)

var ErrBadProbe = errors.New("replay: invalid probe config")

// ProbeConfig defines a Monte Carlo run of random clicks on one level.
type ProbeConfig struct {
	Trials    int
	MaxClicks int
	Seed      int64
}

func (c ProbeConfig) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("trials %d must be positive: %w", c.Trials, ErrBadProbe)
	}
	if c.MaxClicks < 0 {
		return fmt.Errorf("max clicks %d is negative: %w", c.MaxClicks, ErrBadProbe)
	}
	return nil
}

type Trial struct {
	ID     int
	Seed   int64
	Clicks int
	Result Result
	Score  int
}

// Probe plays cfg.Trials independent random games on def, one goroutine
// per trial. Trial i is seeded with cfg.Seed+i, so a fixed seed gives
// repeatable results.
func Probe(ctx context.Context, def level.Definition, cfg ProbeConfig) ([]Trial, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	trials := make([]Trial, cfg.Trials)
	errs := make([]error, cfg.Trials)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Trials; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			trials[idx], errs[idx] = runTrial(ctx, def, idx, seed+int64(idx), cfg.MaxClicks)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return trials, nil
}

func runTrial(ctx context.Context, def level.Definition, id int, seed int64, maxClicks int) (Trial, error) {
	s, err := session.New([]level.Definition{def})
	if err != nil {
		return Trial{}, err
	}
	s.EnterLevel(0)

	rng := rand.New(rand.NewSource(seed))
	t := Trial{ID: id, Seed: seed}
	l := s.Active()

	for t.Clicks < maxClicks && !l.Terminal() {
		if err := ctx.Err(); err != nil {
			return t, err
		}
		tile := body.Tile{X: rng.Intn(l.Grid.W), Y: rng.Intn(l.Grid.H)}
		click(s, Move{Kind: MoveClick, Tile: tile})
		t.Clicks++
	}

	t.Result = resultOf(s, l)
	t.Score = l.Score
	return t, nil
}

// ProbeStats counts trials per result.
func ProbeStats(trials []Trial) (stable, failed, undecided int) {
	for _, t := range trials {
		switch t.Result {
		case Stable:
			stable++
		case Failed:
			failed++
		default:
			undecided++
		}
	}
	return
}
