// Package audio plays a short synthesised cue for each game signal.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/san-kum/gravgrid/internal/config"
	"github.com/san-kum/gravgrid/internal/events"
)

// Player is an events.Sink. Signals emitted before Start, or after
// Stop, are dropped.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	rate    beep.SampleRate
	volume  float64
	enabled bool
	active  bool
	log     zerolog.Logger
}

func NewPlayer(cfg config.AudioConfig, log zerolog.Logger) *Player {
	return &Player{
		mixer:   &beep.Mixer{},
		rate:    beep.SampleRate(cfg.SampleRate),
		volume:  cfg.Volume,
		enabled: cfg.Enabled,
		log:     log,
	}
}

// Start opens the speaker. It is a no-op when audio is disabled.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.active {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.active = true
	p.log.Debug().Int("sample_rate", int(p.rate)).Msg("audio started")
	return nil
}

func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.active {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.mixer.Clear()
	p.active = false
}

func (p *Player) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

func (p *Player) Emit(sig events.Signal) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.active {
		return
	}
	s := Cue(sig, p.rate, p.volume)
	if s == nil {
		return
	}
	// the mixer is read on the speaker goroutine
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

var _ events.Sink = (*Player)(nil)
