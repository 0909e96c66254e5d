package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/san-kum/gravgrid/internal/events"
)

type note struct {
	freq float64
	dur  time.Duration
	gain float64
}

const (
	attack  = 5 * time.Millisecond
	release = 25 * time.Millisecond
)

var cues = map[events.Signal][]note{
	events.PlaceSuccess:  {{660, 60 * time.Millisecond, 0.8}},
	events.PlaceDeny:     {{180, 100 * time.Millisecond, 0.6}},
	events.RemoveSuccess: {{520, 50 * time.Millisecond, 0.7}, {390, 60 * time.Millisecond, 0.7}},
	events.RemoveDeny:    {{120, 100 * time.Millisecond, 0.6}},
	events.Collision: {
		{220, 120 * time.Millisecond, 1},
		{165, 120 * time.Millisecond, 1},
		{110, 200 * time.Millisecond, 1},
	},
	events.Stable: {
		{523.25, 100 * time.Millisecond, 0.8},
		{659.25, 100 * time.Millisecond, 0.8},
		{783.99, 100 * time.Millisecond, 0.8},
		{1046.5, 220 * time.Millisecond, 0.8},
	},
	events.LevelStarted: {{392, 80 * time.Millisecond, 0.6}, {523.25, 80 * time.Millisecond, 0.6}},
	events.HoverChanged: {{1200, 15 * time.Millisecond, 0.15}},
}

// Cue synthesises the sound for sig. It returns nil for signals
// without a cue.
func Cue(sig events.Signal, sr beep.SampleRate, volume float64) beep.Streamer {
	notes, ok := cues[sig]
	if !ok {
		return nil
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sr, n.freq)
		if err != nil {
			// above Nyquist for this sample rate
			continue
		}
		shaped := newEnvelope(beep.Take(sr.N(n.dur), tone), n.dur, sr)
		parts = append(parts, withVolume(shaped, n.gain))
	}
	if len(parts) == 0 {
		return nil
	}
	return withVolume(beep.Seq(parts...), volume)
}

// CueLength is the total duration of sig's cue.
func CueLength(sig events.Signal) time.Duration {
	var d time.Duration
	for _, n := range cues[sig] {
		d += n.dur
	}
	return d
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// envelope ramps a note in and out to avoid clicks.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, dur time.Duration, sr beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   sr.N(attack),
		release:  sr.N(release),
		total:    sr.N(dur),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
