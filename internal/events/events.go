// Package events carries fire-and-forget notifications from the game
// core to collaborators such as audio.
package events

type Signal int

const (
	PlaceSuccess Signal = iota
	PlaceDeny
	RemoveSuccess
	RemoveDeny
	Collision
	Stable
	LevelStarted
	HoverChanged
)

var signalNames = [...]string{
	PlaceSuccess:  "place",
	PlaceDeny:     "place-deny",
	RemoveSuccess: "remove",
	RemoveDeny:    "remove-deny",
	Collision:     "collision",
	Stable:        "stable",
	LevelStarted:  "level-started",
	HoverChanged:  "hover",
}

func (s Signal) String() string {
	if s >= 0 && int(s) < len(signalNames) {
		return signalNames[s]
	}
	return "unknown"
}

// Sink consumes signals. Emit must not call back into the core.
type Sink interface {
	Emit(Signal)
}

type SinkFunc func(Signal)

func (f SinkFunc) Emit(s Signal) { f(s) }

// Discard drops every signal.
var Discard Sink = SinkFunc(func(Signal) {})

// Fanout forwards each signal to every sink in order.
type Fanout []Sink

func (f Fanout) Emit(s Signal) {
	for _, sink := range f {
		if sink != nil {
			sink.Emit(s)
		}
	}
}

// Recorder keeps every signal it receives.
type Recorder struct {
	Signals []Signal
}

func (r *Recorder) Emit(s Signal) { r.Signals = append(r.Signals, s) }

func (r *Recorder) Count(s Signal) int {
	n := 0
	for _, got := range r.Signals {
		if got == s {
			n++
		}
	}
	return n
}

func (r *Recorder) Last() (Signal, bool) {
	if len(r.Signals) == 0 {
		return 0, false
	}
	return r.Signals[len(r.Signals)-1], true
}

func (r *Recorder) Reset() { r.Signals = r.Signals[:0] }
