package pixelsmash

import "time"

// Cue is a symbolic sound event.
type Cue string

const (
	CueBounce   Cue = "bounce"
	CueBreak    Cue = "break"
	CuePowerUp  Cue = "powerup"
	CueLoseLife Cue = "lose_life"
	CuePause    Cue = "pause"
	CueStart    Cue = "start"
	CueLevelUp  Cue = "level_up"
)

// AudioSink receives cues as they happen. Play must not block and
// failures are the sink's own business.
type AudioSink interface {
	Play(cue Cue)
}

// NopAudio discards every cue.
type NopAudio struct{}

// Play implements AudioSink.
func (NopAudio) Play(Cue) {}

// Timer is a pending scheduled call.
type Timer interface {
	// Stop prevents the call from running. It reports whether the call
	// was still pending.
	Stop() bool
}

// Clock schedules deferred calls. f runs on a goroutine of the clock's
// choosing.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock schedules with the runtime timer.
type SystemClock struct{}

// AfterFunc implements Clock.
func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
