// Package audio plays PixelSmash cues as short oscillator tones through
// the system speaker. Without a usable audio device it stays silent.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/termfolio/pixelsmash/internal/games/pixelsmash"
)

// SampleRate is the output rate of every tone.
const SampleRate = beep.SampleRate(44100)

// fadeRatio is how far a tone's gain falls over its duration.
const fadeRatio = 0.1

// DefaultFrequency is used for cues without an assigned pitch.
const DefaultFrequency = 300.0

var frequencies = map[pixelsmash.Cue]float64{
	pixelsmash.CueBounce:   200,
	pixelsmash.CueBreak:    400,
	pixelsmash.CuePowerUp:  600,
	pixelsmash.CueLoseLife: 100,
	pixelsmash.CuePause:    150,
	pixelsmash.CueStart:    500,
	pixelsmash.CueLevelUp:  800,
}

// Frequency returns the pitch of a cue in Hz.
func Frequency(cue pixelsmash.Cue) float64 {
	if f, ok := frequencies[cue]; ok {
		return f
	}
	return DefaultFrequency
}

// tone is a sine wave whose gain falls exponentially from gain to
// gain*fadeRatio over its length.
type tone struct {
	freq     float64
	gain     float64
	phase    float64
	position int
	length   int
	rate     beep.SampleRate
}

// NewTone creates a fading sine tone.
func NewTone(freq float64, duration time.Duration, gain float64, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:   freq,
		gain:   gain,
		length: rate.N(duration),
		rate:   rate,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}

		progress := float64(t.position) / float64(t.length)
		vol := t.gain * math.Pow(fadeRatio, progress)
		val := math.Sin(2*math.Pi*t.phase) * vol

		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
