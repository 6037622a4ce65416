package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/termfolio/pixelsmash/internal/config"
	"github.com/termfolio/pixelsmash/internal/games/pixelsmash"
)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestFrequency(t *testing.T) {
	tests := []struct {
		cue  pixelsmash.Cue
		want float64
	}{
		{pixelsmash.CueBounce, 200},
		{pixelsmash.CueBreak, 400},
		{pixelsmash.CuePowerUp, 600},
		{pixelsmash.CueLoseLife, 100},
		{pixelsmash.CuePause, 150},
		{pixelsmash.CueStart, 500},
		{pixelsmash.CueLevelUp, 800},
		{pixelsmash.Cue("unknown"), DefaultFrequency},
	}

	for _, tt := range tests {
		t.Run(string(tt.cue), func(t *testing.T) {
			if got := Frequency(tt.cue); got != tt.want {
				t.Errorf("Frequency(%s) = %g, expected %g", tt.cue, got, tt.want)
			}
		})
	}
}

func TestToneLength(t *testing.T) {
	samples := drain(t, NewTone(400, 100*time.Millisecond, 0.1, SampleRate))

	if want := SampleRate.N(100 * time.Millisecond); len(samples) != want {
		t.Errorf("tone has %d samples, expected %d", len(samples), want)
	}
}

func TestToneGainFades(t *testing.T) {
	samples := drain(t, NewTone(200, 100*time.Millisecond, 0.1, SampleRate))

	peak := func(from, to int) float64 {
		p := 0.0
		for _, s := range samples[from:to] {
			p = math.Max(p, math.Abs(s[0]))
		}
		return p
	}

	n := len(samples)
	window := n / 10
	head := peak(0, window)
	tail := peak(n-window, n)

	if head > 0.1+1e-9 {
		t.Errorf("peak gain %g exceeds the start gain", head)
	}
	if head < 0.07 {
		t.Errorf("start of tone too quiet: %g", head)
	}
	if tail > 0.02 {
		t.Errorf("end of tone still loud: %g", tail)
	}
	for i, s := range samples {
		if s[0] != s[1] {
			t.Fatalf("sample %d is not mono: %v", i, s)
		}
	}
}

func TestToneExhausted(t *testing.T) {
	s := NewTone(300, time.Millisecond, 0.1, SampleRate)
	drain(t, s)

	n, ok := s.Stream(make([][2]float64, 16))
	if n != 0 || ok {
		t.Errorf("exhausted tone streamed (%d, %v)", n, ok)
	}
	if s.Err() != nil {
		t.Errorf("unexpected error: %v", s.Err())
	}
}

func TestBeeperTone(t *testing.T) {
	b := newBeeper(config.Audio{Enabled: true, Gain: 0.1, ToneMS: 50}, nil)

	samples := drain(t, b.Tone(pixelsmash.CueBreak))
	if want := SampleRate.N(50 * time.Millisecond); len(samples) != want {
		t.Errorf("cue tone has %d samples, expected %d", len(samples), want)
	}
}

func TestBeeperDisabledIsSilent(t *testing.T) {
	b := NewBeeper(config.Audio{Enabled: false, Gain: 0.1, ToneMS: 100}, nil)
	if b.Live() {
		t.Fatal("disabled beeper should not open the speaker")
	}

	// Playing and closing a silent beeper is harmless
	b.Play(pixelsmash.CueBounce)
	b.Close()
	b.Close()
	b.Play(pixelsmash.CueBounce)
}
