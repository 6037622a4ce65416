package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/termfolio/pixelsmash/internal/config"
	"github.com/termfolio/pixelsmash/internal/games/pixelsmash"
)

// Beeper is a pixelsmash.AudioSink that mixes cue tones into the speaker.
type Beeper struct {
	gain     float64
	duration time.Duration
	log      *log.Logger

	mu     sync.Mutex
	mixer  *beep.Mixer
	live   bool
	closed bool
}

var _ pixelsmash.AudioSink = (*Beeper)(nil)

// NewBeeper opens the speaker when cfg enables audio. If the speaker cannot
// be opened the Beeper stays silent and reports no error.
func NewBeeper(cfg config.Audio, logger *log.Logger) *Beeper {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	b := newBeeper(cfg, logger)
	if !cfg.Enabled {
		return b
	}

	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		logger.Warn("audio unavailable, running silent", "err", err)
		return b
	}
	speaker.Play(b.mixer)
	b.live = true
	return b
}

func newBeeper(cfg config.Audio, logger *log.Logger) *Beeper {
	d := time.Duration(cfg.ToneMS) * time.Millisecond
	if d <= 0 {
		d = 100 * time.Millisecond
	}
	return &Beeper{
		gain:     cfg.Gain,
		duration: d,
		log:      logger,
		mixer:    &beep.Mixer{},
	}
}

// Live reports whether tones reach the speaker.
func (b *Beeper) Live() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.live
}

// Tone returns the streamer played for a cue.
func (b *Beeper) Tone(cue pixelsmash.Cue) beep.Streamer {
	return NewTone(Frequency(cue), b.duration, b.gain, SampleRate)
}

// Play implements pixelsmash.AudioSink. It never blocks on the device.
func (b *Beeper) Play(cue pixelsmash.Cue) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.live || b.closed {
		return
	}

	speaker.Lock()
	b.mixer.Add(b.Tone(cue))
	speaker.Unlock()
}

// Close stops playback and releases the speaker.
func (b *Beeper) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	if !b.live {
		return
	}
	speaker.Clear()
	speaker.Close()
	b.live = false
}
