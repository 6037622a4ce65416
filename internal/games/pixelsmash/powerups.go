package pixelsmash

import (
	"math"
	"math/rand/v2"

	"github.com/termfolio/pixelsmash/internal/config"
	"github.com/termfolio/pixelsmash/internal/core"
)

// PowerUpKind represents the effect of a power-up.
type PowerUpKind int

const (
	PowerUpExtend PowerUpKind = iota // Widen the paddle
	PowerUpSlow                      // Slow every ball in play
	PowerUpMulti                     // Split the first ball into three
)

// PowerUpKinds lists the kinds a dispenser brick drops, uniformly.
var PowerUpKinds = []PowerUpKind{PowerUpExtend, PowerUpSlow, PowerUpMulti}

// String returns the name of the power-up kind.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpExtend:
		return "EXTEND"
	case PowerUpSlow:
		return "SLOW"
	case PowerUpMulti:
		return "MULTI"
	default:
		return "?"
	}
}

// Glyph returns the display character for a power-up kind.
func (k PowerUpKind) Glyph() rune {
	switch k {
	case PowerUpExtend:
		return 'E'
	case PowerUpSlow:
		return 'S'
	case PowerUpMulti:
		return 'M'
	default:
		return '?'
	}
}

// Color returns the display color for a power-up kind.
func (k PowerUpKind) Color() core.RGB {
	switch k {
	case PowerUpExtend:
		return core.ColorGreen
	case PowerUpSlow:
		return core.ColorCyan
	case PowerUpMulti:
		return core.ColorMagenta
	default:
		return core.ColorWhite
	}
}

// PowerUp is a falling power-up. X, Y is its center.
type PowerUp struct {
	X, Y  float64
	Kind  PowerUpKind
	Glyph rune
	Color core.RGB
	VY    float64 // Fall speed (positive = down)
}

// newPowerUp creates a power-up of a random kind at (x, y).
func newPowerUp(x, y float64, rng *rand.Rand, fallSpeed float64) PowerUp {
	kind := PowerUpKinds[rng.IntN(len(PowerUpKinds))]
	return PowerUp{
		X:     x,
		Y:     y,
		Kind:  kind,
		Glyph: kind.Glyph(),
		Color: kind.Color(),
		VY:    fallSpeed,
	}
}

// caughtBy reports whether the power-up has reached the paddle's top edge
// within its horizontal span.
func (p *PowerUp) caughtBy(paddle *Paddle) bool {
	return p.Y > paddle.Y && p.X > paddle.X && p.X < paddle.X+paddle.W
}

// applyPowerUp applies a power-up's effect once, at pickup time.
func applyPowerUp(s *GameState, kind PowerUpKind, cfg config.PowerUps, maxWidth float64) {
	switch kind {
	case PowerUpExtend:
		s.Paddle.W = math.Min(s.Paddle.W+cfg.ExtendBy, maxWidth)

	case PowerUpSlow:
		for i := range s.Balls {
			s.Balls[i].VX *= cfg.SlowFactor
			s.Balls[i].VY *= cfg.SlowFactor
		}

	case PowerUpMulti:
		if len(s.Balls) == 0 {
			return
		}
		src := s.Balls[0]
		s.Balls = append(s.Balls,
			Ball{X: src.X, Y: src.Y, R: src.R, VX: -src.VX, VY: src.VY},
			Ball{X: src.X, Y: src.Y, R: src.R, VX: src.VX, VY: -src.VY},
		)
	}
}
