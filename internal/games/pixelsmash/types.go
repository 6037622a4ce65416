// Package pixelsmash implements the PixelSmash brick breaker simulation:
// entities, collision physics, level generation, power-ups and the match
// state machine. It performs no I/O; audio, timers and randomness are
// injected, and rendering targets a core.Screen.
package pixelsmash

import (
	"math"

	"github.com/termfolio/pixelsmash/internal/core"
)

// Mode is the coarse state of a match.
type Mode int

const (
	ModeStart    Mode = iota // Title screen, waiting for launch
	ModePlaying              // Simulation active (may be paused)
	ModeGameOver             // No lives left, waiting for restart
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeStart:
		return "start"
	case ModePlaying:
		return "playing"
	case ModeGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// Paddle is the player's paddle. X, Y is the top-left corner.
type Paddle struct {
	X, Y     float64
	W, H     float64
	Speed    float64
	PrevX    float64 // X at the previous tick, for velocity derivation
	Velocity float64 // Horizontal units per tick
}

// Rect returns the paddle's bounding box.
func (p *Paddle) Rect() core.RectF {
	return core.RectF{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// CenterX returns the horizontal center of the paddle.
func (p *Paddle) CenterX() float64 {
	return p.X + p.W/2
}

// Ball is a square ball of side R whose top-left corner is X, Y.
type Ball struct {
	X, Y   float64
	R      float64
	VX, VY float64
}

// Rect returns the ball's bounding box.
func (b *Ball) Rect() core.RectF {
	return core.RectF{X: b.X, Y: b.Y, W: b.R, H: b.R}
}

// CenterX returns the horizontal center of the ball.
func (b *Ball) CenterX() float64 {
	return b.X + b.R/2
}

// CenterY returns the vertical center of the ball.
func (b *Ball) CenterY() float64 {
	return b.Y + b.R/2
}

// Speed returns the magnitude of the velocity vector.
func (b *Ball) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// BrickTier is the color class of a brick, as written in a layout.
type BrickTier byte

const (
	TierBlank BrickTier = ' '
	Tier1     BrickTier = '1'
	Tier2     BrickTier = '2'
	Tier3     BrickTier = '3'
	Tier4     BrickTier = '4'
	TierPower BrickTier = 'P'
)

// OrdinaryTiers are the tiers a generated non-power cell is drawn from.
var OrdinaryTiers = []BrickTier{Tier1, Tier2, Tier3, Tier4}

// Color returns the display color of the tier.
func (t BrickTier) Color() core.RGB {
	switch t {
	case Tier1:
		return core.ColorMagenta
	case Tier2:
		return core.ColorCyan
	case Tier3:
		return core.ColorYellow
	case Tier4:
		return core.ColorOrange
	case TierPower:
		return core.ColorWhite
	default:
		return core.ColorGray
	}
}

// Brick is one destructible brick. Bricks never change after creation;
// a hit removes them from the board.
type Brick struct {
	X, Y    float64
	W, H    float64
	Tier    BrickTier
	PowerUp bool // Drops a power-up when destroyed
}

// Rect returns the brick's bounding box.
func (b *Brick) Rect() core.RectF {
	return core.RectF{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Color returns the display color of the brick.
func (b *Brick) Color() core.RGB {
	return b.Tier.Color()
}

// GameState is the mutable root of a match.
type GameState struct {
	Mode     Mode
	Score    int
	Lives    int
	Level    int
	Paddle   *Paddle // nil until the board is initialized
	Balls    []Ball
	Bricks   []Brick
	PowerUps []PowerUp
	Paused   bool
}

// Clone returns a deep copy that shares no slices with s.
func (s *GameState) Clone() GameState {
	c := *s
	if s.Paddle != nil {
		p := *s.Paddle
		c.Paddle = &p
	}
	c.Balls = append([]Ball(nil), s.Balls...)
	c.Bricks = append([]Brick(nil), s.Bricks...)
	c.PowerUps = append([]PowerUp(nil), s.PowerUps...)
	return c
}
