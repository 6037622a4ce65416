package pixelsmash

import (
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/termfolio/pixelsmash/internal/config"
	"github.com/termfolio/pixelsmash/internal/core"
)

// Input is the continuous input sampled once per tick.
type Input struct {
	Left  bool
	Right bool
}

// InputFromFrame extracts the held directions from an input frame.
func InputFromFrame(f core.InputFrame) Input {
	return Input{
		Left:  f.Has(core.ActionLeft),
		Right: f.Has(core.ActionRight),
	}
}

// Deps are the capabilities a Manager uses for side effects.
// Nil fields get defaults: a PCG source seeded from the runtime seed,
// silent audio, the system clock and a discarding logger.
type Deps struct {
	Rand   *rand.Rand
	Audio  AudioSink
	Clock  Clock
	Logger *log.Logger
}

// NewRand returns the PCG source used for a seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Manager owns one match and advances it a tick at a time.
//
// Tick, Render, State and the accessors must be called from a single
// goroutine (the render loop). Send and Close may be called from any
// goroutine.
type Manager struct {
	cfg   config.Game
	rng   *rand.Rand
	audio AudioSink
	clock Clock
	log   *log.Logger

	mu     sync.Mutex // guards the fields below
	queue  []queuedIntent
	epoch  uint64
	timer  Timer
	closed bool

	state         GameState
	matchID       string
	ticks         uint64
	onGameOver    func(score, level int)
	gameOverFired bool
}

// NewManager creates a match on the title screen.
func NewManager(cfg config.Game, rt core.RuntimeConfig, deps Deps) *Manager {
	if deps.Rand == nil {
		deps.Rand = NewRand(rt.Seed)
	}
	if deps.Audio == nil {
		deps.Audio = NopAudio{}
	}
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}

	m := &Manager{
		cfg:   cfg,
		rng:   deps.Rand,
		audio: deps.Audio,
		clock: deps.Clock,
		log:   deps.Logger,
	}
	m.resetState()
	return m
}

// OnGameOver registers a hook called once per match, from Tick, when the
// match enters game over.
func (m *Manager) OnGameOver(fn func(score, level int)) {
	m.onGameOver = fn
}

// Config returns the configuration the match runs with.
func (m *Manager) Config() config.Game {
	return m.cfg
}

// MatchID identifies the current match. It changes on every launch.
func (m *Manager) MatchID() string {
	return m.matchID
}

// Mode returns the current state machine mode.
func (m *Manager) Mode() Mode {
	return m.state.Mode
}

// State returns a copy of the match state.
func (m *Manager) State() GameState {
	return m.state.Clone()
}

// Close stops the match. Pending deferred work is cancelled and later
// ticks and intents are ignored.
func (m *Manager) Close() {
	m.cancelDeferred()
	m.mu.Lock()
	m.closed = true
	m.queue = nil
	m.mu.Unlock()
	m.log.Debug("match closed")
}

// Tick applies queued intents, then advances the simulation one step if a
// match is running and not paused.
func (m *Manager) Tick(in Input) {
	intents, closed := m.drain()
	if closed {
		return
	}
	for _, qi := range intents {
		m.apply(qi)
	}

	if m.state.Mode != ModePlaying || m.state.Paused {
		return
	}
	m.ticks++
	m.update(in)
}

func (m *Manager) apply(qi queuedIntent) {
	s := &m.state
	switch qi.intent {
	case IntentLaunch:
		if s.Mode != ModeStart {
			return
		}
		m.audio.Play(CueStart)
		m.cancelDeferred()
		m.matchID = uuid.NewString()
		s.Mode = ModePlaying
		s.Paused = false
		m.initializeBoard()
		m.startBallMovement()

	case IntentTogglePause:
		if s.Mode != ModePlaying {
			return
		}
		s.Paused = !s.Paused
		m.audio.Play(CuePause)
		m.log.Debug("pause toggled", "match", m.matchID, "paused", s.Paused)

	case IntentRestart:
		if s.Mode != ModeGameOver {
			return
		}
		m.cancelDeferred()
		m.resetState()
		m.log.Debug("match reset")

	case intentStartBalls:
		if qi.epoch != m.currentEpoch() || s.Mode != ModePlaying {
			m.log.Debug("stale ball start dropped", "epoch", qi.epoch)
			return
		}
		m.startBallMovement()
	}
}

// resetState puts the match back on the title screen.
func (m *Manager) resetState() {
	m.state = GameState{
		Mode:  ModeStart,
		Lives: m.cfg.Gameplay.Lives,
		Level: 1,
	}
	m.ticks = 0
	m.gameOverFired = false
}

// initializeBoard places the paddle, a resting ball and the bricks of the
// current level.
func (m *Manager) initializeBoard() {
	c := m.cfg
	s := &m.state

	x := c.Canvas.Width/2 - c.Paddle.Width/2
	s.Paddle = &Paddle{
		X:     x,
		Y:     c.Canvas.Height - c.Paddle.BottomOffset,
		W:     c.Paddle.Width,
		H:     c.Paddle.Height,
		Speed: c.Paddle.Speed,
		PrevX: x,
	}
	s.Balls = []Ball{{X: c.Canvas.Width / 2, Y: c.Canvas.Height / 2, R: c.Ball.Size}}
	s.PowerUps = nil
	s.Bricks = BuildBricks(LayoutForLevel(s.Level, m.rng, c), c.Bricks)

	m.log.Debug("board ready", "match", m.matchID, "level", s.Level, "bricks", len(s.Bricks))
}

// startBallMovement gives the first ball its launch velocity.
func (m *Manager) startBallMovement() {
	if len(m.state.Balls) == 0 {
		return
	}
	b := &m.state.Balls[0]
	b.VX = m.uniform(m.cfg.Ball.LaunchVX)
	b.VY = m.cfg.Ball.LaunchVY
	m.log.Debug("ball launched", "match", m.matchID, "vx", b.VX, "vy", b.VY)
}

// uniform returns a value in [-r, r).
func (m *Manager) uniform(r float64) float64 {
	return (m.rng.Float64()*2 - 1) * r
}

// update runs one simulation step.
func (m *Manager) update(in Input) {
	m.updatePaddleVelocity()
	m.updatePowerUps()
	if m.updateBalls() {
		return
	}
	m.cullBalls()
	if m.state.Mode != ModePlaying {
		return
	}
	m.movePaddle(in)
}

// updatePaddleVelocity derives velocity from the last movement. Without
// movement the previous velocity decays, so a flick still carries into
// the next few bounces.
func (m *Manager) updatePaddleVelocity() {
	p := m.state.Paddle
	if delta := p.X - p.PrevX; delta != 0 {
		p.Velocity = delta
	} else {
		p.Velocity *= m.cfg.Paddle.VelocityDecay
	}
	p.PrevX = p.X
}

func (m *Manager) updatePowerUps() {
	s := &m.state
	kept := s.PowerUps[:0]
	for _, pu := range s.PowerUps {
		pu.Y += pu.VY
		switch {
		case pu.caughtBy(s.Paddle):
			applyPowerUp(s, pu.Kind, m.cfg.PowerUps, m.cfg.Paddle.MaxWidth)
			m.audio.Play(CuePowerUp)
			m.log.Debug("power-up caught", "match", m.matchID, "kind", pu.Kind, "balls", len(s.Balls))
		case pu.Y > m.cfg.Canvas.Height:
		default:
			kept = append(kept, pu)
		}
	}
	s.PowerUps = kept
}

// updateBalls moves every ball and resolves collisions. It reports whether
// the board was cleared, in which case the rest of the tick is skipped.
func (m *Manager) updateBalls() bool {
	s := &m.state
	for i := range s.Balls {
		b := &s.Balls[i]
		b.X += b.VX
		b.Y += b.VY

		if reflectWalls(b, m.cfg.Canvas.Width) {
			m.audio.Play(CueBounce)
		}

		if CheckBallPaddleCollision(b, s.Paddle) {
			HandlePaddleBallCollision(b, s.Paddle, m.cfg.Physics)
			m.audio.Play(CueBounce)
			m.log.Debug("paddle bounce", "match", m.matchID, "vx", b.VX, "vy", b.VY, "paddle_v", s.Paddle.Velocity)
		}

		for j := range s.Bricks {
			brick := s.Bricks[j]
			if !CheckBallBrickCollision(b, &brick) {
				continue
			}
			HandleBrickCollision(b, &brick)
			if brick.PowerUp {
				s.PowerUps = append(s.PowerUps,
					newPowerUp(brick.X+brick.W/2, brick.Y+brick.H/2, m.rng, m.cfg.PowerUps.FallSpeed))
			}
			s.Bricks = append(s.Bricks[:j], s.Bricks[j+1:]...)
			s.Score += m.cfg.Bricks.Points
			m.audio.Play(CueBreak)

			if len(s.Bricks) == 0 {
				m.levelClear()
				return true
			}
			break
		}
	}
	return false
}

// levelClear moves to the next level. Balls stay at rest until the start
// delay elapses so the new board is visible first.
func (m *Manager) levelClear() {
	s := &m.state
	s.Level++
	m.audio.Play(CueLevelUp)
	m.log.Debug("level cleared", "match", m.matchID, "level", s.Level, "score", s.Score)

	m.initializeBoard()

	epoch := m.cancelDeferred()
	delay := time.Duration(m.cfg.Gameplay.StartDelayMS) * time.Millisecond
	t := m.clock.AfterFunc(delay, func() {
		m.post(intentStartBalls, epoch)
	})

	m.mu.Lock()
	if m.epoch == epoch && !m.closed {
		m.timer = t
	} else {
		t.Stop()
	}
	m.mu.Unlock()
}

// cullBalls removes balls below the play area and handles a lost life.
func (m *Manager) cullBalls() {
	s := &m.state
	kept := s.Balls[:0]
	for _, b := range s.Balls {
		if b.Y <= m.cfg.Canvas.Height {
			kept = append(kept, b)
		}
	}
	lost := len(s.Balls) > 0 && len(kept) == 0
	s.Balls = kept
	if !lost {
		return
	}

	s.Lives--
	m.audio.Play(CueLoseLife)
	m.log.Debug("life lost", "match", m.matchID, "lives", s.Lives)

	if s.Lives > 0 {
		c := m.cfg
		s.Balls = append(s.Balls, Ball{
			X:  c.Canvas.Width / 2,
			Y:  c.Canvas.Height / 2,
			R:  c.Ball.Size,
			VX: m.uniform(c.Ball.LaunchVX),
			VY: c.Ball.RespawnVY,
		})
		return
	}
	m.enterGameOver()
}

func (m *Manager) enterGameOver() {
	s := &m.state
	s.Mode = ModeGameOver
	s.Paused = false
	m.log.Debug("game over", "match", m.matchID, "score", s.Score, "level", s.Level)
	if m.gameOverFired {
		return
	}
	m.gameOverFired = true
	if m.onGameOver != nil {
		m.onGameOver(s.Score, s.Level)
	}
}

// movePaddle applies held directions and keeps the paddle on the canvas.
func (m *Manager) movePaddle(in Input) {
	p := m.state.Paddle
	if in.Left {
		p.X -= p.Speed
	}
	if in.Right {
		p.X += p.Speed
	}
	p.X = core.ClampF(p.X, 0, m.cfg.Canvas.Width-p.W)
}
