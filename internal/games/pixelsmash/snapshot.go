package pixelsmash

import "math"

// Snapshot is a flattened view of a match for determinism checks and
// debugging. Floats are stored as their IEEE-754 bits so equal states hash
// equally.
type Snapshot struct {
	Tick   uint64
	Mode   string
	Paused bool
	Score  int
	Lives  int
	Level  int

	PaddleX        float64
	PaddleWidth    float64
	PaddleVelocity float64

	// Each ball is 4 values: X, Y, VX, VY
	BallCount int
	BallData  []float64

	// Each power-up is 3 values: Kind, X, Y
	PowerUpCount int
	PowerUpData  []float64

	// Each brick is 3 values: X, Y, Tier
	BrickCount int
	BrickData  []float64
}

// Snapshot returns the current match as a Snapshot.
func (m *Manager) Snapshot() Snapshot {
	s := &m.state

	snap := Snapshot{
		Tick:         m.ticks,
		Mode:         s.Mode.String(),
		Paused:       s.Paused,
		Score:        s.Score,
		Lives:        s.Lives,
		Level:        s.Level,
		BallCount:    len(s.Balls),
		PowerUpCount: len(s.PowerUps),
		BrickCount:   len(s.Bricks),
	}
	if s.Paddle != nil {
		snap.PaddleX = s.Paddle.X
		snap.PaddleWidth = s.Paddle.W
		snap.PaddleVelocity = s.Paddle.Velocity
	}

	snap.BallData = make([]float64, 0, len(s.Balls)*4)
	for _, b := range s.Balls {
		snap.BallData = append(snap.BallData, b.X, b.Y, b.VX, b.VY)
	}

	snap.PowerUpData = make([]float64, 0, len(s.PowerUps)*3)
	for _, pu := range s.PowerUps {
		snap.PowerUpData = append(snap.PowerUpData, float64(pu.Kind), pu.X, pu.Y)
	}

	snap.BrickData = make([]float64, 0, len(s.Bricks)*3)
	for _, b := range s.Bricks {
		snap.BrickData = append(snap.BrickData, b.X, b.Y, float64(b.Tier))
	}

	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, c := range snap.Mode {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	if snap.Paused {
		h = h*31 + 1
	}
	h = h*31 + uint64(snap.Score)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BallCount)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PowerUpCount) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BrickCount)   //#nosec G115 -- hash computation

	h = h*31 + math.Float64bits(snap.PaddleX)
	h = h*31 + math.Float64bits(snap.PaddleWidth)
	h = h*31 + math.Float64bits(snap.PaddleVelocity)

	for _, v := range snap.BallData {
		h = h*31 + math.Float64bits(v)
	}
	for _, v := range snap.PowerUpData {
		h = h*31 + math.Float64bits(v)
	}
	for _, v := range snap.BrickData {
		h = h*31 + math.Float64bits(v)
	}

	return h
}
