package pixelsmash

import (
	"math"
	"testing"

	"github.com/termfolio/pixelsmash/internal/config"
)

const eps = 1e-9

func defaultPhysics() config.Physics {
	return config.DefaultGame().Physics
}

func newTestPaddle() *Paddle {
	return &Paddle{X: 250, Y: 410, W: 80, H: 12, Speed: 8, PrevX: 250}
}

func TestCheckBallPaddleCollision(t *testing.T) {
	paddle := newTestPaddle()

	tests := []struct {
		name     string
		ball     Ball
		expected bool
	}{
		{"resting on top, moving down", Ball{X: 285, Y: 400, R: 10, VY: 3}, true},
		{"moving up", Ball{X: 285, Y: 400, R: 10, VY: -3}, false},
		{"above paddle", Ball{X: 285, Y: 380, R: 10, VY: 3}, false},
		{"below paddle", Ball{X: 285, Y: 422, R: 10, VY: 3}, false},
		{"left of paddle", Ball{X: 200, Y: 405, R: 10, VY: 3}, false},
		{"touching left edge", Ball{X: 240, Y: 405, R: 10, VY: 3}, true},
		{"touching right edge", Ball{X: 330, Y: 405, R: 10, VY: 3}, true},
		{"stationary", Ball{X: 285, Y: 405, R: 10}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ball := tc.ball
			if got := CheckBallPaddleCollision(&ball, paddle); got != tc.expected {
				t.Errorf("CheckBallPaddleCollision() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

// angleFromVertical returns the bounce angle in degrees, positive to the right.
func angleFromVertical(b *Ball) float64 {
	return math.Atan2(b.VX, -b.VY) * 180 / math.Pi
}

func TestPaddleBounceBounds(t *testing.T) {
	phys := defaultPhysics()

	// Sweep hit positions, incoming velocities and paddle velocities,
	// including extreme English that tries to push past the angle limit.
	offsets := []float64{-60, -40, -20, -5, 0, 5, 20, 40, 60}
	incoming := [][2]float64{{0, 1}, {3, 5}, {-4, 2}, {7, 7}, {0.1, 0.1}, {12, 9}}
	paddleVel := []float64{-40, -8, -1, 0, 1, 8, 40}

	for _, off := range offsets {
		for _, v := range incoming {
			for _, pv := range paddleVel {
				paddle := newTestPaddle()
				paddle.Velocity = pv
				ball := Ball{X: paddle.CenterX() + off - 5, Y: 402, R: 10, VX: v[0], VY: v[1]}

				HandlePaddleBallCollision(&ball, paddle, phys)

				speed := ball.Speed()
				if speed < phys.MinSpeed-eps || speed > phys.MaxSpeed+eps {
					t.Errorf("off=%g v=%v pv=%g: speed %g outside [%g, %g]", off, v, pv, speed, phys.MinSpeed, phys.MaxSpeed)
				}
				if a := angleFromVertical(&ball); math.Abs(a) > phys.MaxBounceAngle+1e-6 {
					t.Errorf("off=%g v=%v pv=%g: angle %g exceeds %g", off, v, pv, a, phys.MaxBounceAngle)
				}
				if ball.VY > -phys.MinUpwardSpeed+eps {
					t.Errorf("off=%g v=%v pv=%g: VY=%g not upward enough", off, v, pv, ball.VY)
				}
				if ball.Y != paddle.Y-ball.R-1 {
					t.Errorf("ball not lifted above paddle: Y=%g", ball.Y)
				}
			}
		}
	}
}

func TestPaddleBounceCenterHit(t *testing.T) {
	paddle := newTestPaddle()
	// Ball center exactly on paddle center
	ball := Ball{X: paddle.CenterX() - 5, Y: 402, R: 10, VX: 3, VY: 5}

	HandlePaddleBallCollision(&ball, paddle, defaultPhysics())

	if math.Abs(ball.VX) > eps {
		t.Errorf("center hit with still paddle should go straight up, VX=%g", ball.VX)
	}
	if ball.VY > -2 {
		t.Errorf("VY=%g, expected <= -2", ball.VY)
	}
	if want := -math.Hypot(3, 5); math.Abs(ball.VY-want) > eps {
		t.Errorf("VY=%g, expected incoming speed %g to be kept", ball.VY, want)
	}
}

func TestPaddleBounceEnglish(t *testing.T) {
	paddle := newTestPaddle()
	paddle.Velocity = 8
	ball := Ball{X: paddle.CenterX() - 5, Y: 402, R: 10, VX: 0, VY: 5}

	HandlePaddleBallCollision(&ball, paddle, defaultPhysics())

	// 15% of paddle velocity
	if math.Abs(ball.VX-1.2) > eps {
		t.Errorf("VX=%g, expected paddle influence 1.2", ball.VX)
	}
}

func TestPaddleBounceEdges(t *testing.T) {
	paddle := newTestPaddle()

	left := Ball{X: paddle.X - 5, Y: 402, R: 10, VX: 2, VY: 4}
	HandlePaddleBallCollision(&left, paddle, defaultPhysics())
	if left.VX >= 0 {
		t.Errorf("left edge hit should send the ball left, VX=%g", left.VX)
	}

	right := Ball{X: paddle.X + paddle.W - 5, Y: 402, R: 10, VX: -2, VY: 4}
	HandlePaddleBallCollision(&right, paddle, defaultPhysics())
	if right.VX <= 0 {
		t.Errorf("right edge hit should send the ball right, VX=%g", right.VX)
	}
	if a := angleFromVertical(&right); math.Abs(a-60) > 1e-6 {
		t.Errorf("edge hit angle = %g, expected 60", a)
	}
}

func TestCheckBallBrickCollision(t *testing.T) {
	brick := &Brick{X: 10, Y: 40, W: 55, H: 18}

	tests := []struct {
		name     string
		ball     Ball
		expected bool
	}{
		{"inside", Ball{X: 30, Y: 45, R: 10}, true},
		{"below", Ball{X: 30, Y: 58, R: 10}, false},
		{"just overlapping bottom", Ball{X: 30, Y: 57.5, R: 10}, true},
		{"left of brick", Ball{X: 0, Y: 45, R: 10}, false},
		{"corner overlap", Ball{X: 60, Y: 55, R: 10}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ball := tc.ball
			if got := CheckBallBrickCollision(&ball, brick); got != tc.expected {
				t.Errorf("CheckBallBrickCollision() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestHandleBrickCollisionFaces(t *testing.T) {
	brick := &Brick{X: 100, Y: 100, W: 55, H: 18}
	centerX := brick.X + brick.W/2
	centerY := brick.Y + brick.H/2

	tests := []struct {
		name   string
		ball   Ball
		face   Face
		wantVX float64
		wantVY float64
	}{
		{
			name:   "from below, dead center horizontally",
			ball:   Ball{X: centerX - 5, Y: brick.Y + brick.H - 4, R: 10, VX: 2, VY: -5},
			face:   FaceVertical,
			wantVX: 2,
			wantVY: 5,
		},
		{
			name:   "from above, dead center horizontally",
			ball:   Ball{X: centerX - 5, Y: brick.Y - 6, R: 10, VX: -3, VY: 4},
			face:   FaceVertical,
			wantVX: -3,
			wantVY: -4,
		},
		{
			name:   "from the left, dead center vertically",
			ball:   Ball{X: brick.X - 6, Y: centerY - 5, R: 10, VX: 4, VY: 1},
			face:   FaceHorizontal,
			wantVX: -4,
			wantVY: 1,
		},
		{
			name:   "from the right, dead center vertically",
			ball:   Ball{X: brick.X + brick.W - 4, Y: centerY - 5, R: 10, VX: -4, VY: -2},
			face:   FaceHorizontal,
			wantVX: 4,
			wantVY: -2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ball := tc.ball
			if !CheckBallBrickCollision(&ball, brick) {
				t.Fatal("test ball does not overlap the brick")
			}
			if got := HandleBrickCollision(&ball, brick); got != tc.face {
				t.Errorf("face = %v, expected %v", got, tc.face)
			}
			if ball.VX != tc.wantVX || ball.VY != tc.wantVY {
				t.Errorf("velocity = (%g, %g), expected (%g, %g)", ball.VX, ball.VY, tc.wantVX, tc.wantVY)
			}
		})
	}
}

func TestReflectWalls(t *testing.T) {
	tests := []struct {
		name    string
		ball    Ball
		bounced bool
		wantVX  float64
		wantVY  float64
	}{
		{"left wall", Ball{X: -2, Y: 100, R: 10, VX: -3, VY: 2}, true, 3, 2},
		{"right wall", Ball{X: 575, Y: 100, R: 10, VX: 3, VY: 2}, true, -3, 2},
		{"ceiling", Ball{X: 100, Y: -1, R: 10, VX: 1, VY: -4}, true, 1, 4},
		{"open space", Ball{X: 100, Y: 100, R: 10, VX: 1, VY: -4}, false, 1, -4},
		{"overshot but already leaving", Ball{X: -1, Y: 100, R: 10, VX: 3, VY: 1}, true, 3, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ball := tc.ball
			if got := reflectWalls(&ball, 580); got != tc.bounced {
				t.Errorf("bounced = %v, expected %v", got, tc.bounced)
			}
			if ball.VX != tc.wantVX || ball.VY != tc.wantVY {
				t.Errorf("velocity = (%g, %g), expected (%g, %g)", ball.VX, ball.VY, tc.wantVX, tc.wantVY)
			}
			if ball.X < 0 || ball.X > 580-ball.R || ball.Y < 0 {
				t.Errorf("ball left the play area: (%g, %g)", ball.X, ball.Y)
			}
		})
	}
}
