package pixelsmash

import (
	"math"

	"github.com/termfolio/pixelsmash/internal/config"
	"github.com/termfolio/pixelsmash/internal/core"
)

// Face is the side class of a brick hit.
type Face int

const (
	FaceHorizontal Face = iota // Left or right side: VX is inverted
	FaceVertical               // Top or bottom side: VY is inverted
)

// String returns the face name.
func (f Face) String() string {
	if f == FaceHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// CheckBallPaddleCollision reports whether a downward-moving ball touches the
// paddle. Upward-moving balls never collide, so a ball that was just bounced
// is not resolved twice.
func CheckBallPaddleCollision(ball *Ball, paddle *Paddle) bool {
	return ball.Y+ball.R >= paddle.Y &&
		ball.Y < paddle.Y+paddle.H &&
		ball.X+ball.R >= paddle.X &&
		ball.X <= paddle.X+paddle.W &&
		ball.VY > 0
}

// HandlePaddleBallCollision bounces the ball off the paddle.
//
// The hit offset from the paddle center, normalized to [-1, 1], picks an
// angle of up to MaxBounceAngle from vertical. The ball keeps its speed
// (at least MinSpeed), gains PaddleInfluence of the paddle velocity
// horizontally, and is then brought back inside the angle limit and the
// [MinSpeed, MaxSpeed] band. The ball always leaves moving up by at least
// MinUpwardSpeed and is placed just above the paddle.
func HandlePaddleBallCollision(ball *Ball, paddle *Paddle, phys config.Physics) {
	rel := 0.0
	if paddle.W > 0 {
		rel = core.ClampF((ball.CenterX()-paddle.CenterX())/(paddle.W/2), -1, 1)
	}

	maxAngle := phys.MaxBounceAngle * math.Pi / 180
	angle := rel * maxAngle
	speed := math.Max(ball.Speed(), phys.MinSpeed)

	vx := math.Sin(angle)*speed + paddle.Velocity*phys.PaddleInfluence
	vy := -math.Cos(angle) * speed

	// Paddle English may tilt the ball past the limit.
	if a := math.Atan2(vx, -vy); math.Abs(a) > maxAngle {
		s := math.Hypot(vx, vy)
		a = math.Copysign(maxAngle, a)
		vx = math.Sin(a) * s
		vy = -math.Cos(a) * s
	}

	if s := math.Hypot(vx, vy); s > phys.MaxSpeed {
		vx, vy = vx/s*phys.MaxSpeed, vy/s*phys.MaxSpeed
	} else if s < phys.MinSpeed {
		vx, vy = vx/s*phys.MinSpeed, vy/s*phys.MinSpeed
	}

	if vy > -phys.MinUpwardSpeed {
		vy = -phys.MinUpwardSpeed
	}

	ball.VX = vx
	ball.VY = vy
	ball.Y = paddle.Y - ball.R - 1
}

// CheckBallBrickCollision reports whether the ball and brick boxes overlap.
func CheckBallBrickCollision(ball *Ball, brick *Brick) bool {
	return ball.Rect().Overlaps(brick.Rect())
}

// HandleBrickCollision inverts the ball velocity on the axis where the ball
// center is further from the brick center, relative to the brick's extent
// on that axis, and reports which face was hit.
func HandleBrickCollision(ball *Ball, brick *Brick) Face {
	dx := (ball.CenterX() - (brick.X + brick.W/2)) / brick.W
	dy := (ball.CenterY() - (brick.Y + brick.H/2)) / brick.H

	if math.Abs(dx) > math.Abs(dy) {
		ball.VX = -ball.VX
		return FaceHorizontal
	}
	ball.VY = -ball.VY
	return FaceVertical
}

// reflectWalls keeps the ball inside the left, right and top walls.
// The ball is moved back inside and its velocity pointed away from the wall,
// so a ball that overshot never flips back and forth.
func reflectWalls(ball *Ball, width float64) bool {
	bounced := false
	if ball.X < 0 {
		ball.X = 0
		ball.VX = math.Abs(ball.VX)
		bounced = true
	} else if ball.X > width-ball.R {
		ball.X = width - ball.R
		ball.VX = -math.Abs(ball.VX)
		bounced = true
	}
	if ball.Y < 0 {
		ball.Y = 0
		ball.VY = math.Abs(ball.VY)
		bounced = true
	}
	return bounced
}
