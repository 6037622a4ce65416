package config

import (
	_ "embed"
)

//go:embed defaults/pixelsmash.yaml
var defaultYAML []byte

// DefaultGame returns the built-in PixelSmash configuration.
func DefaultGame() Game {
	return Game{
		Canvas: Canvas{
			Width:  580,
			Height: 440,
		},
		Paddle: Paddle{
			Width:         80,
			Height:        12,
			Speed:         8,
			BottomOffset:  30,
			MaxWidth:      150,
			VelocityDecay: 0.8,
		},
		Ball: Ball{
			Size:      10,
			LaunchVX:  4,
			LaunchVY:  -5,
			RespawnVY: -4,
		},
		Physics: Physics{
			MaxBounceAngle:  60,
			MinSpeed:        4,
			MaxSpeed:        8,
			PaddleInfluence: 0.15,
			MinUpwardSpeed:  2,
		},
		Bricks: Bricks{
			Width:   55,
			Height:  18,
			Gap:     2,
			Columns: 10,
			OffsetX: 10,
			OffsetY: 40,
			Points:  100,
		},
		Level: Level{
			BaseRows:      3,
			RowsEvery:     2,
			ClearanceRows: 4,
			BaseDensity:   0.4,
			DensityStep:   0.1,
			MaxDensity:    0.8,
			EdgeFactor:    0.8,
			TopRows:       2,
			TopRowFactor:  1.2,
			PowerUpChance: 0.15,
			MinBricks:     10,
			MaxAttempts:   10,
		},
		PowerUps: PowerUps{
			FallSpeed:  2,
			ExtendBy:   30,
			SlowFactor: 0.8,
		},
		Gameplay: Gameplay{
			Lives:        3,
			StartDelayMS: 100,
		},
		Leaderboard: Leaderboard{
			Backend:        "local",
			Limit:          15,
			TimeoutSeconds: 10,
		},
		Audio: Audio{
			Enabled: true,
			Gain:    0.1,
			ToneMS:  100,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
