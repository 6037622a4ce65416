// Package config provides YAML-based game configuration loading,
// difficulty presets and per-level scaling for PixelSmash.
package config

// Game contains all tunable parameters of a PixelSmash match and its
// surrounding services. Distances are in canvas units, speeds in canvas
// units per tick.
type Game struct {
	Canvas      Canvas      `yaml:"canvas"`
	Paddle      Paddle      `yaml:"paddle"`
	Ball        Ball        `yaml:"ball"`
	Physics     Physics     `yaml:"physics"`
	Bricks      Bricks      `yaml:"bricks"`
	Level       Level       `yaml:"level"`
	PowerUps    PowerUps    `yaml:"powerups"`
	Gameplay    Gameplay    `yaml:"gameplay"`
	Leaderboard Leaderboard `yaml:"leaderboard"`
	Audio       Audio       `yaml:"audio"`
}

// Canvas is the size of the logical play area.
type Canvas struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Paddle defines the player's paddle.
type Paddle struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Speed         float64 `yaml:"speed"`
	BottomOffset  float64 `yaml:"bottom_offset"` // Distance from the paddle top to the canvas bottom
	MaxWidth      float64 `yaml:"max_width"`
	VelocityDecay float64 `yaml:"velocity_decay"` // Per-tick factor applied while no key is held
}

// Ball defines ball size and launch velocities.
type Ball struct {
	Size      float64 `yaml:"size"`
	LaunchVX  float64 `yaml:"launch_vx"` // Horizontal speed is drawn from [-LaunchVX, LaunchVX]
	LaunchVY  float64 `yaml:"launch_vy"`
	RespawnVY float64 `yaml:"respawn_vy"`
}

// Physics defines the paddle bounce model.
type Physics struct {
	MaxBounceAngle  float64 `yaml:"max_bounce_angle"` // Degrees from vertical
	MinSpeed        float64 `yaml:"min_speed"`
	MaxSpeed        float64 `yaml:"max_speed"`
	PaddleInfluence float64 `yaml:"paddle_influence"` // Share of paddle velocity added to the ball
	MinUpwardSpeed  float64 `yaml:"min_upward_speed"`
}

// Bricks defines the brick grid geometry and scoring.
type Bricks struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Gap     float64 `yaml:"gap"`
	Columns int     `yaml:"columns"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Points  int     `yaml:"points"`
}

// Level defines procedural generation for levels after the first.
type Level struct {
	BaseRows      int     `yaml:"base_rows"`
	RowsEvery     int     `yaml:"rows_every"`     // One extra row every N levels
	ClearanceRows int     `yaml:"clearance_rows"` // Empty rows kept above the paddle
	BaseDensity   float64 `yaml:"base_density"`
	DensityStep   float64 `yaml:"density_step"`
	MaxDensity    float64 `yaml:"max_density"`
	EdgeFactor    float64 `yaml:"edge_factor"`
	TopRows       int     `yaml:"top_rows"`
	TopRowFactor  float64 `yaml:"top_row_factor"`
	PowerUpChance float64 `yaml:"powerup_chance"`
	MinBricks     int     `yaml:"min_bricks"`
	MaxAttempts   int     `yaml:"max_attempts"`
}

// PowerUps defines falling power-up behavior and effect magnitudes.
type PowerUps struct {
	FallSpeed  float64 `yaml:"fall_speed"`
	ExtendBy   float64 `yaml:"extend_by"`
	SlowFactor float64 `yaml:"slow_factor"`
}

// Gameplay defines match rules.
type Gameplay struct {
	Lives        int `yaml:"lives"`
	StartDelayMS int `yaml:"start_delay_ms"` // Pause before balls move on a new level
}

// Leaderboard defines where scores are submitted.
type Leaderboard struct {
	Backend        string `yaml:"backend"` // "local" or "remote"
	Endpoint       string `yaml:"endpoint"`
	Database       string `yaml:"database"`
	Limit          int    `yaml:"limit"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Audio defines cue playback.
type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Gain    float64 `yaml:"gain"`
	ToneMS  int     `yaml:"tone_ms"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value into a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p
	default:
		return ""
	}
}
