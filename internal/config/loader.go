package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "pixelsmash.yaml"

// Load loads the PixelSmash configuration.
// Search order: customPath -> ~/.pixelsmash/configs/pixelsmash.yaml ->
// ./configs/pixelsmash.yaml -> embedded default.
// Files are decoded over DefaultGame, so a file only needs the keys it changes.
func Load(customPath string) (Game, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Game{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Game{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(fileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", fileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultYAML)
	if err != nil {
		return DefaultGame(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the built-in defaults and validates the result.
func Parse(data []byte) (Game, error) {
	cfg := DefaultGame()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Game{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Game{}, err
	}
	return cfg, nil
}

// Encode renders the configuration as YAML.
func Encode(cfg Game) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// Validate rejects configurations the simulation cannot run with.
func (g Game) Validate() error {
	var errs []error
	if g.Canvas.Width <= 0 || g.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas must be positive, got %gx%g", g.Canvas.Width, g.Canvas.Height))
	}
	if g.Bricks.Columns <= 0 || g.Bricks.Width <= 0 || g.Bricks.Height <= 0 {
		errs = append(errs, errors.New("bricks need positive columns, width and height"))
	}
	if g.Paddle.Width <= 0 || g.Paddle.MaxWidth < g.Paddle.Width {
		errs = append(errs, fmt.Errorf("paddle width %g must be positive and not above max_width %g", g.Paddle.Width, g.Paddle.MaxWidth))
	}
	if g.Physics.MinSpeed <= 0 || g.Physics.MaxSpeed < g.Physics.MinSpeed {
		errs = append(errs, fmt.Errorf("physics speed range [%g, %g] is invalid", g.Physics.MinSpeed, g.Physics.MaxSpeed))
	}
	if g.Gameplay.Lives <= 0 {
		errs = append(errs, fmt.Errorf("gameplay lives must be positive, got %d", g.Gameplay.Lives))
	}
	if g.Level.MinBricks <= 0 || g.Level.MaxAttempts <= 0 {
		errs = append(errs, errors.New("level min_bricks and max_attempts must be positive"))
	}
	switch g.Leaderboard.Backend {
	case "local":
	case "remote":
		if g.Leaderboard.Endpoint == "" {
			errs = append(errs, errors.New("leaderboard backend remote needs an endpoint"))
		}
	default:
		errs = append(errs, fmt.Errorf("leaderboard backend must be local or remote, got %q", g.Leaderboard.Backend))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := HomeDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// HomeDir returns ~/.pixelsmash, or empty if the home directory is unknown.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pixelsmash")
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Game, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Paddle.Width = 100
		cfg.Paddle.Speed = 10
		cfg.Level.BaseDensity = 0.3
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Paddle.Width = 60
		cfg.Paddle.Speed = 7
		cfg.Level.BaseDensity = 0.5
	}
	if cfg.Paddle.MaxWidth < cfg.Paddle.Width {
		cfg.Paddle.MaxWidth = cfg.Paddle.Width
	}
}
