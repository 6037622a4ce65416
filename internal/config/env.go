package config

import "os"

// Environment variables read by the CLI and services.
const (
	EnvCountry        = "PIXELSMASH_COUNTRY"
	EnvLeaderboardURL = "PIXELSMASH_LEADERBOARD_URL"
	EnvSSHHost        = "SSH_HOST"
	EnvSSHPort        = "SSH_PORT"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// ApplyEnv overrides leaderboard settings from the environment.
// A leaderboard URL switches the backend to remote.
func ApplyEnv(cfg *Game) {
	if url := GetEnv(EnvLeaderboardURL, ""); url != "" {
		cfg.Leaderboard.Endpoint = url
		cfg.Leaderboard.Backend = "remote"
	}
}
