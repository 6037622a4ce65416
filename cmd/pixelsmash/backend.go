package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/termfolio/pixelsmash/internal/config"
	"github.com/termfolio/pixelsmash/internal/leaderboard"
	"github.com/termfolio/pixelsmash/internal/platform/tui"
	"github.com/termfolio/pixelsmash/internal/storage"
)

// Leaderboard flags shared by play and serve.
var (
	flagDifficulty  string
	flagLeaderboard string
	flagEndpoint    string
)

// loadGame loads the configuration and applies flag and environment
// overrides.
func loadGame() (config.Game, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Game{}, err
	}

	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return config.Game{}, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}

	config.ApplyEnv(&cfg)
	if flagLeaderboard != "" {
		cfg.Leaderboard.Backend = flagLeaderboard
	}
	if flagEndpoint != "" {
		cfg.Leaderboard.Endpoint = flagEndpoint
	}
	if cfg.Leaderboard.Database == "" {
		cfg.Leaderboard.Database = flagDBPath
	}

	if err := cfg.Validate(); err != nil {
		return config.Game{}, err
	}
	return cfg, nil
}

// openBackend builds the leaderboard backend selected by cfg. The local
// database also keeps the match history; a database that cannot be opened
// disables it with a warning. The returned func releases the backend.
func openBackend(cfg config.Game, logger *log.Logger) (tui.Backend, func(), error) {
	store, err := storage.Open(cfg.Leaderboard.Database)
	if err != nil {
		logger.Warn("could not open scores database", "path", cfg.Leaderboard.Database, "err", err)
		store = nil
	}
	release := func() {
		if store != nil {
			store.Close()
		}
	}

	switch cfg.Leaderboard.Backend {
	case "remote":
		timeout := time.Duration(cfg.Leaderboard.TimeoutSeconds) * time.Second
		client := leaderboard.NewHTTPClient(cfg.Leaderboard.Endpoint, timeout)

		var location leaderboard.LocationService = client
		if code := config.GetEnv(config.EnvCountry, ""); code != "" {
			location = leaderboard.StaticLocation(code)
		}
		logger.Info("using hosted leaderboard", "endpoint", cfg.Leaderboard.Endpoint)
		return tui.Backend{Board: client, Location: location, History: store}, release, nil

	default:
		if store == nil {
			return tui.Backend{}, release, nil
		}
		board := store.Leaderboard(string(leaderboard.EnvLocation()))
		return tui.Backend{Board: board, Location: board, History: store}, release, nil
	}
}

// openLogFile returns a logger writing to ~/.pixelsmash/pixelsmash.log, or
// a discarding logger when the file cannot be created.
func openLogFile(level log.Level) (*log.Logger, func()) {
	dir := config.HomeDir()
	if dir == "" {
		return log.New(io.Discard), func() {}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}

	f, err := os.OpenFile(filepath.Join(dir, "pixelsmash.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "pixelsmash",
		Level:           level,
	})
	return logger, func() { f.Close() }
}
