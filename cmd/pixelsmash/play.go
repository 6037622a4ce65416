package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/termfolio/pixelsmash/internal/audio"
	"github.com/termfolio/pixelsmash/internal/core"
	"github.com/termfolio/pixelsmash/internal/platform/tui"
)

var (
	flagMute  bool
	flagDebug bool
	flagHold  int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play PixelSmash in this terminal",
	Long: `Start a PixelSmash session.

Controls:
  Enter        - Start a match
  Left/A       - Move left
  Right/D      - Move right
  Space        - Pause / resume
  R            - Back to the title screen (after game over)
  S            - Retry a failed score submission
  Ctrl+S       - Save a screenshot
  Esc/Q        - Quit

Leaderboard backends:
  local   - Country totals kept in the local database (default)
  remote  - Hosted leaderboard at --endpoint

Examples:
  pixelsmash play
  pixelsmash play --difficulty easy
  pixelsmash play --leaderboard remote --endpoint https://pixelsmash.example.com
  PIXELSMASH_COUNTRY=TW pixelsmash play`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagLeaderboard, "leaderboard", "", "Leaderboard backend: local or remote")
	playCmd.Flags().StringVar(&flagEndpoint, "endpoint", "", "Hosted leaderboard URL")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().BoolVar(&flagDebug, "debug", false, "Write simulation details to the log file")
	playCmd.Flags().IntVar(&flagHold, "hold-ticks", tui.DefaultHoldTicks, "Ticks a movement key stays held after a press")
}

func runPlay(_ *cobra.Command, _ []string) error {
	game, err := loadGame()
	if err != nil {
		return err
	}
	if flagMute {
		game.Audio.Enabled = false
	}

	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}
	logger, closeLog := openLogFile(level)
	defer closeLog()

	backend, release, err := openBackend(game, logger)
	if err != nil {
		return err
	}
	defer release()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	beeper := audio.NewBeeper(game.Audio, logger)
	// The model closes the beeper on quit; this covers errors.
	defer beeper.Close()

	logger.Info("session started", "seed", flagSeed, "backend", game.Leaderboard.Backend)
	runErr := tui.Run(tui.Options{
		Game: game,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Backend:   backend,
		Audio:     beeper,
		Logger:    logger,
		HoldTicks: flagHold,
	})
	if runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}
	logger.Info("session ended")
	return nil
}
