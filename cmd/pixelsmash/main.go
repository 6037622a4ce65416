// pixelsmash is a terminal breakout game with a country leaderboard.
//
// Usage:
//
//	pixelsmash play          - Play in this terminal
//	pixelsmash serve         - Start SSH server for remote play
//	pixelsmash scores        - Show the country leaderboard
//	pixelsmash config        - Print the effective configuration
//
// Global flags:
//
//	--config <path>  - Custom configuration YAML
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--db <path>      - Set database path (default: ~/.pixelsmash/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig string
	flagFPS    int
	flagSeed   uint64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pixelsmash",
	Short: "PixelSmash - break bricks for your country",
	Long: `PixelSmash is a breakout game for the terminal. Every finished match
adds its score to your country's total on the leaderboard.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  scores   - View the country leaderboard
  config   - Print the effective configuration

Examples:
  pixelsmash play
  pixelsmash play --difficulty hard --seed 42
  pixelsmash serve --ssh :2222
  pixelsmash scores --country TW`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pixelsmash/scores.db", "Path to scores database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
