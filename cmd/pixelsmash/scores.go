package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/termfolio/pixelsmash/internal/config"
	"github.com/termfolio/pixelsmash/internal/leaderboard"
)

var flagCountry string

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the country leaderboard",
	Long: `Display the top countries of the configured leaderboard.

Your country (from --country or PIXELSMASH_COUNTRY) is highlighted.

Examples:
  pixelsmash scores
  pixelsmash scores --country TW
  pixelsmash scores --leaderboard remote --endpoint https://pixelsmash.example.com`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagCountry, "country", "", "Country code to highlight")
	scoresCmd.Flags().StringVar(&flagLeaderboard, "leaderboard", "", "Leaderboard backend: local or remote")
	scoresCmd.Flags().StringVar(&flagEndpoint, "endpoint", "", "Hosted leaderboard URL")
}

func runScores(_ *cobra.Command, _ []string) error {
	game, err := loadGame()
	if err != nil {
		return err
	}

	backend, release, err := openBackend(game, log.New(io.Discard))
	if err != nil {
		return err
	}
	defer release()
	if backend.Board == nil {
		return fmt.Errorf("no leaderboard available (could not open %s)", game.Leaderboard.Database)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(game.Leaderboard.TimeoutSeconds)*time.Second)
	defer cancel()

	entries, err := backend.Board.Leaderboard(ctx)
	if err != nil {
		return fmt.Errorf("error retrieving leaderboard: %w", err)
	}

	country := leaderboard.NormalizeCountry(config.GetEnv(config.EnvCountry, ""))
	if flagCountry != "" {
		country = leaderboard.NormalizeCountry(flagCountry)
	}

	printLeaderboard(os.Stdout, entries, country, game.Leaderboard.Limit)

	if backend.History != nil {
		if best, err := backend.History.HighScore(ctx); err == nil && best > 0 {
			fmt.Println()
			fmt.Printf("Best match on this machine: %s\n", leaderboard.FormatScore(int64(best)))
		}
	}
	return nil
}

// printLeaderboard writes the ranking table, coloring the row of country.
func printLeaderboard(w io.Writer, entries []leaderboard.Entry, country string, limit int) {
	header := color.New(color.FgCyan, color.Bold)
	mine := color.New(color.FgYellow, color.Bold)
	dim := color.New(color.FgHiBlack)

	header.Fprintln(w, "PixelSmash - Country Leaderboard")
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'pixelsmash play' to put your country on the board!")
		return
	}

	fmt.Fprintf(w, "  %-4s  %-22s  %s\n", "Rank", "Country", "Total")
	dim.Fprintf(w, "  %-4s  %-22s  %s\n", "----", "-------", "-----")

	if limit <= 0 || limit > len(entries) {
		limit = len(entries)
	}
	for i, e := range entries[:limit] {
		name := fmt.Sprintf("%s (%s)", leaderboard.CountryName(e.CountryCode), e.CountryCode)
		line := fmt.Sprintf("  %-4d  %-22s  %s\n", i+1, name, leaderboard.FormatScore(e.TotalScore))
		if e.CountryCode == country {
			mine.Fprint(w, line)
			continue
		}
		fmt.Fprint(w, line)
	}

	rank, total := leaderboard.Find(entries, country)
	fmt.Fprintln(w)
	if rank == 0 {
		dim.Fprintf(w, "%s is not on the board yet.\n", leaderboard.CountryName(country))
		return
	}
	mine.Fprintf(w, "%s is #%d with %s points.\n", leaderboard.CountryName(country), rank, leaderboard.FormatScore(total))
}
