package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/termfolio/pixelsmash/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration PixelSmash would run with, after the config
file, difficulty preset and environment overrides are applied.

Copy the output to ~/.pixelsmash/configs/pixelsmash.yaml to customize it.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadGame()
		if err != nil {
			return err
		}
		data, err := config.Encode(cfg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}
