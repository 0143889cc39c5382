package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy3d/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Print the game configuration as YAML, after --config and
--difficulty are applied. Save the output to ~/.flappy3d/configs/flappy3d.yaml
or ./configs/flappy3d.yaml and edit it to tune the game.

Examples:
  flappy3d config
  flappy3d config --difficulty hard
  flappy3d config --defaults > flappy3d.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, _, err := loadGameConfig()
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}
