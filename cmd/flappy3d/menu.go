package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy3d/internal/config"
	"github.com/vovakirdan/flappy3d/internal/games/flappy"
	"github.com/vovakirdan/flappy3d/internal/platform/tui"
	"github.com/vovakirdan/flappy3d/internal/registry"
	"github.com/vovakirdan/flappy3d/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a difficulty picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a run.
Quitting a run returns to the menu; Tab opens the score table.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start a run
  Tab          - Scores
  Q            - Quit

Examples:
  flappy3d menu
  flappy3d menu --fps 30
  flappy3d menu --db ./runs.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	base, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	current, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	rc := runtimeConfig(terminalSize())

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, rc, current)
		if err != nil {
			return err
		}

		// Update config with any size changes
		rc = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, flappy.GameID, rc.ScreenW, rc.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		current = menuResult.Difficulty
		cfg := base
		config.ApplyPreset(&cfg, current)
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", current, err)
			continue
		}

		game, err := registry.Create(flappy.GameID, cfg, resolveSeed(flagSeed))
		if err != nil {
			return fmt.Errorf("creating game: %w", err)
		}

		if _, err := tui.Run(game, store, tui.Options{
			Runtime:    rc,
			Playfield:  cfg.Playfield,
			Difficulty: string(current),
		}); err != nil {
			return fmt.Errorf("running game: %w", err)
		}
	}
}
