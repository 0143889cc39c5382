package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy3d/internal/games/flappy"
	"github.com/vovakirdan/flappy3d/internal/platform/tui"
	"github.com/vovakirdan/flappy3d/internal/registry"
	"github.com/vovakirdan/flappy3d/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a run",
	Long: `Start a run of the game. The game id defaults to flappy3d.

Controls:
  Space/Up/W - Flap
  N          - Toggle day/night
  P/Esc      - Pause
  R          - Restart (after game over)
  Ctrl+S     - Save a PNG screenshot to ~/.flappy3d/screenshots
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Wider gaps, slower spawning
  normal - The configured values
  hard   - Narrower gaps, faster spawning

Examples:
  flappy3d play
  flappy3d play --difficulty hard
  flappy3d play --seed 42
  flappy3d play --config ./my-flappy.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// terminalSize returns the size of stdout, or 80x24 if it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := flappy.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'flappy3d list' to see available games)", gameID)
	}

	cfg, preset, err := loadGameConfig()
	if err != nil {
		return err
	}

	rc := runtimeConfig(terminalSize())

	game, err := registry.Create(gameID, cfg, rc.Seed)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	last, runErr := tui.Run(game, store, tui.Options{
		Runtime:    rc,
		Playfield:  cfg.Playfield,
		Difficulty: string(preset),
	})

	// Close store before reporting
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	if last != nil {
		fmt.Printf("Last run: %d points (seed %d, id %s)\n", last.Score, last.Seed, last.RunID)
	}
	return nil
}
