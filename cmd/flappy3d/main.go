// flappy3d is a side-scrolling reflex game for the terminal.
//
// Usage:
//
//	flappy3d play            - Play a run
//	flappy3d menu            - Pick a difficulty interactively
//	flappy3d serve           - Start SSH server for remote play
//	flappy3d scores          - Show the best runs
//	flappy3d board           - Serve the leaderboard over HTTP
//	flappy3d config          - Print the effective configuration
//	flappy3d list            - List registered games
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.flappy3d/runs.db)
//	--config <path>       - Load game config from a YAML file
//	--difficulty <level>  - easy, normal or hard
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/flappy3d/internal/games/flappy"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	// A missing .env is fine; the environment and flags still apply.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy3d",
	Short: "Flappy 3D - keep the bird airborne in your terminal",
	Long: `Flappy 3D is a side-scrolling reflex game rendered in truecolor
half blocks. Flap through the gaps between block stacks over a
procedurally generated landscape with a day/night cycle.

Available commands:
  play     - Play a run
  menu     - Interactive difficulty picker
  serve    - Start SSH server for remote play
  scores   - View the best runs
  board    - Serve the leaderboard over HTTP
  config   - Print the effective configuration

Environment (also read from ./.env):
  FLAPPY3D_DB          - Default for --db
  FLAPPY3D_CONFIG      - Default for --config
  FLAPPY3D_DIFFICULTY  - Default for --difficulty

Examples:
  flappy3d play
  flappy3d play --difficulty hard --seed 42
  flappy3d serve --ssh :2222
  flappy3d board --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	// Flag defaults come from the environment, which main has already
	// populated from .env by the time cobra parses flags.
	cobra.OnInitialize(applyEnvDefaults)

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDBPath, "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(configCmd)
}
