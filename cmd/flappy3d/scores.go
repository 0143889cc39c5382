package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy3d/internal/games/flappy"
	"github.com/vovakirdan/flappy3d/internal/platform/tui"
	"github.com/vovakirdan/flappy3d/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTable bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best runs and run statistics.

By default the top 10 runs are printed. With --table an interactive
table shows the top 100 and the most recent runs.

Examples:
  flappy3d scores
  flappy3d scores --limit 25
  flappy3d scores --table
  flappy3d scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to print")
	scoresCmd.Flags().BoolVar(&flagScoresTable, "table", false, "Browse runs in an interactive table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded runs")
}

func runScores(_ *cobra.Command, _ []string) error {
	gameID := flappy.GameID

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(gameID); err != nil {
			return err
		}
		fmt.Println("All runs deleted.")
		return nil
	}

	if flagScoresTable {
		width, height := terminalSize()
		_, err := tui.RunScoreboard(store, gameID, width, height)
		return err
	}

	runs, err := store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Println("High Scores - Flappy 3D")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy3d play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-7s  %-5s  %-6s  %s\n", "Rank", "Score", "Ticks", "Mode", "Level", "Date")
	fmt.Printf("  %-4s  %-6s  %-7s  %-5s  %-6s  %s\n", "----", "-----", "-----", "----", "-----", "----")

	for i, r := range runs {
		mode := "day"
		if r.Night {
			mode = "night"
		}
		fmt.Printf("  %-4d  %-6d  %-7d  %-5s  %-6s  %s\n",
			i+1, r.Score, r.Ticks, mode, r.Difficulty, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d   Runs: %d   Average: %.1f\n", stats.HighScore, stats.RunCount, stats.AvgScore)
	}
	return nil
}
