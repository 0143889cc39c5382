package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy3d/internal/games/flappy"
	"github.com/vovakirdan/flappy3d/internal/leaderboard"
	"github.com/vovakirdan/flappy3d/internal/storage"
)

var flagBoardAddr string

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Serve the leaderboard over HTTP",
	Long: `Serve recorded runs as a read-only JSON API.

Endpoints:
  GET /health
  GET /v1/scores?limit=N    - Best runs, ranked
  GET /v1/scores/best       - The single best run
  GET /v1/runs/{runID}      - One run by id
  GET /v1/stats             - Run count, best, average

Examples:
  flappy3d board
  flappy3d board --addr :9000
  FLAPPY3D_BOARD_ADDR=:9000 flappy3d board`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func init() {
	boardCmd.Flags().StringVar(&flagBoardAddr, "addr", "", "HTTP listen address (default :8080 or $FLAPPY3D_BOARD_ADDR)")
}

func runBoard(_ *cobra.Command, _ []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy3d-board",
	})

	addr := flagBoardAddr
	if addr == "" {
		addr = getEnv(envBoardAddr, ":8080")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return leaderboard.NewServer(addr, store, flappy.GameID, logger).Run(ctx)
}
