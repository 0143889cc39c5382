package main

import (
	"fmt"
	"os"
	"time"

	"github.com/vovakirdan/flappy3d/internal/config"
	"github.com/vovakirdan/flappy3d/internal/core"
)

const defaultDBPath = "~/.flappy3d/runs.db"

// Environment variables that provide flag defaults.
const (
	envDB         = "FLAPPY3D_DB"
	envConfig     = "FLAPPY3D_CONFIG"
	envDifficulty = "FLAPPY3D_DIFFICULTY"
	envBoardAddr  = "FLAPPY3D_BOARD_ADDR"
)

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// applyEnvDefaults fills flags the user did not set from the environment.
func applyEnvDefaults() {
	flags := rootCmd.PersistentFlags()
	if !flags.Changed("db") {
		flagDBPath = getEnv(envDB, flagDBPath)
	}
	if !flags.Changed("config") {
		flagConfig = getEnv(envConfig, flagConfig)
	}
	if !flags.Changed("difficulty") {
		flagDifficulty = getEnv(envDifficulty, flagDifficulty)
	}
}

// loadGameConfig resolves the game configuration from --config and
// --difficulty, and validates the result.
func loadGameConfig() (config.Config, config.DifficultyPreset, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, "", err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Config{}, "", err
	}
	config.ApplyPreset(&cfg, preset)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", fmt.Errorf("config: %w", err)
	}
	return cfg, preset, nil
}

// runtimeConfig builds the runtime settings for a terminal of the given size.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     resolveSeed(flagSeed),
	}
}

// resolveSeed returns seed, or a time-based seed when it is 0.
func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}
