package config

import (
	"fmt"
	"time"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value into a preset.
// An empty string selects DifficultyNormal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset adjusts the gap size and spawn cadence for a preset.
// Obstacle speed is never changed. Normal leaves the config untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Obstacles.Gap += 30
		cfg.Obstacles.SpawnInterval += 300 * time.Millisecond
	case DifficultyHard:
		cfg.Obstacles.Gap -= 20
		cfg.Obstacles.SpawnInterval -= 300 * time.Millisecond
	}
}
