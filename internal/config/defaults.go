package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy3d.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Playfield: Playfield{
			Width:       400,
			Height:      600,
			FloorHeight: 100,
		},
		Physics: Physics{
			Gravity:        0.25,
			JumpVelocity:   -5,
			ObstacleSpeed:  3,
			RotationFactor: 3,
			MinRotation:    -30,
			MaxRotation:    70,
		},
		Actor: Actor{
			StartX:  133,
			StartY:  300,
			Size:    20,
			HitSize: 20,
		},
		Obstacles: Obstacles{
			Width:         60,
			Gap:           150,
			BlockSize:     50,
			BlockChance:   0.5,
			TopMargin:     100,
			BottomMargin:  100,
			SpawnInterval: 1500 * time.Millisecond,
		},
		DayNight: DayNight{
			TransitionStep: 0.05,
			ToggleCooldown: 500 * time.Millisecond,
		},
		Scene: Scene{
			Mountains:       8,
			SilhouetteSteps: 40,
			SnowHeight:      180,
			GroundTrees:     10,
			Stars:           100,
			Clouds:          10,
			CloudWrapMargin: 100,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
