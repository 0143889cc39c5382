// Package config provides YAML-based configuration loading, difficulty
// presets, and validation for the game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig reports parameters the game cannot run with.
var ErrInvalidConfig = errors.New("invalid config")

// Config contains all tunable parameters of the game.
type Config struct {
	Playfield Playfield `yaml:"playfield"`
	Physics   Physics   `yaml:"physics"`
	Actor     Actor     `yaml:"actor"`
	Obstacles Obstacles `yaml:"obstacles"`
	DayNight  DayNight  `yaml:"day_night"`
	Scene     Scene     `yaml:"scene"`
}

// Playfield defines the world dimensions in world units.
type Playfield struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	FloorHeight float64 `yaml:"floor_height"`
}

// FloorY returns the y-coordinate of the floor line.
func (p Playfield) FloorY() float64 {
	return p.Height - p.FloorHeight
}

// Physics defines per-tick kinematics.
type Physics struct {
	Gravity        float64 `yaml:"gravity"`
	JumpVelocity   float64 `yaml:"jump_velocity"` // negative = up
	ObstacleSpeed  float64 `yaml:"obstacle_speed"`
	RotationFactor float64 `yaml:"rotation_factor"`
	MinRotation    float64 `yaml:"min_rotation"`
	MaxRotation    float64 `yaml:"max_rotation"`
}

// Actor defines the player character's placement and extents.
type Actor struct {
	StartX  float64 `yaml:"start_x"`
	StartY  float64 `yaml:"start_y"`
	Size    float64 `yaml:"size"`     // visual half extent, used for the floor clamp
	HitSize float64 `yaml:"hit_size"` // side of the collision box
}

// Obstacles defines obstacle geometry and spawn cadence.
type Obstacles struct {
	Width         float64       `yaml:"width"`
	Gap           float64       `yaml:"gap"`
	BlockSize     float64       `yaml:"block_size"`
	BlockChance   float64       `yaml:"block_chance"`
	TopMargin     float64       `yaml:"top_margin"`
	BottomMargin  float64       `yaml:"bottom_margin"`
	SpawnInterval time.Duration `yaml:"spawn_interval"`
}

// DayNight defines the day/night transition.
type DayNight struct {
	TransitionStep float64       `yaml:"transition_step"`
	ToggleCooldown time.Duration `yaml:"toggle_cooldown"`
}

// Scene defines how much decoration the background generates.
type Scene struct {
	Mountains       int     `yaml:"mountains"`
	SilhouetteSteps int     `yaml:"silhouette_steps"`
	SnowHeight      float64 `yaml:"snow_height"`
	GroundTrees     int     `yaml:"ground_trees"`
	Stars           int     `yaml:"stars"`
	Clouds          int     `yaml:"clouds"`
	CloudWrapMargin float64 `yaml:"cloud_wrap_margin"`
}

// SpawnRange returns the inclusive range the gap top is drawn from.
func (c Config) SpawnRange() (lo, hi float64) {
	lo = c.Obstacles.TopMargin
	hi = c.Playfield.FloorY() - c.Obstacles.Gap - c.Obstacles.BottomMargin
	return lo, hi
}

// Validate checks that the configuration describes a playable game.
// Every failure wraps ErrInvalidConfig.
func (c Config) Validate() error {
	p := c.Playfield
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return invalid("playfield must have positive size, got %vx%v", p.Width, p.Height)
	case p.FloorHeight < 0 || p.FloorHeight >= p.Height:
		return invalid("floor height %v must be within [0, %v)", p.FloorHeight, p.Height)
	}

	o := c.Obstacles
	switch {
	case o.Width <= 0:
		return invalid("obstacle width must be positive, got %v", o.Width)
	case o.Gap <= 0:
		return invalid("obstacle gap must be positive, got %v", o.Gap)
	case o.BlockSize <= 0:
		return invalid("block size must be positive, got %v", o.BlockSize)
	case o.BlockChance < 0 || o.BlockChance > 1:
		return invalid("block chance %v must be within [0, 1]", o.BlockChance)
	case o.TopMargin < 0 || o.BottomMargin < 0:
		return invalid("obstacle margins must not be negative")
	case o.SpawnInterval <= 0:
		return invalid("spawn interval must be positive, got %v", o.SpawnInterval)
	}

	if lo, hi := c.SpawnRange(); hi < lo {
		return invalid("gap %v with margins %v/%v does not fit a floor line at %v (spawn range [%v, %v] is empty)",
			o.Gap, o.TopMargin, o.BottomMargin, p.FloorY(), lo, hi)
	}

	switch {
	case c.Physics.ObstacleSpeed <= 0:
		return invalid("obstacle speed must be positive, got %v", c.Physics.ObstacleSpeed)
	case c.Physics.MinRotation > c.Physics.MaxRotation:
		return invalid("rotation bounds [%v, %v] are inverted", c.Physics.MinRotation, c.Physics.MaxRotation)
	case c.Actor.Size <= 0 || c.Actor.HitSize <= 0:
		return invalid("actor sizes must be positive")
	case c.DayNight.TransitionStep <= 0 || c.DayNight.TransitionStep > 1:
		return invalid("day/night step %v must be within (0, 1]", c.DayNight.TransitionStep)
	case c.DayNight.ToggleCooldown < 0:
		return invalid("toggle cooldown must not be negative")
	}

	s := c.Scene
	switch {
	case s.Mountains < 0 || s.GroundTrees < 0 || s.Stars < 0 || s.Clouds < 0:
		return invalid("scene element counts must not be negative")
	case s.Mountains > 0 && s.SilhouetteSteps < 2:
		return invalid("silhouette needs at least 2 steps, got %d", s.SilhouetteSteps)
	}

	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
