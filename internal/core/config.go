package core

import "time"

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickDuration returns the wall-clock length of one tick.
func (c RuntimeConfig) TickDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// GameState represents the current state of a run.
type GameState struct {
	Score    int     // Obstacles cleared this run
	GameOver bool    // Whether the run has ended
	Paused   bool    // Whether the run is paused
	Night    float64 // Day/night blend factor, 0 = day, 1 = night
	Ticks    int     // Simulated ticks since the run started
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State    GameState
	Scored   int  // Obstacles passed on this tick
	Collided bool // Whether this tick ended the run
}
