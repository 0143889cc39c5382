// Package flappy implements a side-scrolling reflex game. The player keeps
// a falling actor airborne and steers it through gaps between stacks of
// blocks, over a procedurally generated landscape with a day/night cycle.
package flappy

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/flappy3d/internal/config"
	"github.com/vovakirdan/flappy3d/internal/core"
	"github.com/vovakirdan/flappy3d/internal/registry"
)

// GameID is the identifier used for registration and score storage.
const GameID = "flappy3d"

// fpsSmoothing is the weight of the newest sample in the FPS average.
const fpsSmoothing = 0.1

// Game owns one session: the current run plus the background and day/night
// state. Every Step is one fixed simulation tick.
type Game struct {
	cfg  config.Config
	seed int64
	rng  *rand.Rand

	actor     *Actor
	obstacles []*Obstacle
	scene     *Scene
	floor     *Floor
	dayNight  *DayNight

	score     int
	gameOver  bool
	paused    bool
	ticks     int
	clock     time.Duration // Session time, advanced by Step
	lastSpawn time.Duration // Shifted forward while paused
	fps       float64
}

// New validates cfg and starts a session seeded with seed.
func New(cfg config.Config, seed int64) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}
	g := &Game{cfg: cfg}
	g.Reset(seed)
	return g, nil
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Flappy 3D"
}

// Seed returns the seed the session was started with.
func (g *Game) Seed() int64 {
	return g.seed
}

// Reset starts a fresh session: new run, new background, daylight.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.rng = rand.New(rand.NewSource(seed))
	g.dayNight = NewDayNight(g.cfg.DayNight)
	g.clock = 0
	g.fps = 0
	g.restart()
}

// restart discards the run and regenerates the background from the session
// generator. The day/night state and the clock carry over.
func (g *Game) restart() {
	sceneRng := rand.New(rand.NewSource(g.rng.Int63()))
	g.scene = NewScene(sceneRng, g.cfg)
	g.floor = NewFloor(sceneRng, g.cfg)
	g.actor = NewActor(g.cfg)
	g.obstacles = nil
	g.score = 0
	g.gameOver = false
	g.paused = false
	g.ticks = 0
	// The first obstacle appears on the first active tick.
	g.lastSpawn = g.clock - g.cfg.Obstacles.SpawnInterval
}

// Step advances the session by one tick. dt is the wall-clock time the tick
// stands for; it drives spawn cadence, the toggle cooldown and the FPS
// readout, while physics always moves one tick.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	var res core.StepResult

	g.clock += dt
	g.sampleFPS(dt)

	if in.Has(core.ActionToggleDayNight) {
		g.dayNight.Toggle(g.clock)
	}
	if g.gameOver && in.Has(core.ActionRestart) {
		g.restart()
	}
	if !g.gameOver && in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.active() && in.Has(core.ActionJump) {
		g.actor.Jump()
	}

	g.dayNight.Step()

	// Paused time does not count toward the spawn cadence.
	if g.paused && !g.gameOver {
		g.lastSpawn += dt
	}

	if g.active() {
		if g.clock-g.lastSpawn > g.cfg.Obstacles.SpawnInterval {
			g.spawn()
		}

		g.ticks++
		g.actor.Integrate(1)
		g.scene.Update(1)

		// Every obstacle moves and scores this tick, even after a hit.
		box := g.actor.BoundingBox()
		for _, o := range g.obstacles {
			o.Advance(1)
			if o.Intersects(box) {
				g.gameOver = true
				res.Collided = true
			}
			if o.MarkPassed(g.actor.Pos.X) {
				g.score++
				res.Scored++
			}
		}
	}

	g.retire()

	res.State = g.State()
	return res
}

func (g *Game) active() bool {
	return !g.gameOver && !g.paused
}

// spawn adds an obstacle at the right edge of the playfield.
func (g *Game) spawn() {
	o, err := NewObstacle(g.rng, g.cfg.Playfield.Width, g.cfg)
	if err != nil {
		// New validated the spawn range, so this cannot fail.
		panic(err)
	}
	g.obstacles = append(g.obstacles, o)
	g.lastSpawn = g.clock
}

// retire drops obstacles that have left the playfield, keeping order.
func (g *Game) retire() {
	kept := g.obstacles[:0]
	for _, o := range g.obstacles {
		if !o.Offscreen() {
			kept = append(kept, o)
		}
	}
	clear(g.obstacles[len(kept):])
	g.obstacles = kept
}

func (g *Game) sampleFPS(dt time.Duration) {
	if dt <= 0 {
		return
	}
	sample := float64(time.Second) / float64(dt)
	if g.fps == 0 {
		g.fps = sample
		return
	}
	g.fps = g.fps*(1-fpsSmoothing) + sample*fpsSmoothing
}

// Render draws the full frame: background, obstacles, floor, actor, HUD
// and any overlay.
func (g *Game) Render(c core.Canvas) {
	night := g.dayNight.Value()

	c.Fill(shadeSky.At(night))
	g.scene.Render(c, night)
	for _, o := range g.obstacles {
		o.Render(c)
	}
	g.floor.Render(c, night)
	g.actor.Render(c)

	renderHUD(c, g.score, g.fps)
	switch {
	case g.gameOver:
		renderGameOver(c, g.score)
	case g.paused:
		renderPaused(c)
	}
}

// State returns a snapshot of the session.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
		Night:    g.dayNight.Value(),
		Ticks:    g.ticks,
	}
}

// Actor returns the current actor.
func (g *Game) Actor() *Actor {
	return g.actor
}

// Obstacles returns the live obstacles in spawn order.
func (g *Game) Obstacles() []*Obstacle {
	return g.obstacles
}

// Scene returns the current background.
func (g *Game) Scene() *Scene {
	return g.scene
}

// DayNight returns the day/night state.
func (g *Game) DayNight() *DayNight {
	return g.dayNight
}

// Clock returns the session time accumulated by Step.
func (g *Game) Clock() time.Duration {
	return g.clock
}

// FPS returns the smoothed frame rate.
func (g *Game) FPS() float64 {
	return g.fps
}

func init() {
	registry.Register(GameID, func(cfg config.Config, seed int64) (registry.Game, error) {
		g, err := New(cfg, seed)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
}
