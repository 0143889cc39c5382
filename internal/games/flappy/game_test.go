package flappy

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/flappy3d/internal/config"
	"github.com/vovakirdan/flappy3d/internal/core"
	"github.com/vovakirdan/flappy3d/internal/registry"
)

const tick = 16 * time.Millisecond

func newTestGame(t *testing.T, mutate func(*config.Config)) *Game {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	g, err := New(cfg, 12345)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g
}

// openPlayfield removes every block so runs cannot end by collision.
func openPlayfield(cfg *config.Config) {
	cfg.Obstacles.BlockChance = 0
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Obstacles.Gap = 400

	g, err := New(cfg, 1)
	if err == nil {
		t.Fatal("Expected an error for an empty spawn range")
	}
	if g != nil {
		t.Error("Expected no game on error")
	}
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestGameInitialState(t *testing.T) {
	g := newTestGame(t, nil)

	s := g.State()
	if s.Score != 0 || s.GameOver || s.Paused || s.Ticks != 0 || s.Night != 0 {
		t.Errorf("unexpected initial state %+v", s)
	}
	if len(g.Obstacles()) != 0 {
		t.Errorf("Expected no obstacles before the first tick, got %d", len(g.Obstacles()))
	}
	if g.ID() != GameID || g.Seed() != 12345 {
		t.Errorf("unexpected identity %q / %d", g.ID(), g.Seed())
	}
}

func TestGameSpawnCadence(t *testing.T) {
	g := newTestGame(t, openPlayfield)

	g.Step(idle(), tick)
	if n := len(g.Obstacles()); n != 1 {
		t.Fatalf("Expected the first obstacle on the first tick, got %d", n)
	}

	// Exactly one interval later is not yet past the cadence.
	g.Step(idle(), 1500*time.Millisecond)
	if n := len(g.Obstacles()); n != 1 {
		t.Errorf("Expected 1 obstacle at exactly one interval, got %d", n)
	}

	g.Step(idle(), time.Millisecond)
	if n := len(g.Obstacles()); n != 2 {
		t.Errorf("Expected a second obstacle past the interval, got %d", n)
	}
}

func TestGameScoresOncePerObstacle(t *testing.T) {
	g := newTestGame(t, openPlayfield)

	// With 1ms ticks only one obstacle spawns in the first 1500 ticks.
	for i := 1; i <= 200; i++ {
		res := g.Step(idle(), time.Millisecond)
		want := 0
		if i >= 110 {
			want = 1
		}
		if res.State.Score != want {
			t.Fatalf("tick %d: score %d, expected %d", i, res.State.Score, want)
		}
		if i == 110 && res.Scored != 1 {
			t.Errorf("tick 110: expected Scored=1, got %d", res.Scored)
		}
		if i != 110 && res.Scored != 0 {
			t.Errorf("tick %d: unexpected Scored=%d", i, res.Scored)
		}
	}
}

func TestGameRetiresObstacles(t *testing.T) {
	g := newTestGame(t, openPlayfield)

	for i := 0; i < 153; i++ {
		g.Step(idle(), time.Millisecond)
	}
	if n := len(g.Obstacles()); n != 1 {
		t.Fatalf("Expected obstacle still live after 153 ticks, got %d", n)
	}

	g.Step(idle(), time.Millisecond)
	if n := len(g.Obstacles()); n != 0 {
		t.Errorf("Expected obstacle retired after 154 ticks, got %d", n)
	}
}

func TestGameActorSettlesWithoutObstacles(t *testing.T) {
	g := newTestGame(t, openPlayfield)

	for i := 0; i < 100; i++ {
		g.Step(idle(), tick)
	}

	a := g.Actor()
	if a.Pos.Y != 480 || a.Velocity != 0 {
		t.Errorf("Expected actor resting at y=480 with v=0, got y=%v v=%v", a.Pos.Y, a.Velocity)
	}
	if g.State().GameOver {
		t.Error("Resting on the floor must not end the run")
	}
}

// blockAhead places a single block in the actor's path.
func blockAhead(g *Game) {
	g.obstacles = append(g.obstacles, &Obstacle{
		X:         120,
		GapTop:    400,
		Top:       BlockStack{250},
		width:     60,
		gap:       150,
		blockSize: 50,
		speed:     3,
	})
}

func TestGameCollisionEndsRun(t *testing.T) {
	g := newTestGame(t, nil)
	blockAhead(g)

	res := g.Step(idle(), tick)
	if !res.Collided || !res.State.GameOver {
		t.Fatalf("Expected collision on the first tick, got %+v", res)
	}
}

func TestGameOverFreezesSimulation(t *testing.T) {
	g := newTestGame(t, nil)
	blockAhead(g)
	g.Step(idle(), tick)

	state := g.State()
	pos, vel := g.Actor().Pos, g.Actor().Velocity
	count := len(g.Obstacles())
	xs := make([]float64, count)
	for i, o := range g.Obstacles() {
		xs[i] = o.X
	}

	for i := 0; i < 200; i++ {
		jump := core.NewInputFrame(core.ActionJump, core.ActionPause)
		res := g.Step(jump, 100*time.Millisecond)
		if res.Scored != 0 || res.Collided {
			t.Fatalf("tick %d after game over produced %+v", i, res)
		}
	}

	after := g.State()
	if after.Score != state.Score || after.Ticks != state.Ticks || !after.GameOver || after.Paused {
		t.Errorf("state changed after game over: %+v -> %+v", state, after)
	}
	if g.Actor().Pos != pos || g.Actor().Velocity != vel {
		t.Error("actor moved after game over")
	}
	if len(g.Obstacles()) != count {
		t.Fatalf("obstacles spawned after game over: %d -> %d", count, len(g.Obstacles()))
	}
	for i, o := range g.Obstacles() {
		if o.X != xs[i] {
			t.Errorf("obstacle %d moved after game over", i)
		}
	}
}

func TestGameRestart(t *testing.T) {
	g := newTestGame(t, nil)
	blockAhead(g)
	g.Step(idle(), tick)
	scene := g.Scene()

	res := g.Step(core.NewInputFrame(core.ActionRestart), tick)
	if res.State.GameOver || res.State.Score != 0 {
		t.Fatalf("Expected a fresh run, got %+v", res.State)
	}
	if res.State.Ticks != 1 {
		t.Errorf("Expected the restart tick to run, got %d ticks", res.State.Ticks)
	}
	if len(g.Obstacles()) != 0 {
		t.Errorf("Expected no obstacles on the restart tick, got %d", len(g.Obstacles()))
	}
	if g.Actor().Pos.Y != 300.25 {
		t.Errorf("Expected a fresh actor, got y=%v", g.Actor().Pos.Y)
	}
	if g.Scene() == scene {
		t.Error("Expected the background to be regenerated")
	}

	g.Step(idle(), tick)
	if len(g.Obstacles()) != 1 {
		t.Errorf("Expected the first obstacle right after restart, got %d", len(g.Obstacles()))
	}
}

func TestGameRestartIgnoredWhileActive(t *testing.T) {
	g := newTestGame(t, openPlayfield)
	scene := g.Scene()

	for i := 0; i < 5; i++ {
		g.Step(idle(), tick)
	}
	g.Step(core.NewInputFrame(core.ActionRestart), tick)

	if g.State().Ticks != 6 {
		t.Errorf("Expected restart to be ignored, ticks=%d", g.State().Ticks)
	}
	if g.Scene() != scene {
		t.Error("Restart while active must not regenerate the background")
	}
}

func TestGameJump(t *testing.T) {
	g := newTestGame(t, openPlayfield)

	g.Step(core.NewInputFrame(core.ActionJump), tick)
	a := g.Actor()
	if a.Velocity != -4.75 {
		t.Errorf("Expected jump velocity plus one tick of gravity, got %v", a.Velocity)
	}
	if a.Pos.Y >= 300 {
		t.Errorf("Expected actor to rise, y=%v", a.Pos.Y)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, openPlayfield)

	res := g.Step(core.NewInputFrame(core.ActionPause, core.ActionJump), tick)
	if !res.State.Paused || res.State.Ticks != 0 {
		t.Fatalf("Expected paused with no ticks, got %+v", res.State)
	}
	if g.Actor().Velocity != 0 {
		t.Error("Jump must be ignored while paused")
	}

	for i := 0; i < 10; i++ {
		g.Step(idle(), tick)
	}
	if g.State().Ticks != 0 || len(g.Obstacles()) != 0 {
		t.Error("Simulation advanced while paused")
	}

	res = g.Step(core.NewInputFrame(core.ActionPause), tick)
	if res.State.Paused || res.State.Ticks != 1 {
		t.Errorf("Expected resume, got %+v", res.State)
	}
}

func TestGamePauseKeepsSpawnSpacing(t *testing.T) {
	g := newTestGame(t, openPlayfield)

	for i := 0; i < 5; i++ {
		g.Step(idle(), tick)
	}
	g.Step(core.NewInputFrame(core.ActionPause), tick)
	for i := 0; i < 200; i++ {
		g.Step(idle(), tick)
	}
	g.Step(core.NewInputFrame(core.ActionPause), tick)

	if n := len(g.Obstacles()); n != 1 {
		t.Fatalf("Expected no spawn on resume after a long pause, got %d obstacles", n)
	}

	for len(g.Obstacles()) < 2 && g.State().Ticks < 200 {
		g.Step(idle(), tick)
	}
	obs := g.Obstacles()
	if len(obs) != 2 {
		t.Fatalf("Expected a second obstacle, got %d", len(obs))
	}
	// 16ms ticks: the first active tick spawns, the 95th is the first past 1500ms.
	if ticks := g.State().Ticks; ticks != 95 {
		t.Errorf("Second obstacle after %d active ticks, expected 95", ticks)
	}
	if gap := obs[1].X - obs[0].X; gap != 94*g.cfg.Physics.ObstacleSpeed {
		t.Errorf("Obstacles %v apart, expected %v", gap, 94*g.cfg.Physics.ObstacleSpeed)
	}
}

func TestGameCollisionTickAdvancesEveryObstacle(t *testing.T) {
	g := newTestGame(t, nil)
	blockAhead(g)
	// Listed after the blocker, about to be cleared.
	g.obstacles = append(g.obstacles, &Obstacle{
		X:         75,
		GapTop:    200,
		width:     60,
		gap:       150,
		blockSize: 50,
		speed:     3,
	})

	res := g.Step(idle(), tick)
	if !res.Collided || !res.State.GameOver {
		t.Fatalf("Expected a collision, got %+v", res)
	}
	obs := g.Obstacles()
	if obs[0].X != 117 || obs[1].X != 72 {
		t.Errorf("Expected both obstacles advanced, got x=%v and x=%v", obs[0].X, obs[1].X)
	}
	if res.Scored != 1 || res.State.Score != 1 {
		t.Errorf("Expected the cleared obstacle to score regardless of order, got %+v", res)
	}
}

func TestGameDayNight(t *testing.T) {
	g := newTestGame(t, openPlayfield)

	g.Step(core.NewInputFrame(core.ActionToggleDayNight), tick)
	if g.DayNight().Target() != ModeNight {
		t.Fatal("Expected night target after toggle")
	}

	// Within the cooldown.
	g.Step(core.NewInputFrame(core.ActionToggleDayNight), tick)
	if g.DayNight().Target() != ModeNight {
		t.Error("Toggle within cooldown must be ignored")
	}

	for i := 0; i < 30; i++ {
		g.Step(idle(), tick)
	}
	if n := g.State().Night; n != 1 {
		t.Errorf("Expected full night, got %v", n)
	}

	g.Step(core.NewInputFrame(core.ActionToggleDayNight), tick)
	if g.DayNight().Target() != ModeDay {
		t.Error("Toggle after cooldown must be accepted")
	}
}

func TestGameDayNightDuringGameOver(t *testing.T) {
	g := newTestGame(t, nil)
	blockAhead(g)
	g.Step(idle(), tick)

	g.Step(core.NewInputFrame(core.ActionToggleDayNight), tick)
	for i := 0; i < 30; i++ {
		g.Step(idle(), tick)
	}
	if g.State().Night != 1 {
		t.Errorf("Expected the transition to run after game over, got %v", g.State().Night)
	}

	g.Step(core.NewInputFrame(core.ActionRestart), tick)
	if g.State().Night != 1 || g.DayNight().Target() != ModeNight {
		t.Error("Restart must keep the day/night state")
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() (*Game, core.GameState) {
		g := newTestGame(t, nil)
		var state core.GameState
		for i := 0; i < 600; i++ {
			in := core.NewInputFrame()
			if i%18 == 0 {
				in.Set(core.ActionJump)
			}
			if i == 400 {
				in.Set(core.ActionRestart)
			}
			state = g.Step(in, tick).State
		}
		return g, state
	}

	g1, s1 := run()
	g2, s2 := run()

	if s1 != s2 {
		t.Errorf("Determinism failed: %+v vs %+v", s1, s2)
	}
	if g1.Actor().Pos != g2.Actor().Pos {
		t.Errorf("Determinism failed: actor %+v vs %+v", g1.Actor().Pos, g2.Actor().Pos)
	}
	o1, o2 := g1.Obstacles(), g2.Obstacles()
	if len(o1) != len(o2) {
		t.Fatalf("Determinism failed: %d vs %d obstacles", len(o1), len(o2))
	}
	for i := range o1 {
		if o1[i].X != o2[i].X || o1[i].GapTop != o2[i].GapTop {
			t.Errorf("obstacle %d differs", i)
		}
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(t, openPlayfield)
	for i := 0; i < 50; i++ {
		g.Step(core.NewInputFrame(core.ActionToggleDayNight), tick)
	}

	g.Reset(7)

	s := g.State()
	if s.Score != 0 || s.Ticks != 0 || s.Night != 0 || s.GameOver {
		t.Errorf("Reset should start a fresh session, got %+v", s)
	}
	if g.Seed() != 7 || g.Clock() != 0 {
		t.Errorf("unexpected seed %d / clock %v", g.Seed(), g.Clock())
	}
}

func TestGameFPS(t *testing.T) {
	g := newTestGame(t, openPlayfield)

	g.Step(idle(), 16*time.Millisecond)
	if g.FPS() != 62.5 {
		t.Errorf("Expected first sample 62.5, got %v", g.FPS())
	}
	g.Step(idle(), 20*time.Millisecond)
	if math.Abs(g.FPS()-61.25) > 1e-9 {
		t.Errorf("Expected smoothed 61.25, got %v", g.FPS())
	}
	g.Step(idle(), 0)
	if math.Abs(g.FPS()-61.25) > 1e-9 {
		t.Errorf("Zero dt must not change FPS, got %v", g.FPS())
	}
}

func hasText(r *core.Raster, s string) bool {
	for _, run := range r.Texts() {
		if strings.Contains(run.Text, s) {
			return true
		}
	}
	return false
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, nil)
	r := core.NewRaster(100, 150, 400, 600)

	g.Step(idle(), tick)
	g.Render(r)
	if !hasText(r, "Score: 0") || !hasText(r, "Press N to toggle day/night") || !hasText(r, "FPS: 62") {
		t.Errorf("HUD missing, texts=%+v", r.Texts())
	}
	if got := r.At(50, 2); got == core.Black {
		t.Error("Expected the sky to be painted")
	}

	r.Clear()
	g.Step(core.NewInputFrame(core.ActionPause), tick)
	g.Render(r)
	if !hasText(r, "PAUSED") {
		t.Error("Expected pause banner")
	}
	g.Step(core.NewInputFrame(core.ActionPause), tick)

	g.Step(core.NewInputFrame(core.ActionToggleDayNight), tick)
	for i := 0; i < 30 && !g.State().GameOver; i++ {
		g.Step(idle(), tick)
	}

	blockAhead(g)
	g.actor.Pos.Y = 300
	g.actor.Velocity = 0
	g.Step(idle(), tick)
	if !g.State().GameOver {
		t.Fatal("Expected game over")
	}

	r.Clear()
	g.Render(r)
	for _, s := range []string{"Game Over!", "Press R to restart", "Final Score:"} {
		if !hasText(r, s) {
			t.Errorf("Expected %q on the game over panel", s)
		}
	}
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatalf("Expected %q to be registered", GameID)
	}

	g, err := registry.Create(GameID, config.Default(), 3)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Seed() != 3 {
		t.Errorf("Expected seed 3, got %d", g.Seed())
	}

	bad := config.Default()
	bad.Obstacles.Gap = 400
	if _, err := registry.Create(GameID, bad, 3); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
