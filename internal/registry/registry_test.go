package registry_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/flappy3d/internal/config"
	"github.com/vovakirdan/flappy3d/internal/games/flappy"
	"github.com/vovakirdan/flappy3d/internal/registry"
)

func TestRegisteredGames(t *testing.T) {
	if !registry.Exists(flappy.GameID) {
		t.Fatalf("%q not registered", flappy.GameID)
	}
	if registry.Exists("pong") {
		t.Error("unexpected game pong")
	}

	games := registry.List()
	if len(games) != 1 || games[0].ID != flappy.GameID || games[0].Title == "" {
		t.Errorf("List() = %+v", games)
	}
}

func TestCreate(t *testing.T) {
	g, err := registry.Create(flappy.GameID, config.Default(), 42)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != flappy.GameID || g.Seed() != 42 {
		t.Errorf("got id %q seed %d", g.ID(), g.Seed())
	}
}

func TestCreateErrors(t *testing.T) {
	if _, err := registry.Create("nope", config.Default(), 1); err == nil {
		t.Error("unknown game: expected error")
	}

	cfg := config.Default()
	cfg.Obstacles.Gap = cfg.Playfield.Height
	_, err := registry.Create(flappy.GameID, cfg, 1)
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("got %v, want ErrInvalidConfig", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	registry.Register(flappy.GameID, func(cfg config.Config, seed int64) (registry.Game, error) {
		return flappy.New(cfg, seed)
	})
}
