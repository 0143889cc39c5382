package flappy

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/flappy3d/internal/config"
)

func newTestScene(seed int64) *Scene {
	return NewScene(rand.New(rand.NewSource(seed)), config.Default())
}

func TestSceneCounts(t *testing.T) {
	cfg := config.Default()
	s := newTestScene(1)

	if len(s.Mountains) != cfg.Scene.Mountains {
		t.Errorf("Expected %d mountains, got %d", cfg.Scene.Mountains, len(s.Mountains))
	}
	if len(s.Trees) != cfg.Scene.GroundTrees {
		t.Errorf("Expected %d ground trees, got %d", cfg.Scene.GroundTrees, len(s.Trees))
	}
	if len(s.Stars) != cfg.Scene.Stars {
		t.Errorf("Expected %d stars, got %d", cfg.Scene.Stars, len(s.Stars))
	}
	if len(s.Clouds) != cfg.Scene.Clouds {
		t.Errorf("Expected %d clouds, got %d", cfg.Scene.Clouds, len(s.Clouds))
	}
}

func TestSceneMountainsSortedByHeight(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		s := newTestScene(seed)
		for i := 1; i < len(s.Mountains); i++ {
			if s.Mountains[i].Height < s.Mountains[i-1].Height {
				t.Fatalf("seed %d: mountain %d (h=%v) drawn after taller %v",
					seed, i, s.Mountains[i].Height, s.Mountains[i-1].Height)
			}
		}
	}
}

func TestSceneMountainGeometry(t *testing.T) {
	cfg := config.Default()
	floorY := cfg.Playfield.FloorY()

	for seed := int64(0); seed < 20; seed++ {
		for _, m := range newTestScene(seed).Mountains {
			if m.Height < 100 || m.Height > 250 || m.Width < 200 || m.Width > 350 {
				t.Fatalf("mountain out of range: h=%v w=%v", m.Height, m.Width)
			}
			if len(m.Outline) != cfg.Scene.SilhouetteSteps+1 {
				t.Fatalf("Expected %d outline points, got %d", cfg.Scene.SilhouetteSteps+1, len(m.Outline))
			}
			first, last := m.Outline[0], m.Outline[len(m.Outline)-1]
			if first.Y != floorY || last.Y != floorY {
				t.Errorf("outline must start and end on the floor line, got %v and %v", first.Y, last.Y)
			}
			for i := 1; i < len(m.Outline); i++ {
				if m.Outline[i].X < m.Outline[i-1].X {
					t.Fatalf("outline x not monotonic at %d", i)
				}
			}
			if m.HasSnow() && m.Height <= cfg.Scene.SnowHeight {
				t.Errorf("mountain of height %v must not carry snow", m.Height)
			}
			if n := len(m.Trees); n < 2 || n > 6 {
				t.Errorf("Expected 2-6 trees per mountain, got %d", n)
			}
			if n := len(m.Texture); n < 3 || n > 8 {
				t.Errorf("Expected 3-8 texture blobs, got %d", n)
			}
		}
	}
}

func TestSceneStarsAndClouds(t *testing.T) {
	cfg := config.Default()
	s := newTestScene(4)

	for _, st := range s.Stars {
		if st.Brightness < 0.2 || st.Brightness > 1 {
			t.Errorf("star brightness %v out of [0.2, 1]", st.Brightness)
		}
		if st.Pos.Y < 10 || st.Pos.Y > cfg.Playfield.FloorY()-50 {
			t.Errorf("star at y=%v outside the sky", st.Pos.Y)
		}
	}
	for _, c := range s.Clouds {
		if c.Speed < 0.2 || c.Speed > 0.8 {
			t.Errorf("cloud speed %v out of [0.2, 0.8]", c.Speed)
		}
		if c.Scale < 0.7 || c.Scale > 1.3 {
			t.Errorf("cloud scale %v out of [0.7, 1.3]", c.Scale)
		}
	}
}

func TestSceneDeterministic(t *testing.T) {
	a, b := newTestScene(42), newTestScene(42)

	if !reflect.DeepEqual(a.Mountains, b.Mountains) {
		t.Error("Same seed produced different mountains")
	}
	if !reflect.DeepEqual(a.Stars, b.Stars) {
		t.Error("Same seed produced different stars")
	}
	if !reflect.DeepEqual(a.Clouds, b.Clouds) {
		t.Error("Same seed produced different clouds")
	}

	c := newTestScene(43)
	if reflect.DeepEqual(a.Mountains, c.Mountains) {
		t.Error("Different seeds produced identical mountains")
	}
}

func TestSceneUpdateMovesOnlyClouds(t *testing.T) {
	s := newTestScene(8)
	first := s.Mountains[0]
	before := make([]Cloud, len(s.Clouds))
	copy(before, s.Clouds)

	s.Update(1)

	for i, c := range s.Clouds {
		if want := before[i].Pos.X - before[i].Speed; c.Pos.X != want {
			t.Errorf("cloud %d at x=%v, expected %v", i, c.Pos.X, want)
		}
	}
	if !reflect.DeepEqual(first, s.Mountains[0]) {
		t.Error("Update must not touch mountains")
	}
}

func TestSceneCloudWraps(t *testing.T) {
	cfg := config.Default()
	s := newTestScene(9)
	s.Clouds[0].Pos.X = -99.9
	s.Clouds[0].Speed = 0.5

	s.Update(1)

	c := s.Clouds[0]
	if c.Pos.X != cfg.Playfield.Width {
		t.Errorf("Expected wrapped cloud at x=%v, got %v", cfg.Playfield.Width, c.Pos.X)
	}
	if c.Pos.Y < 20 || c.Pos.Y > cfg.Playfield.Height/3 {
		t.Errorf("wrapped cloud altitude %v out of [20, %v]", c.Pos.Y, cfg.Playfield.Height/3)
	}
}

func TestSceneEmpty(t *testing.T) {
	cfg := config.Default()
	cfg.Scene = config.Scene{}

	s := NewScene(rand.New(rand.NewSource(1)), cfg)
	if len(s.Mountains)+len(s.Trees)+len(s.Stars)+len(s.Clouds) != 0 {
		t.Error("Expected an empty scene")
	}
	s.Update(1)
}
