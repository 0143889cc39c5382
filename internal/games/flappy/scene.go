package flappy

import (
	"math"
	"math/rand"
	"sort"

	"github.com/vovakirdan/flappy3d/internal/config"
	"github.com/vovakirdan/flappy3d/internal/core"
)

// Tree is a trunk topped with three stacked leaf layers.
type Tree struct {
	Base   core.Vec // Bottom center of the trunk
	Height float64
	Width  float64
}

// Blob is a round rock texture on a mountain face.
type Blob struct {
	Center core.Vec
	Radius float64
}

// Mountain is one background peak. Geometry is fixed after generation.
type Mountain struct {
	X       float64 // Center of the base
	Height  float64
	Width   float64
	Outline []core.Vec // Closed silhouette, base corners included
	Snow    []core.Vec // Silhouette points above the snow line, empty without snow
	Texture []Blob
	Trees   []Tree
}

// HasSnow reports whether the mountain carries a snow cap.
func (m Mountain) HasSnow() bool {
	return len(m.Snow) > 0
}

// Star is a fixed point of the starfield.
type Star struct {
	Pos        core.Vec
	Brightness float64 // In [0.2, 1.0]
}

// Cloud drifts left at its own speed and wraps around.
type Cloud struct {
	Pos   core.Vec
	Speed float64
	Scale float64
}

// Scene is the decorative background. Only clouds move after generation.
type Scene struct {
	Mountains []Mountain // Sorted by ascending height, the draw order
	Trees     []Tree
	Stars     []Star
	Clouds    []Cloud

	sun     core.Vec
	moon    core.Vec
	width   float64
	height  float64
	floorY  float64
	wrap    float64
	rng     *rand.Rand // Cloud respawns
	twinkle *rand.Rand // Star flicker, used only while rendering
}

// NewScene generates a background layout from rng.
func NewScene(rng *rand.Rand, cfg config.Config) *Scene {
	p := cfg.Playfield
	s := &Scene{
		sun:    core.Vec{X: p.Width - 80, Y: 80},
		moon:   core.Vec{X: 80, Y: 80},
		width:  p.Width,
		height: p.Height,
		floorY: p.FloorY(),
		wrap:   cfg.Scene.CloudWrapMargin,
		rng:    rng,
	}
	s.twinkle = rand.New(rand.NewSource(rng.Int63()))

	w, floorY := int(p.Width), int(p.FloorY())

	s.Mountains = make([]Mountain, 0, cfg.Scene.Mountains)
	for range cfg.Scene.Mountains {
		s.Mountains = append(s.Mountains, generateMountain(rng, cfg))
	}
	sort.SliceStable(s.Mountains, func(i, j int) bool {
		return s.Mountains[i].Height < s.Mountains[j].Height
	})

	s.Trees = make([]Tree, 0, cfg.Scene.GroundTrees)
	for range cfg.Scene.GroundTrees {
		s.Trees = append(s.Trees, Tree{
			Base:   core.Vec{X: randInt(rng, 0, w), Y: p.FloorY()},
			Height: randInt(rng, 30, 70),
			Width:  randInt(rng, 15, 30),
		})
	}

	s.Stars = make([]Star, 0, cfg.Scene.Stars)
	for range cfg.Scene.Stars {
		s.Stars = append(s.Stars, Star{
			Pos:        core.Vec{X: randInt(rng, 0, w), Y: randInt(rng, 10, floorY-50)},
			Brightness: rng.Float64()*0.8 + 0.2,
		})
	}

	s.Clouds = make([]Cloud, 0, cfg.Scene.Clouds)
	for range cfg.Scene.Clouds {
		s.Clouds = append(s.Clouds, Cloud{
			Pos:   core.Vec{X: randInt(rng, 0, w), Y: s.cloudAltitude()},
			Speed: randUniform(rng, 0.2, 0.8),
			Scale: randUniform(rng, 0.7, 1.3),
		})
	}

	return s
}

// generateMountain lays out one peak: a parabolic profile roughened by
// low-pass filtered noise, plus its snow cap, rock texture and trees.
func generateMountain(rng *rand.Rand, cfg config.Config) Mountain {
	floorY := cfg.Playfield.FloorY()
	x := randInt(rng, -100, int(cfg.Playfield.Width)+100)
	h := randInt(rng, 100, 250)
	w := randInt(rng, 200, 350)
	half := math.Floor(w / 2)

	steps := cfg.Scene.SilhouetteSteps
	outline := make([]core.Vec, 0, steps+1)
	outline = append(outline, core.Vec{X: x - half, Y: floorY})
	last := 0.0
	for j := 1; j < steps; j++ {
		progress := float64(j) / float64(steps)
		profile := 1 - 4*(progress-0.5)*(progress-0.5)
		noise := math.Sin(float64(j)*0.5)*15 + randInt(rng, -8, 8)
		noise = (noise + last) / 2
		last = noise
		outline = append(outline, core.Vec{
			X: x - half + math.Floor(w*float64(j)/float64(steps)),
			Y: floorY - h*profile + noise,
		})
	}
	outline = append(outline, core.Vec{X: x + half, Y: floorY})

	m := Mountain{X: x, Height: h, Width: w, Outline: outline}

	if h > cfg.Scene.SnowHeight {
		snowLine := floorY - h + h*0.3
		for _, pt := range outline {
			if pt.Y <= snowLine {
				m.Snow = append(m.Snow, pt)
			}
		}
	}

	cx, ih, base := int(x), int(h), int(floorY)
	third := int(w) / 3
	for range randIntN(rng, 3, 8) {
		m.Texture = append(m.Texture, Blob{
			Center: core.Vec{
				X: randInt(rng, cx-third, cx+third),
				Y: randInt(rng, base-ih/2, base-ih/5),
			},
			Radius: randInt(rng, 10, 30),
		})
	}

	for range randIntN(rng, 2, 6) {
		m.Trees = append(m.Trees, Tree{
			Base: core.Vec{
				X: randInt(rng, cx-third, cx+third),
				Y: floorY - randInt(rng, 20, ih/3),
			},
			Height: randInt(rng, 15, 30),
			Width:  randInt(rng, 8, 15),
		})
	}

	return m
}

// Update drifts the clouds by dt ticks. A cloud that leaves on the left
// comes back on the right at a new altitude.
func (s *Scene) Update(dt float64) {
	for i := range s.Clouds {
		c := &s.Clouds[i]
		c.Pos.X -= c.Speed * dt
		if c.Pos.X+s.wrap < 0 {
			c.Pos.X = s.width
			c.Pos.Y = s.cloudAltitude()
		}
	}
}

func (s *Scene) cloudAltitude() float64 {
	return randInt(s.rng, 20, int(s.height)/3)
}

// randInt draws an integer uniformly from [lo, hi] as a float.
func randInt(rng *rand.Rand, lo, hi int) float64 {
	return float64(randIntN(rng, lo, hi))
}

func randIntN(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func randUniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
