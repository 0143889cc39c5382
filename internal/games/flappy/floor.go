package flappy

import (
	"math/rand"

	"github.com/vovakirdan/flappy3d/internal/config"
	"github.com/vovakirdan/flappy3d/internal/core"
)

// Floor texture layout, in world units.
const (
	clumpStepX = 30
	clumpStepY = 20
	clumpW     = 15
	clumpH     = 10
	grassH     = 5
	tuftStep   = 40
)

// clump is one dirt patch of the floor texture.
type clump struct {
	rect  core.Rect
	shade Shade
}

// Floor is the static ground strip below the playfield.
type Floor struct {
	top    float64
	width  float64
	height float64
	clumps []clump
}

// NewFloor lays out the dirt texture once; it never changes afterwards.
func NewFloor(rng *rand.Rand, cfg config.Config) *Floor {
	f := &Floor{
		top:    cfg.Playfield.FloorY(),
		width:  cfg.Playfield.Width,
		height: cfg.Playfield.FloorHeight,
	}
	for x := 0; x < int(f.width); x += clumpStepX {
		for y := 0; y < int(f.height); y += clumpStepY {
			d := randIntN(rng, 130, 150)
			n := randIntN(rng, 40, 55)
			f.clumps = append(f.clumps, clump{
				rect: core.NewRect(float64(x), f.top+float64(y), clumpW, clumpH),
				shade: Shade{
					Day:   core.RGB{uint8(d), uint8(d / 2), uint8(d / 3)},
					Night: core.RGB{uint8(n), uint8(n / 2), uint8(n / 5)},
				},
			})
		}
	}
	return f
}

// Render draws the soil gradient, dirt clumps, grass strip and tufts.
func (f *Floor) Render(c core.Canvas, night float64) {
	for row := 0; row < int(f.height); row++ {
		c.FillRect(core.NewRect(0, f.top+float64(row), f.width, 1), soilAt(row, night).Opaque())
	}
	for _, cl := range f.clumps {
		c.FillRect(cl.rect, cl.shade.At(night).Opaque())
	}

	c.FillRect(core.NewRect(0, f.top, f.width, grassH), shadeGrass.At(night).Opaque())

	tuft := shadeTuft.At(night).Opaque()
	tuftShadow := shadeTuftShadow.At(night).Opaque()
	for x := 0.0; x < f.width; x += tuftStep {
		c.FillEllipse(core.NewRect(x+2, f.top+3, 20, 7), tuftShadow)
		c.FillEllipse(core.NewRect(x, f.top, 20, 7), tuft)
	}
}
