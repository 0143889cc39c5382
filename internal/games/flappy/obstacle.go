package flappy

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/flappy3d/internal/config"
	"github.com/vovakirdan/flappy3d/internal/core"
)

// BlockStack is an ordered list of vertical offsets at which decorative
// blocks sit within one region of an obstacle.
type BlockStack []float64

// GenerateBlocks walks a region of the given span in steps and keeps each
// slot independently with the given chance.
func GenerateBlocks(rng *rand.Rand, span, step, chance float64) BlockStack {
	var stack BlockStack
	if step <= 0 {
		return stack
	}
	for off := 0.0; off < span; off += step {
		if rng.Float64() < chance {
			stack = append(stack, off)
		}
	}
	return stack
}

// Obstacle is a pair of block stacks with a gap between them, scrolling left.
// Only the blocks collide; empty slots are open space.
type Obstacle struct {
	X      float64    // Left edge
	GapTop float64    // Y where the gap starts
	Passed bool       // Whether the actor has cleared this obstacle
	Top    BlockStack // Offsets from the top of the playfield
	Bottom BlockStack // Offsets from the bottom of the gap

	width     float64
	gap       float64
	blockSize float64
	speed     float64
}

// NewObstacle builds an obstacle with its left edge at x.
// It fails with config.ErrInvalidConfig if the gap cannot fit the playfield.
func NewObstacle(rng *rand.Rand, x float64, cfg config.Config) (*Obstacle, error) {
	lo, hi := cfg.SpawnRange()
	if hi < lo {
		return nil, fmt.Errorf("flappy: cannot place obstacle: %w: spawn range [%v, %v] is empty",
			config.ErrInvalidConfig, lo, hi)
	}

	o := cfg.Obstacles
	gapTop := lo + float64(rng.Intn(int(math.Floor(hi-lo))+1))
	bottomSpan := cfg.Playfield.FloorY() - gapTop - o.Gap

	return &Obstacle{
		X:         x,
		GapTop:    gapTop,
		Top:       GenerateBlocks(rng, gapTop, o.BlockSize, o.BlockChance),
		Bottom:    GenerateBlocks(rng, bottomSpan, o.BlockSize, o.BlockChance),
		width:     o.Width,
		gap:       o.Gap,
		blockSize: o.BlockSize,
		speed:     cfg.Physics.ObstacleSpeed,
	}, nil
}

// Width returns the obstacle's horizontal extent.
func (o *Obstacle) Width() float64 {
	return o.width
}

// GapBottom returns the y-coordinate where the gap ends.
func (o *Obstacle) GapBottom() float64 {
	return o.GapTop + o.gap
}

// Advance moves the obstacle left by dt ticks of travel.
func (o *Obstacle) Advance(dt float64) {
	o.X -= o.speed * dt
}

// Blocks returns the collision box of every block, top stack first.
func (o *Obstacle) Blocks() []core.Rect {
	rects := make([]core.Rect, 0, len(o.Top)+len(o.Bottom))
	for _, off := range o.Top {
		rects = append(rects, core.NewRect(o.X, off, o.blockSize, o.blockSize))
	}
	for _, off := range o.Bottom {
		rects = append(rects, core.NewRect(o.X, o.GapBottom()+off, o.blockSize, o.blockSize))
	}
	return rects
}

// Intersects reports whether box overlaps any block.
func (o *Obstacle) Intersects(box core.Rect) bool {
	for _, off := range o.Top {
		if box.Intersects(core.NewRect(o.X, off, o.blockSize, o.blockSize)) {
			return true
		}
	}
	bottom := o.GapBottom()
	for _, off := range o.Bottom {
		if box.Intersects(core.NewRect(o.X, bottom+off, o.blockSize, o.blockSize)) {
			return true
		}
	}
	return false
}

// MarkPassed flags the obstacle once its trailing edge is left of actorX.
// It returns true only on the call that sets the flag.
func (o *Obstacle) MarkPassed(actorX float64) bool {
	if o.Passed || o.X+o.width >= actorX {
		return false
	}
	o.Passed = true
	return true
}

// Offscreen reports whether the obstacle has fully left the playfield.
func (o *Obstacle) Offscreen() bool {
	return o.X <= -o.width
}

// dinoOutline is a blocky dinosaur silhouette in unit coordinates.
var dinoOutline = []core.Vec{
	{X: 0.50, Y: 0.00}, {X: 0.95, Y: 0.00}, {X: 0.95, Y: 0.25}, {X: 0.75, Y: 0.25},
	{X: 0.75, Y: 0.32}, {X: 0.88, Y: 0.32}, {X: 0.88, Y: 0.40}, {X: 0.70, Y: 0.40},
	{X: 0.70, Y: 0.60}, {X: 0.60, Y: 0.72}, {X: 0.60, Y: 1.00}, {X: 0.50, Y: 1.00},
	{X: 0.50, Y: 0.80}, {X: 0.40, Y: 0.80}, {X: 0.40, Y: 1.00}, {X: 0.30, Y: 1.00},
	{X: 0.30, Y: 0.75}, {X: 0.15, Y: 0.65}, {X: 0.00, Y: 0.40}, {X: 0.10, Y: 0.40},
	{X: 0.25, Y: 0.52}, {X: 0.45, Y: 0.40}, {X: 0.50, Y: 0.35},
}

// Render draws every block as a silhouette with a drop shadow.
func (o *Obstacle) Render(c core.Canvas) {
	for _, r := range o.Blocks() {
		shape := make([]core.Vec, len(dinoOutline))
		for i, p := range dinoOutline {
			shape[i] = core.Vec{X: r.X + p.X*r.W, Y: r.Y + p.Y*r.H}
		}
		c.FillPolygon(translate(shape, core.Vec{X: shadowOffset, Y: shadowOffset}), colorShadow.WithAlpha(100))
		c.FillPolygon(shape, colorBlock.Opaque())
	}
}
