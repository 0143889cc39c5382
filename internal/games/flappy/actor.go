package flappy

import (
	"math"

	"github.com/vovakirdan/flappy3d/internal/config"
	"github.com/vovakirdan/flappy3d/internal/core"
)

// shadowOffset is how far drop shadows are cast, down and to the right.
const shadowOffset = 8

// Actor is the falling character the player steers.
type Actor struct {
	Pos      core.Vec // Center of the sprite
	Velocity float64  // Vertical velocity, positive = down
	Rotation float64  // Visual tilt in degrees

	size    float64 // Visual half extent
	hitHalf float64 // Half extent of the collision box
	floorY  float64
	phys    config.Physics
}

// NewActor places a fresh actor at the configured start position.
func NewActor(cfg config.Config) *Actor {
	return &Actor{
		Pos:     core.Vec{X: cfg.Actor.StartX, Y: cfg.Actor.StartY},
		size:    cfg.Actor.Size,
		hitHalf: cfg.Actor.HitSize / 2,
		floorY:  cfg.Playfield.FloorY(),
		phys:    cfg.Physics,
	}
}

// Integrate advances the actor by dt ticks of gravity.
// The sprite never sinks below the floor line; touching it stops the fall.
func (a *Actor) Integrate(dt float64) {
	a.Velocity += a.phys.Gravity * dt
	a.Pos.Y += a.Velocity * dt

	if a.Pos.Y+a.size > a.floorY {
		a.Pos.Y = a.floorY - a.size
		a.Velocity = 0
	}

	a.Rotation = core.ClampF(a.Velocity*a.phys.RotationFactor, a.phys.MinRotation, a.phys.MaxRotation)
}

// Jump replaces the current velocity with the jump velocity.
func (a *Actor) Jump() {
	a.Velocity = a.phys.JumpVelocity
}

// BoundingBox returns the collision box. It is tighter than the sprite.
func (a *Actor) BoundingBox() core.Rect {
	return core.RectAround(a.Pos, a.hitHalf)
}

// Render draws the actor and its drop shadow.
func (a *Actor) Render(c core.Canvas) {
	body := a.outline(ellipsePoints(core.Vec{}, a.size, a.size*0.75, 16))
	wing := a.outline(ellipsePoints(core.Vec{X: -a.size * 0.2, Y: a.size * 0.1}, a.size*0.5, a.size*0.3, 10))
	beak := a.outline([]core.Vec{
		{X: a.size * 0.8, Y: -a.size * 0.15},
		{X: a.size * 1.3, Y: 0},
		{X: a.size * 0.8, Y: a.size * 0.2},
	})
	eye := a.Pos.Add(core.Vec{X: a.size * 0.45, Y: -a.size * 0.3}.Rotate(a.Rotation))

	c.FillPolygon(translate(body, core.Vec{X: shadowOffset, Y: shadowOffset}), colorShadow.WithAlpha(100))
	c.FillPolygon(body, colorBirdBody.Opaque())
	c.FillPolygon(wing, colorBirdWing.Opaque())
	c.FillPolygon(beak, colorBirdBeak.Opaque())
	c.FillCircle(eye, a.size*0.22, colorBirdEye.Opaque())
	c.FillCircle(eye.Add(core.Vec{X: a.size * 0.08}), a.size*0.1, colorPupil.Opaque())
}

// outline rotates local sprite points by the current tilt and moves them
// to the actor's position.
func (a *Actor) outline(local []core.Vec) []core.Vec {
	out := make([]core.Vec, len(local))
	for i, p := range local {
		out[i] = a.Pos.Add(p.Rotate(a.Rotation))
	}
	return out
}

func ellipsePoints(center core.Vec, rx, ry float64, n int) []core.Vec {
	pts := make([]core.Vec, n)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = core.Vec{X: center.X + rx*math.Cos(theta), Y: center.Y + ry*math.Sin(theta)}
	}
	return pts
}

func translate(pts []core.Vec, d core.Vec) []core.Vec {
	out := make([]core.Vec, len(pts))
	for i, p := range pts {
		out[i] = p.Add(d)
	}
	return out
}
