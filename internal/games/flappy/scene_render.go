package flappy

import (
	"math"

	"github.com/vovakirdan/flappy3d/internal/core"
)

const (
	sunRadius  = 40
	moonRadius = 30
	bandStep   = 3
)

// Render draws the background for the given night factor, back to front.
func (s *Scene) Render(c core.Canvas, night float64) {
	s.renderSky(c, night)
	s.renderStars(c, night)
	s.renderSun(c, night)
	s.renderMoon(c, night)
	for i := range s.Mountains {
		s.renderMountain(c, &s.Mountains[i], night)
	}
	for _, t := range s.Trees {
		drawTree(c, t, night)
	}
	s.renderClouds(c, night)
}

func (s *Scene) renderSky(c core.Canvas, night float64) {
	for line := 0; line < int(s.floorY); line++ {
		c.FillRect(core.NewRect(0, float64(line), s.width, 1), skyAt(line, night).Opaque())
	}
}

func (s *Scene) renderStars(c core.Canvas, night float64) {
	for _, st := range s.Stars {
		alpha := int(255 * night * st.Brightness)
		if alpha <= 0 {
			continue
		}
		b := min(255, alpha)
		if s.twinkle.Float64() > 0.99 {
			b = min(255, b+50)
		}
		c.FillCircle(st.Pos, 1, gray(b).Opaque())
	}
}

func (s *Scene) renderSun(c core.Canvas, night float64) {
	alpha := int(255 * (1 - night))
	if alpha <= 0 {
		return
	}
	c.FillCircle(s.sun, sunRadius, colorSun.WithAlpha(uint8(min(255, alpha))))
	for i := range 5 {
		glow := core.Clamp(alpha-i*50, 0, 255)
		if glow > 10 {
			c.FillCircle(s.sun, sunRadius+float64(i*5), colorSunGlow.WithAlpha(uint8(glow)))
		}
	}
}

func (s *Scene) renderMoon(c core.Canvas, night float64) {
	alpha := int(255 * night)
	if alpha <= 0 {
		return
	}
	c.FillCircle(s.moon, moonRadius, colorMoon.WithAlpha(uint8(min(255, alpha))))
	if alpha > 100 {
		craters := []struct {
			dx, dy, r float64
		}{
			{-10, -15, 8}, {10, -5, 6}, {-15, 5, 7}, {5, 10, 9},
		}
		for _, cr := range craters {
			c.FillCircle(s.moon.Add(core.Vec{X: cr.dx, Y: cr.dy}), cr.r, colorCrater.Opaque())
		}
	}
	for i := range 3 {
		glow := core.Clamp(alpha-i*70, 0, 255)
		if glow > 10 {
			c.FillCircle(s.moon, moonRadius+float64(i*5), colorMoonGlow.WithAlpha(uint8(glow)))
		}
	}
}

func (s *Scene) renderMountain(c core.Canvas, m *Mountain, night float64) {
	shadow := shadeMountainShadow.At(night)
	c.FillPolygon(m.Outline, shadow.Opaque())

	// Horizontal bands across the silhouette, shaded by height.
	for i := 0; i < int(m.Height); i += bandStep {
		level := s.floorY - float64(i)
		first, last, ok := spanAtLevel(m.Outline, level)
		if !ok {
			continue
		}
		col := mountainBand(float64(i)/m.Height, night).Opaque()
		c.DrawLine(core.Vec{X: first, Y: level}, core.Vec{X: last, Y: level}, col)
	}

	rock := shadow.Offset(-20, -10, -5).Opaque()
	highlight := shadow.Offset(30, 20, 10).Opaque()
	for _, b := range m.Texture {
		c.FillCircle(b.Center, b.Radius, rock)
		third := math.Floor(b.Radius / 3)
		c.FillCircle(b.Center.Add(core.Vec{X: -third, Y: -third}), math.Floor(b.Radius/2), highlight)
	}

	if len(m.Snow) >= 3 {
		snow := make([]core.Vec, 0, len(m.Snow)+1)
		snow = append(snow, m.Snow...)
		snow = append(snow, core.Vec{X: m.Snow[len(m.Snow)-1].X, Y: m.Snow[0].Y})
		c.FillPolygon(snow, shadeSnow.At(night).Opaque())
	}

	for _, t := range m.Trees {
		drawTree(c, t, night)
	}
}

// spanAtLevel returns the x range of the outline points at or above level.
func spanAtLevel(outline []core.Vec, level float64) (float64, float64, bool) {
	first, last, n := 0.0, 0.0, 0
	for _, p := range outline {
		if p.Y > level {
			continue
		}
		if n == 0 {
			first = p.X
		}
		last = p.X
		n++
	}
	return first, last, n >= 2
}

func (s *Scene) renderClouds(c core.Canvas, night float64) {
	alpha := uint8(max(50, int(255*(1-night*0.7))))
	body := colorCloud.WithAlpha(alpha)
	shade := colorCloudDark.WithAlpha(alpha)

	for _, cl := range s.Clouds {
		x, y, k := cl.Pos.X, cl.Pos.Y, cl.Scale
		c.FillEllipse(core.NewRect(x+5, y+5, 60*k, 30*k), shade)
		c.FillEllipse(core.NewRect(x, y, 60*k, 30*k), body)
		c.FillEllipse(core.NewRect(x+20*k, y-10*k, 40*k, 25*k), body)
		c.FillEllipse(core.NewRect(x-20*k, y-5*k, 50*k, 25*k), body)
	}
}

// drawTree draws a trunk with three leaf layers shrinking toward the top.
func drawTree(c core.Canvas, t Tree, night float64) {
	trunkH := t.Height * 0.4
	trunkW := t.Width * 0.3
	c.FillRect(core.NewRect(t.Base.X-math.Floor(trunkW/2), t.Base.Y-trunkH, trunkW, trunkH),
		shadeTrunk.At(night).Opaque())

	crown := t.Height * 0.6
	leaf := shadeLeaf.At(night).Opaque()
	for i := range 3 {
		k := float64(i)
		offset := k * crown * 0.3
		layerH := crown * 0.7 * (1 - k*0.2)
		half := math.Floor(t.Width * (1 - k*0.2) / 2)
		baseY := t.Base.Y - trunkH - offset
		c.FillPolygon([]core.Vec{
			{X: t.Base.X, Y: baseY - layerH},
			{X: t.Base.X - half, Y: baseY},
			{X: t.Base.X + half, Y: baseY},
		}, leaf)
	}
}
