package core

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque 24-bit color.
type RGB struct {
	R, G, B uint8
}

// RGBA is a color with straight (non-premultiplied) alpha.
type RGBA struct {
	R, G, B, A uint8
}

// Common colors used by the HUD and overlays.
var (
	White = RGB{255, 255, 255}
	Black = RGB{0, 0, 0}
)

// Opaque returns c with full alpha.
func (c RGB) Opaque() RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// WithAlpha returns c with the given alpha.
func (c RGB) WithAlpha(a uint8) RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// Offset adds per-channel deltas, saturating at 0 and 255.
func (c RGB) Offset(dr, dg, db int) RGB {
	return RGB{
		R: uint8(Clamp(int(c.R)+dr, 0, 255)),
		G: uint8(Clamp(int(c.G)+dg, 0, 255)),
		B: uint8(Clamp(int(c.B)+db, 0, 255)),
	}
}

// Lerp blends c toward to by t in sRGB space. t is clamped to [0, 1],
// so Lerp(day, night, 0) is day and Lerp(day, night, 1) is night.
func (c RGB) Lerp(to RGB, t float64) RGB {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return to
	}
	r, g, b := c.colorful().BlendRgb(to.colorful(), t).RGB255()
	return RGB{R: r, G: g, B: b}
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// Over composites src over dst using src's alpha.
func Over(dst RGB, src RGBA) RGB {
	switch src.A {
	case 0:
		return dst
	case 255:
		return RGB{R: src.R, G: src.G, B: src.B}
	}
	return dst.Lerp(RGB{R: src.R, G: src.G, B: src.B}, float64(src.A)/255)
}
