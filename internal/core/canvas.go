package core

// Canvas is the drawing surface the game renders into. Coordinates are
// world units; the implementation decides how they map to the display.
type Canvas interface {
	// Bounds returns the drawable world area, origin at the top-left.
	Bounds() Rect

	// Fill paints the whole drawable area.
	Fill(c RGB)

	FillRect(r Rect, c RGBA)
	FillEllipse(r Rect, c RGBA)
	FillCircle(center Vec, radius float64, c RGBA)

	// FillPolygon fills a closed polygon using the non-zero winding rule.
	FillPolygon(pts []Vec, c RGBA)

	DrawLine(a, b Vec, c RGBA)

	// DrawText places text with its top-left corner at the given point.
	DrawText(at Vec, text string, c RGB)

	// TextWidth reports how wide text will be, in world units.
	TextWidth(text string) float64

	// LineHeight reports the height of one line of text, in world units.
	LineHeight() float64
}
