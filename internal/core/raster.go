package core

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"unicode/utf8"

	"golang.org/x/image/vector"
)

// PixelsPerRow is how many raster pixels one terminal row holds.
// Each cell shows an upper and a lower half block.
const PixelsPerRow = 2

// kappa places cubic control points for a quarter ellipse.
const kappa = 0.5522847498

// TextRun is a string placed on the terminal cell grid.
type TextRun struct {
	Col, Row int
	Text     string
	Color    RGB
}

// Raster is a pixel-buffer Canvas. A fixed-size world is scaled uniformly
// to fit the buffer and centered, leaving black letterbox bars. Curved and
// slanted shapes are anti-aliased. Text is kept as runs on the cell grid
// and composited by the platform.
type Raster struct {
	width  int
	height int
	pix    []RGB
	texts  []TextRun

	ras   *vector.Rasterizer
	cover []uint8 // coverage mask scratch

	world  Rect
	scale  float64
	offX   float64
	offY   float64
	viewX0 int
	viewY0 int
	viewX1 int
	viewY1 int
}

// NewRaster creates a raster of w x h pixels showing a world of the given size.
func NewRaster(w, h int, worldW, worldH float64) *Raster {
	r := &Raster{world: NewRect(0, 0, worldW, worldH)}
	r.Resize(w, h)
	return r
}

// Resize changes the pixel dimensions and recomputes the world mapping.
func (r *Raster) Resize(w, h int) {
	r.width = max(w, 1)
	r.height = max(h, 1)
	r.pix = make([]RGB, r.width*r.height)
	r.texts = r.texts[:0]

	sx := float64(r.width) / r.world.W
	sy := float64(r.height) / r.world.H
	r.scale = math.Min(sx, sy)
	r.offX = math.Floor((float64(r.width) - r.world.W*r.scale) / 2)
	r.offY = math.Floor((float64(r.height) - r.world.H*r.scale) / 2)

	r.viewX0 = int(r.offX)
	r.viewY0 = int(r.offY)
	r.viewX1 = min(r.width, int(math.Ceil(r.offX+r.world.W*r.scale)))
	r.viewY1 = min(r.height, int(math.Ceil(r.offY+r.world.H*r.scale)))
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int {
	return r.width
}

// Height returns the raster height in pixels.
func (r *Raster) Height() int {
	return r.height
}

// Scale returns the number of pixels per world unit.
func (r *Raster) Scale() float64 {
	return r.scale
}

// Clear blanks every pixel and drops all text.
func (r *Raster) Clear() {
	for i := range r.pix {
		r.pix[i] = Black
	}
	r.texts = r.texts[:0]
}

// At returns the pixel at (x, y). Out-of-bounds reads return black.
func (r *Raster) At(x, y int) RGB {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return Black
	}
	return r.pix[y*r.width+x]
}

// Texts returns the text runs drawn since the last Clear.
func (r *Raster) Texts() []TextRun {
	return r.texts
}

// PixelOf maps a world point to pixel coordinates.
func (r *Raster) PixelOf(v Vec) (float64, float64) {
	return r.offX + v.X*r.scale, r.offY + v.Y*r.scale
}

// Bounds implements Canvas.
func (r *Raster) Bounds() Rect {
	return r.world
}

// Fill implements Canvas.
func (r *Raster) Fill(c RGB) {
	for y := r.viewY0; y < r.viewY1; y++ {
		for x := r.viewX0; x < r.viewX1; x++ {
			r.pix[y*r.width+x] = c
		}
	}
}

// FillRect implements Canvas.
func (r *Raster) FillRect(rect Rect, c RGBA) {
	if c.A == 0 || rect.W <= 0 || rect.H <= 0 {
		return
	}
	x0, y0 := r.PixelOf(Vec{rect.X, rect.Y})
	x1, y1 := r.PixelOf(Vec{rect.Right(), rect.Bottom()})
	i0, i1 := pixelSpan(x0, x1)
	j0, j1 := pixelSpan(y0, y1)
	for y := j0; y < j1; y++ {
		for x := i0; x < i1; x++ {
			r.blend(x, y, c)
		}
	}
}

// FillEllipse implements Canvas.
func (r *Raster) FillEllipse(rect Rect, c RGBA) {
	if c.A == 0 || rect.W <= 0 || rect.H <= 0 {
		return
	}
	x0, y0 := r.PixelOf(Vec{rect.X, rect.Y})
	x1, y1 := r.PixelOf(Vec{rect.Right(), rect.Bottom()})
	cx, cy := (x0+x1)/2, (y0+y1)/2
	rx, ry := (x1-x0)/2, (y1-y0)/2

	// Sub-pixel shapes still leave a mark.
	if rx < 0.5 && ry < 0.5 {
		r.blend(int(math.Floor(cx)), int(math.Floor(cy)), c)
		return
	}

	r.fillPath(x0, y0, x1, y1, c, func(p pen) {
		kx, ky := rx*kappa, ry*kappa
		p.moveTo(cx+rx, cy)
		p.cubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
		p.cubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
		p.cubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
		p.cubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	})
}

// FillCircle implements Canvas.
func (r *Raster) FillCircle(center Vec, radius float64, c RGBA) {
	r.FillEllipse(RectAround(center, radius), c)
}

// FillPolygon implements Canvas.
func (r *Raster) FillPolygon(pts []Vec, c RGBA) {
	if c.A == 0 || len(pts) < 3 {
		return
	}
	px := make([]Vec, len(pts))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, p := range pts {
		x, y := r.PixelOf(p)
		px[i] = Vec{x, y}
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	r.fillPath(minX, minY, maxX, maxY, c, func(p pen) {
		p.moveTo(px[0].X, px[0].Y)
		for _, v := range px[1:] {
			p.lineTo(v.X, v.Y)
		}
	})
}

// DrawLine implements Canvas. Lines are one pixel wide with square caps.
func (r *Raster) DrawLine(a, b Vec, c RGBA) {
	if c.A == 0 {
		return
	}
	x0, y0 := r.PixelOf(a)
	x1, y1 := r.PixelOf(b)
	length := math.Hypot(x1-x0, y1-y0)
	if length < 1e-9 {
		r.blend(int(math.Floor(x0)), int(math.Floor(y0)), c)
		return
	}

	// Half-pixel steps along and across the line.
	ux, uy := (x1-x0)/length/2, (y1-y0)/length/2
	nx, ny := -uy, ux
	corners := [4]Vec{
		{x0 - ux + nx, y0 - uy + ny},
		{x1 + ux + nx, y1 + uy + ny},
		{x1 + ux - nx, y1 + uy - ny},
		{x0 - ux - nx, y0 - uy - ny},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range corners {
		minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
		minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
	}

	r.fillPath(minX, minY, maxX, maxY, c, func(p pen) {
		p.moveTo(corners[0].X, corners[0].Y)
		for _, v := range corners[1:] {
			p.lineTo(v.X, v.Y)
		}
	})
}

// pen adds pixel-space path segments to a rasterizer whose origin sits at
// (ox, oy) in the raster.
type pen struct {
	z      *vector.Rasterizer
	ox, oy float64
}

func (p pen) moveTo(x, y float64) {
	p.z.MoveTo(float32(x-p.ox), float32(y-p.oy))
}

func (p pen) lineTo(x, y float64) {
	p.z.LineTo(float32(x-p.ox), float32(y-p.oy))
}

func (p pen) cubeTo(bx, by, cx, cy, dx, dy float64) {
	p.z.CubeTo(
		float32(bx-p.ox), float32(by-p.oy),
		float32(cx-p.ox), float32(cy-p.oy),
		float32(dx-p.ox), float32(dy-p.oy),
	)
}

// fillPath rasterizes the closed path traced by trace, whose pixel-space
// bounding box is (x0, y0)-(x1, y1), and blends c through its coverage.
// Only pixels inside the viewport are touched.
func (r *Raster) fillPath(x0, y0, x1, y1 float64, c RGBA, trace func(p pen)) {
	clip := image.Rect(
		int(math.Floor(x0)), int(math.Floor(y0)),
		int(math.Ceil(x1)), int(math.Ceil(y1)),
	).Intersect(image.Rect(r.viewX0, r.viewY0, r.viewX1, r.viewY1))
	if clip.Empty() {
		return
	}
	w, h := clip.Dx(), clip.Dy()

	if r.ras == nil {
		r.ras = vector.NewRasterizer(w, h)
	} else {
		r.ras.Reset(w, h)
	}
	r.ras.DrawOp = draw.Src
	trace(pen{z: r.ras, ox: float64(clip.Min.X), oy: float64(clip.Min.Y)})
	r.ras.ClosePath()

	if cap(r.cover) < w*h {
		r.cover = make([]uint8, w*h)
	}
	mask := &image.Alpha{Pix: r.cover[:w*h], Stride: w, Rect: image.Rect(0, 0, w, h)}
	r.ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	for y := 0; y < h; y++ {
		row := mask.Pix[y*w : (y+1)*w]
		for x, cov := range row {
			if cov == 0 {
				continue
			}
			a := c
			a.A = uint8(uint32(c.A) * uint32(cov) / 255)
			r.blend(clip.Min.X+x, clip.Min.Y+y, a)
		}
	}
}

// DrawText implements Canvas.
func (r *Raster) DrawText(at Vec, text string, c RGB) {
	x, y := r.PixelOf(at)
	r.texts = append(r.texts, TextRun{
		Col:   int(math.Round(x)),
		Row:   int(math.Round(y)) / PixelsPerRow,
		Text:  text,
		Color: c,
	})
}

// TextWidth implements Canvas. One rune occupies one cell.
func (r *Raster) TextWidth(text string) float64 {
	return float64(utf8.RuneCountInString(text)) / r.scale
}

// LineHeight implements Canvas.
func (r *Raster) LineHeight() float64 {
	return PixelsPerRow / r.scale
}

// Image returns a copy of the pixel buffer.
func (r *Raster) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			p := r.pix[y*r.width+x]
			img.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}

// blend composites c over the pixel at (x, y), clipped to the viewport.
func (r *Raster) blend(x, y int, c RGBA) {
	if x < r.viewX0 || x >= r.viewX1 || y < r.viewY0 || y >= r.viewY1 {
		return
	}
	i := y*r.width + x
	r.pix[i] = Over(r.pix[i], c)
}

// pixelSpan converts a continuous [a, b) range into pixel indices,
// covering at least one pixel for any non-empty range.
func pixelSpan(a, b float64) (int, int) {
	i0 := int(math.Floor(a + 0.5))
	i1 := int(math.Floor(b + 0.5))
	if i1 <= i0 && b > a {
		i1 = i0 + 1
	}
	return i0, i1
}
