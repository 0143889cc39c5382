package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy3d/internal/core"
)

// upperHalf shows the upper pixel in the foreground color and the lower
// pixel in the background color.
const upperHalf = '▀'

// cell is one terminal cell of a rendered raster.
type cell struct {
	ch     rune
	fg, bg core.RGB
}

// cellColors is the style key for a run of cells.
type cellColors struct {
	fg, bg core.RGB
}

// RenderRaster converts a raster into styled terminal rows, two pixels per
// cell. Text runs are drawn over the pixels on a background that averages
// the two halves of the cell. Adjacent cells with the same colors share one
// style to minimize ANSI escape sequences.
func RenderRaster(re *lipgloss.Renderer, r *core.Raster) string {
	if re == nil {
		re = lipgloss.DefaultRenderer()
	}

	cols := r.Width()
	rows := r.Height() / core.PixelsPerRow
	grid := make([][]cell, rows)
	for y := range rows {
		line := make([]cell, cols)
		for x := range cols {
			line[x] = cell{
				ch: upperHalf,
				fg: r.At(x, y*core.PixelsPerRow),
				bg: r.At(x, y*core.PixelsPerRow+1),
			}
		}
		grid[y] = line
	}

	for _, t := range r.Texts() {
		if t.Row < 0 || t.Row >= rows {
			continue
		}
		line := grid[t.Row]
		col := t.Col
		for _, ch := range t.Text {
			if col >= 0 && col < cols {
				c := &line[col]
				if c.ch == upperHalf {
					c.bg = c.fg.Lerp(c.bg, 0.5)
				}
				c.ch = ch
				c.fg = t.Color
			}
			col++
		}
	}

	styles := make(map[cellColors]lipgloss.Style)
	styleFor := func(k cellColors) lipgloss.Style {
		if s, ok := styles[k]; ok {
			return s
		}
		s := re.NewStyle().
			Foreground(lipgloss.Color(k.fg.Hex())).
			Background(lipgloss.Color(k.bg.Hex()))
		styles[k] = s
		return s
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(cols*rows*8 + rows)

	for y, line := range grid {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same colors
		x := 0
		for x < cols {
			k := cellColors{fg: line[x].fg, bg: line[x].bg}

			var run strings.Builder
			for x < cols && line[x].fg == k.fg && line[x].bg == k.bg {
				run.WriteRune(line[x].ch)
				x++
			}
			sb.WriteString(styleFor(k).Render(run.String()))
		}
	}
	return sb.String()
}
