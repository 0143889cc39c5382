package flappy

import (
	"fmt"

	"github.com/vovakirdan/flappy3d/internal/core"
)

const (
	hintText    = "Press N to toggle day/night"
	restartText = "Press R to restart"
	panelW      = 300
	panelH      = 120
	bevel       = 5
)

// renderHUD draws the score, the controls hint and the frame rate.
func renderHUD(c core.Canvas, score int, fps float64) {
	b := c.Bounds()
	c.DrawText(core.Vec{X: 10, Y: 10}, fmt.Sprintf("Score: %d", score), core.White)
	c.DrawText(core.Vec{X: 10, Y: 40}, hintText, core.White)

	fpsText := fmt.Sprintf("FPS: %d", int(fps))
	c.DrawText(core.Vec{X: b.W - 10 - c.TextWidth(fpsText), Y: 10}, fpsText, core.White)
}

// renderPaused dims the frame and shows a pause banner.
func renderPaused(c core.Canvas) {
	b := c.Bounds()
	c.FillRect(b, core.Black.WithAlpha(96))
	centerText(c, b.H/2-c.LineHeight()/2, "PAUSED")
}

// renderGameOver draws the beveled result panel over a darkened frame.
func renderGameOver(c core.Canvas, score int) {
	b := c.Bounds()
	c.FillRect(b, core.Black.WithAlpha(128))

	panel := core.NewRect(b.W/2-panelW/2, b.H/2-panelH/2, panelW, panelH)
	c.FillRect(panel.Translate(core.Vec{X: 10, Y: 10}), gray(20).Opaque())
	c.FillRect(panel, gray(70).Opaque())
	c.FillRect(core.NewRect(panel.X, panel.Y, panel.W, bevel), gray(100).Opaque())
	c.FillRect(core.NewRect(panel.X, panel.Y, bevel, panel.H), gray(50).Opaque())
	c.FillRect(core.NewRect(panel.Right()-bevel, panel.Y, bevel, panel.H), gray(30).Opaque())
	c.FillRect(core.NewRect(panel.X, panel.Bottom()-bevel, panel.W, bevel), gray(40).Opaque())

	centerText(c, b.H/2-70, fmt.Sprintf("Final Score: %d", score))
	centerText(c, b.H/2-30, "Game Over!")
	centerText(c, b.H/2+10, restartText)
}

func centerText(c core.Canvas, y float64, text string) {
	x := c.Bounds().W/2 - c.TextWidth(text)/2
	c.DrawText(core.Vec{X: x, Y: y}, text, core.White)
}
