// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, input mapping, half-block rendering,
// the score table, and remote play over SSH.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg struct {
	At    time.Time
	Owner int64 // Model that scheduled the tick
}

// modelIDs hands out owner ids, so a tick chain left behind by a finished
// game never drives the next one.
var modelIDs atomic.Int64

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, owner int64) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Owner: owner}
	})
}
