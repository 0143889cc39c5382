package tui

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy3d/internal/config"
	"github.com/vovakirdan/flappy3d/internal/core"
	"github.com/vovakirdan/flappy3d/internal/registry"
	"github.com/vovakirdan/flappy3d/internal/storage"
)

// maxFrameDelta caps the measured time between ticks, so a stalled
// terminal does not fast-forward the clock.
const maxFrameDelta = 250 * time.Millisecond

// Options configures a game model.
type Options struct {
	Runtime    core.RuntimeConfig
	Playfield  config.Playfield
	Difficulty string

	// Renderer styles the output. Nil uses the default renderer.
	Renderer *lipgloss.Renderer

	// Embedded models report quit through Done instead of ending the program.
	Embedded bool
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	id         int64
	game       registry.Game
	raster     *core.Raster
	store      *storage.Store
	config     core.RuntimeConfig
	difficulty string
	renderer   *lipgloss.Renderer
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	lastRun    *storage.RunRecord
	embedded   bool
	quitting   bool
	scoreSaved bool // Whether the run has been saved for the current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, opts Options) Model {
	cfg := opts.Runtime
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	h := help.New()
	h.ShowAll = false
	h.Width = cfg.ScreenW

	w, ph := rasterSize(cfg.ScreenW, cfg.ScreenH)
	return Model{
		id:         modelIDs.Add(1),
		game:       game,
		raster:     core.NewRaster(w, ph, opts.Playfield.Width, opts.Playfield.Height),
		store:      store,
		config:     cfg,
		difficulty: opts.Difficulty,
		renderer:   opts.Renderer,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		embedded:   opts.Embedded,
	}
}

// rasterSize returns the pixel size for a terminal, keeping one row for help.
func rasterSize(cols, rows int) (int, int) {
	return max(cols, 1), max(rows-1, 1) * core.PixelsPerRow
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.id)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Owner != m.id {
			return m, nil
		}
		return m.handleTick(msg.At)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.saveScreenshot()
		return m, nil
	}

	// Copies of the model share the frame's map; write to a private one.
	frame := m.inputFrame.Clone()
	quit := m.keys.MapKeyToFrame(msg, &frame)
	m.inputFrame = frame
	if quit {
		m.quitting = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events.
// The world has a fixed size, so the run continues at the new scale.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.raster.Resize(rasterSize(msg.Width, msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs one simulation step with the measured frame time.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.config.TickDuration()
	if !m.lastTick.IsZero() {
		dt = min(max(now.Sub(m.lastTick), 0), maxFrameDelta)
	}
	m.lastTick = now

	result := m.game.Step(m.inputFrame, dt)
	m.gameState = result.State

	// A restart clears game over; the next run may be saved again.
	if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	// Save the run on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.scoreSaved = true
		if m.store != nil && m.gameState.Score > 0 {
			run, err := m.store.SaveRun(storage.RunRecord{
				GameID:     m.game.ID(),
				Score:      m.gameState.Score,
				Seed:       m.game.Seed(),
				Difficulty: m.difficulty,
				Ticks:      m.gameState.Ticks,
				Night:      m.gameState.Night >= 0.5,
			})
			if err == nil {
				m.lastRun = &run
			}
		}
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate, m.id)
}

// saveScreenshot writes the current frame as a PNG and returns its path.
func (m *Model) saveScreenshot() (string, error) {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".flappy3d", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", m.game.ID(), timestamp))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, m.raster.Image()); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// draw renders the game into the raster.
func (m *Model) draw() {
	m.raster.Clear()
	m.game.Render(m.raster)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if m.renderer != nil {
		helpStyle = m.renderer.NewStyle().Foreground(lipgloss.Color("241"))
	}
	return RenderRaster(m.renderer, m.raster) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the state after the latest tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Done returns true once the player asked to quit.
func (m Model) Done() bool {
	return m.quitting
}

// LastRun returns the most recently saved run, or nil.
func (m Model) LastRun() *storage.RunRecord {
	return m.lastRun
}

// Run starts the Bubble Tea program with the given model.
// It returns the last saved run, if any.
func Run(game registry.Game, store *storage.Store, opts Options) (*storage.RunRecord, error) {
	model := NewModel(game, store, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	if m, ok := final.(Model); ok {
		return m.LastRun(), nil
	}
	return nil, nil
}
