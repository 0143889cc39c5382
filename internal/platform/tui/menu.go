package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy3d/internal/config"
	"github.com/vovakirdan/flappy3d/internal/core"
	"github.com/vovakirdan/flappy3d/internal/games/flappy"
	"github.com/vovakirdan/flappy3d/internal/storage"
)

// MenuItem is one selectable difficulty in the menu.
type MenuItem struct {
	Title      string
	Difficulty config.DifficultyPreset
}

// MenuKeyMap defines the key bindings for the menu.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Scoreboard key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scoreboard, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select}, {k.Scoreboard, k.Quit}}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Scoreboard: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuModel is the Bubble Tea model for the title screen.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	best           int
	config         core.RuntimeConfig
	keys           MenuKeyMap
	help           help.Model
	renderer       *lipgloss.Renderer
	quitting       bool
	selected       *MenuItem // Set when user picks a difficulty
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. The cursor starts on current.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, current config.DifficultyPreset, re *lipgloss.Renderer) MenuModel {
	items := []MenuItem{
		{Title: "Easy", Difficulty: config.DifficultyEasy},
		{Title: "Normal", Difficulty: config.DifficultyNormal},
		{Title: "Hard", Difficulty: config.DifficultyHard},
	}

	m := MenuModel{
		items:    items,
		config:   cfg,
		keys:     DefaultMenuKeyMap(),
		help:     help.New(),
		renderer: re,
	}
	for i, it := range items {
		if it.Difficulty == current {
			m.cursor = i
		}
	}

	if store != nil {
		if best, err := store.HighScore(flappy.GameID); err == nil {
			m.best = best
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		selected := m.items[m.cursor]
		m.selected = &selected
		return m, tea.Quit // Exit menu to start game

	case key.Matches(msg, m.keys.Scoreboard):
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	style := lipgloss.NewStyle
	if m.renderer != nil {
		style = m.renderer.NewStyle
	}
	titleStyle := style().Bold(true).Foreground(lipgloss.Color("229"))
	activeStyle := style().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	dimStyle := style().Foreground(lipgloss.Color("241"))

	width := m.config.ScreenW
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("F L A P P Y   3 D"), width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a difficulty", width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title + "  "
		if i == m.cursor {
			line = activeStyle.Render("> " + item.Title + "  ")
		}
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.best > 0 {
		b.WriteString(centerText(dimStyle.Render(fmt.Sprintf("Best: %d", m.best)), width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result summarizes how the menu was left.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.config}

	switch {
	case m.openScoreboard:
		result.WantsScoreboard = true
	case m.selected != nil:
		result.Difficulty = m.selected.Difficulty
	default:
		result.Quit = true
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, current config.DifficultyPreset) (MenuResult, error) {
	model := NewMenuModel(store, cfg, current, nil)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
