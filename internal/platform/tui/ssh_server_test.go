package tui

import (
	"io"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/flappy3d/internal/config"
	"github.com/vovakirdan/flappy3d/internal/core"
	"github.com/vovakirdan/flappy3d/internal/storage"
)

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewSessionModel(SessionOptions{
		Store:      store,
		Runtime:    core.RuntimeConfig{ScreenW: 60, ScreenH: 25, TickRate: 60},
		Game:       config.Default(),
		Difficulty: config.DifficultyNormal,
		Renderer:   plainRenderer(),
		Logger:     log.New(io.Discard),
	})
}

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func TestSessionID(t *testing.T) {
	m := newTestSession(t)
	if _, err := uuid.Parse(m.ID()); err != nil {
		t.Errorf("Expected a UUID session id, got %q", m.ID())
	}
}

func TestSessionGameFlow(t *testing.T) {
	m := newTestSession(t)

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.game == nil {
		t.Fatal("Expected a running game after selecting a difficulty")
	}
	if cmd == nil {
		t.Error("Expected the game to start ticking")
	}
	if m.opts.Difficulty != config.DifficultyHard {
		t.Errorf("Expected hard difficulty, got %q", m.opts.Difficulty)
	}
	if m.View() == "" {
		t.Error("Expected a rendered frame")
	}

	// q leaves the game but keeps the session
	m, cmd = sessionUpdate(t, m, runeKey("q"))
	if m.screen != screenMenu || m.game != nil {
		t.Fatal("Expected to be back in the menu")
	}
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Error("Leaving a game must not end the session")
		}
	}
	if m.menu.cursor != 2 {
		t.Errorf("Menu should remember the last difficulty, cursor %d", m.menu.cursor)
	}
}

func TestSessionScoreboardFlow(t *testing.T) {
	m := newTestSession(t)

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatal("Expected the scoreboard")
	}

	m, _ = sessionUpdate(t, m, runeKey("b"))
	if m.screen != screenMenu {
		t.Fatal("Expected back to the menu")
	}

	m, cmd := sessionUpdate(t, m, runeKey("q"))
	if cmd == nil {
		t.Fatal("Expected quit from the menu to end the session")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected a quit message")
	}
	if m.View() != "" {
		t.Error("Expected empty view after quitting")
	}
}
