package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/flappy3d/internal/config"
	"github.com/vovakirdan/flappy3d/internal/core"
	"github.com/vovakirdan/flappy3d/internal/games/flappy"
	"github.com/vovakirdan/flappy3d/internal/registry"
	"github.com/vovakirdan/flappy3d/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.flappy3d/host_key.
	HostKeyPath string

	// DBPath is the path to the run history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game is the base game configuration; each session applies its
	// chosen difficulty on top of it.
	Game config.Config

	// Difficulty is preselected in the session menu.
	Difficulty config.DifficultyPreset

	// TickRate is the simulation rate for every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.flappy3d/runs.db",
		IdleTimeout: 30 * time.Minute,
		Game:        config.Default(),
		Difficulty:  config.DifficultyNormal,
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server that runs one game per session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy3d-ssh",
	})

	if err := cfg.Game.Validate(); err != nil {
		return nil, err
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".flappy3d", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	rc := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	model := NewSessionModel(SessionOptions{
		Store:      s.store,
		Runtime:    rc,
		Game:       s.config.Game,
		Difficulty: s.config.Difficulty,
		Renderer:   bubbletea.MakeRenderer(sshSession),
		Logger:     s.logger.With("user", sshSession.User()),
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
			errCh <- err
		}
	}()

	select {
	case <-done:
	case err := <-errCh:
		s.closeStore()
		return err
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.closeStore()
	return s.server.Shutdown(ctx)
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the screen a session is showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionOptions configures a session model.
type SessionOptions struct {
	Store      *storage.Store
	Runtime    core.RuntimeConfig
	Game       config.Config
	Difficulty config.DifficultyPreset
	Renderer   *lipgloss.Renderer
	Logger     *log.Logger
}

// SessionModel manages one remote session: menu -> game -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	opts      SessionOptions
	sessionID string
	screen    sessionScreen
	menu      MenuModel
	game      *Model
	scores    ScoreboardModel
	loggedRun string
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	id := uuid.New().String()
	opts.Logger = opts.Logger.With("session", id)

	return SessionModel{
		opts:      opts,
		sessionID: id,
		menu:      NewMenuModel(opts.Store, opts.Runtime, opts.Difficulty, opts.Renderer),
	}
}

// ID returns the session identifier.
func (m SessionModel) ID() string {
	return m.sessionID
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	result := m.menu.Result()
	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case result.WantsScoreboard:
		m.scores = NewScoreboardModel(m.opts.Store, flappy.GameID, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		return m.startGame(result.Difficulty)
	}

	return m, cmd
}

// startGame creates a game with the chosen difficulty and switches to it.
func (m SessionModel) startGame(difficulty config.DifficultyPreset) (tea.Model, tea.Cmd) {
	cfg := m.opts.Game
	config.ApplyPreset(&cfg, difficulty)

	seed := time.Now().UnixNano()
	game, err := registry.Create(flappy.GameID, cfg, seed)
	if err != nil {
		m.opts.Logger.Error("cannot start game", "difficulty", difficulty, "error", err)
		m.menu = NewMenuModel(m.opts.Store, m.opts.Runtime, difficulty, m.opts.Renderer)
		return m, nil
	}

	gm := NewModel(game, m.opts.Store, Options{
		Runtime:    m.opts.Runtime,
		Playfield:  cfg.Playfield,
		Difficulty: string(difficulty),
		Renderer:   m.opts.Renderer,
		Embedded:   true,
	})
	m.game = &gm
	m.screen = screenGame
	m.opts.Difficulty = difficulty
	m.opts.Logger.Info("game started", "difficulty", difficulty, "seed", seed)

	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(Model); ok {
		m.game = &gm
	}

	if run := m.game.LastRun(); run != nil && run.RunID != m.loggedRun {
		m.opts.Logger.Info("run saved", "run", run.RunID, "score", run.Score, "ticks", run.Ticks)
		m.loggedRun = run.RunID
	}

	// Quit from the game goes back to the menu
	if m.game.Done() {
		m.game = nil
		m.screen = screenMenu
		m.menu = NewMenuModel(m.opts.Store, m.opts.Runtime, m.opts.Difficulty, m.opts.Renderer)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is open.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sm, ok := newModel.(ScoreboardModel); ok {
		m.scores = sm
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		m.screen = screenMenu
		m.menu = NewMenuModel(m.opts.Store, m.opts.Runtime, m.opts.Difficulty, m.opts.Renderer)
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	}
	return m.menu.View()
}
