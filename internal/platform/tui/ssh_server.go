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
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/gridsim/internal/core"
	"github.com/vovakirdan/gridsim/internal/registry"
	"github.com/vovakirdan/gridsim/internal/session"
	"github.com/vovakirdan/gridsim/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.gridsim/host_key.
	HostKeyPath string

	// DBPath is the path to the runs database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Base is copied into every session before the PTY size is applied.
	Base core.RuntimeConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.gridsim/runs.db",
		IdleTimeout: 30 * time.Minute,
		Base:        core.DefaultConfig(),
	}
}

// SSHServer serves the simulation menu over SSH with Wish.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	sessions *session.Registry
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gridsim-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config:   cfg,
		store:    store,
		sessions: session.NewRegistry(),
		logger:   logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".gridsim", "host_key")
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
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
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := s.config.Base
	cfg.ScreenW = pty.Window.Width
	cfg.ScreenH = pty.Window.Height
	cfg.Seed = time.Now().UnixNano()

	logger := s.logger.With("user", sess.User())
	m := NewSessionModel(s.store, cfg, logger)
	m.Track(s.sessions, sessionID(sess))
	return m, []tea.ProgramOption{tea.WithAltScreen()}
}

func sessionID(sess ssh.Session) session.ID {
	return session.ID(sess.Context().SessionID())
}

// loggingMiddleware logs session events and keeps the session registry
// current for the lifetime of each connection.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		id := sessionID(sess)
		s.sessions.Register(session.Info{
			ID:     id,
			User:   sess.User(),
			Remote: sess.RemoteAddr().String(),
		})
		s.logger.Info("session started", "user", sess.User(), "remote", sess.RemoteAddr().String(), "active", s.sessions.Count())
		next(sess)
		s.sessions.Unregister(id)
		s.logger.Info("session ended", "user", sess.User(), "remote", sess.RemoteAddr().String(), "active", s.sessions.Count())
	}
}

// Sessions returns the registry of connected sessions.
func (s *SSHServer) Sessions() *session.Registry {
	return s.sessions
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionView int

const (
	viewMenu sessionView = iota
	viewSim
	viewRuns
)

// SessionModel switches between the menu, a running simulation and the run
// browser. Child models quit their own program when they are done; the
// session swallows those quits and changes view instead.
type SessionModel struct {
	store    *storage.Store
	sessions *session.Registry
	id       session.ID
	config   core.RuntimeConfig
	logger   *log.Logger
	view     sessionView
	menu     MenuModel
	viewer   Model
	runs     RunsModel
	status   string
	quitting bool
}

// NewSessionModel starts a session at the menu.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	return SessionModel{
		store:  store,
		config: cfg,
		logger: logger,
		menu:   NewMenuModel(cfg),
	}
}

// Track reports this session's activity to r under id.
func (m *SessionModel) Track(r *session.Registry, id session.ID) {
	m.sessions = r
	m.id = id
	m.menu.watching = r.Watching
}

func (m SessionModel) setSim(simID string) {
	if m.sessions != nil {
		m.sessions.SetSim(m.id, simID)
	}
}

func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewSim:
		return m.updateViewer(msg)
	case viewRuns:
		return m.updateRuns(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsRuns():
		m.runs = NewRunsModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.view = viewRuns
		return m, m.runs.Init()

	case m.menu.Selected() != nil:
		id := m.menu.Selected().ID
		sim, err := registry.Create(id)
		if err != nil {
			return m.backToMenu(err.Error())
		}
		viewer, err := NewModel(sim, m.store, m.config, ViewerOptions{AllowBack: true, Logger: m.logger})
		if err != nil {
			m.logger.Warn("could not start simulation", "sim", id, "error", err)
			return m.backToMenu(err.Error())
		}
		m.viewer = viewer
		m.view = viewSim
		m.setSim(id)
		return m, m.viewer.Init()
	}
	return m, cmd
}

func (m SessionModel) updateViewer(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.viewer.Update(msg)
	if vm, ok := next.(Model); ok {
		m.viewer = vm
	}

	switch {
	case m.viewer.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.viewer.BackToMenu():
		return m.backToMenu("")
	}
	return m, cmd
}

func (m SessionModel) updateRuns(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.runs.Update(msg)
	if rm, ok := next.(RunsModel); ok {
		m.runs = rm
	}

	switch {
	case m.runs.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.runs.IsGoingBack():
		return m.backToMenu("")
	}
	return m, cmd
}

func (m SessionModel) backToMenu(status string) (tea.Model, tea.Cmd) {
	m.setSim("")
	m.view = viewMenu
	m.menu = NewMenuModel(m.config)
	if m.sessions != nil {
		m.menu.watching = m.sessions.Watching
	}
	m.status = status
	return m, m.menu.Init()
}

func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.view {
	case viewSim:
		return m.viewer.View()
	case viewRuns:
		return m.runs.View()
	}
	if m.status != "" {
		return m.menu.View() + errorStyle.Render(m.status)
	}
	return m.menu.View()
}
