package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridsim/internal/core"
	"github.com/vovakirdan/gridsim/internal/registry"
	"github.com/vovakirdan/gridsim/internal/storage"
)

// ViewerOptions tune a Model beyond the runtime config.
type ViewerOptions struct {
	// SnapshotEvery stores a snapshot every N steps; 0 disables it.
	SnapshotEvery int

	// AllowBack lets esc/b leave the viewer instead of being ignored.
	AllowBack bool

	Logger *log.Logger
}

// Model is the Bubble Tea model that drives one simulation.
type Model struct {
	sim      registry.Simulation
	screen   *core.Screen
	store    *storage.Store
	run      *storage.Run
	config   core.RuntimeConfig
	opts     ViewerOptions
	input    core.InputFrame
	state    core.SimState
	keys     KeyMap
	help     help.Model
	status   string
	err      error
	saved    bool // final state written for the current run
	quitting bool
	back     bool
}

// NewModel resets sim with cfg and, when store is non-nil, records a new run.
func NewModel(sim registry.Simulation, store *storage.Store, cfg core.RuntimeConfig, opts ViewerOptions) (Model, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr)
	}

	m := Model{
		sim:    sim,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH-1),
		store:  store,
		config: cfg,
		opts:   opts,
		input:  core.NewInputFrame(),
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	if err := m.reset(); err != nil {
		return m, err
	}
	return m, nil
}

func (m *Model) reset() error {
	if err := m.sim.Reset(m.config); err != nil {
		return fmt.Errorf("reset %s: %w", m.sim.ID(), err)
	}
	m.state = m.sim.State()
	m.saved = false
	m.run = nil
	if m.store == nil {
		return nil
	}
	run, err := m.store.CreateRun(m.sim.ID(), m.sim.Structure(), m.config.Seed)
	if err != nil {
		m.opts.Logger.Warn("could not record run", "sim", m.sim.ID(), "error", err)
		return nil
	}
	m.run = &run
	m.saveSnapshot()
	return nil
}

// saveSnapshot stores the current cells. Failures are logged, not fatal.
func (m *Model) saveSnapshot() {
	if m.store == nil || m.run == nil {
		return
	}
	if err := m.store.SaveSnapshot(m.run.ID, m.state.Step, m.sim.Snapshot()); err != nil {
		m.opts.Logger.Warn("could not save snapshot", "run", m.run.ID, "error", err)
		return
	}
	m.status = fmt.Sprintf("snapshot saved at step %d", m.state.Step)
}

// finishRun writes the final progress of the current run once.
func (m *Model) finishRun() {
	if m.store == nil || m.run == nil || m.saved {
		return
	}
	if err := m.store.UpdateRun(m.run.ID, m.state); err != nil {
		m.opts.Logger.Warn("could not update run", "run", m.run.ID, "error", err)
	}
	m.saved = true
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height-1)
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.finishRun()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		if !m.opts.AllowBack {
			return m, nil
		}
		m.finishRun()
		m.back = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Snapshot):
		m.saveSnapshot()
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionFaster:
		m.config.TickRate = min(m.config.TickRate*2, maxTickRate)
	case core.ActionSlower:
		m.config.TickRate = max(m.config.TickRate/2, minTickRate)
	case core.ActionNone:
	default:
		m.input.Set(action)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.err != nil || m.quitting || m.back {
		return m, nil
	}

	if m.input.Has(core.ActionRestart) {
		m.finishRun()
		m.config.Seed = time.Now().UnixNano()
		if err := m.reset(); err != nil {
			m.err = err
			return m, nil
		}
		m.input.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	before := m.state.Step
	result, err := m.sim.Step(m.input)
	m.input.Clear()
	if err != nil {
		m.err = err
		m.finishRun()
		return m, nil
	}
	m.state = result.State

	if n := m.opts.SnapshotEvery; n > 0 && m.state.Step != before && m.state.Step%n == 0 {
		m.saveSnapshot()
	}
	if m.state.Finished && !m.saved {
		m.saveSnapshot()
		m.finishRun()
	}
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.sim.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".gridsim", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.sim.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = "screenshot failed: " + err.Error()
		return
	}
	m.status = "screenshot saved to " + path
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// View renders the simulation above a help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return errorStyle.Render("error: "+m.err.Error()) + "\n" + statusStyle.Render("press q to quit")
	}

	m.screen.Clear()
	m.sim.Render(m.screen)

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = m.status + "  " + footer
	}
	footer += fmt.Sprintf("  %d/s", m.config.TickRate)
	return RenderScreen(m.screen) + "\n" + statusStyle.Render(footer)
}

// State returns the last observed simulation state.
func (m Model) State() core.SimState { return m.state }

// Run returns the run being recorded, or nil without a store.
func (m Model) Run() *storage.Run { return m.run }

// Err returns the error that stopped the simulation, if any.
func (m Model) Err() error { return m.err }

// IsQuitting reports whether the user asked to quit.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu reports whether the user asked to leave the viewer.
func (m Model) BackToMenu() bool { return m.back }

// Run starts a full-screen viewer for sim and blocks until it exits.
func Run(sim registry.Simulation, store *storage.Store, cfg core.RuntimeConfig, opts ViewerOptions) (Model, error) {
	model, err := NewModel(sim, store, cfg, opts)
	if err != nil {
		return model, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return model, err
	}
	if fm, ok := final.(Model); ok {
		return fm, fm.Err()
	}
	return model, nil
}
