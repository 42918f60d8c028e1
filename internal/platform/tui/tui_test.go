package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/gridsim/internal/core"
	"github.com/vovakirdan/gridsim/internal/grid"
	"github.com/vovakirdan/gridsim/internal/registry"
	"github.com/vovakirdan/gridsim/internal/session"
	"github.com/vovakirdan/gridsim/internal/storage"
)

// counterSim advances one step per tick and finishes after limit steps.
type counterSim struct {
	st     *grid.Structure
	state  core.SimState
	limit  int
	resets int
}

func newCounterSim(t *testing.T, limit int) *counterSim {
	t.Helper()
	topo, err := grid.NewTopology(grid.Square, grid.WrapXWrapY)
	require.NoError(t, err)
	size, err := grid.NewSize(16, 16)
	require.NoError(t, err)
	st, err := grid.NewStructure(topo, size)
	require.NoError(t, err)
	return &counterSim{st: st, limit: limit}
}

func (s *counterSim) ID() string    { return "counter" }
func (s *counterSim) Title() string { return "Counter" }

func (s *counterSim) Reset(core.RuntimeConfig) error {
	s.resets++
	s.state = core.SimState{Population: 1}
	return nil
}

func (s *counterSim) Step(in core.InputFrame) (core.StepResult, error) {
	if in.Has(core.ActionPause) {
		s.state.Paused = !s.state.Paused
	}
	if s.state.Finished || s.state.Paused {
		return core.StepResult{State: s.state}, nil
	}
	s.state.Step++
	s.state.Finished = s.state.Step >= s.limit
	return core.StepResult{State: s.state, Changed: 1}, nil
}

func (s *counterSim) Render(dst *core.Screen) { dst.DrawText(0, 0, "counter") }
func (s *counterSim) State() core.SimState    { return s.state }
func (s *counterSim) Structure() *grid.Structure {
	return s.st
}

func (s *counterSim) Snapshot() []core.CellValue {
	return []core.CellValue{{X: s.state.Step, Y: 0, Value: "1"}}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func quietOptions() ViewerOptions {
	return ViewerOptions{Logger: log.New(io.Discard)}
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = 7
	return cfg
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"pause", runes("p"), core.ActionPause},
		{"step", runes("n"), core.ActionStep},
		{"restart", runes("r"), core.ActionRestart},
		{"faster", runes("+"), core.ActionFaster},
		{"faster arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionFaster},
		{"slower", runes("-"), core.ActionSlower},
		{"quit", runes("q"), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runes("z"), core.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keys.Action(tt.msg))
		})
	}
}

func TestViewerRecordsRun(t *testing.T) {
	store := openStore(t)
	sim := newCounterSim(t, 3)

	m, err := NewModel(sim, store, testConfig(), quietOptions())
	require.NoError(t, err)
	require.NotNil(t, m.Run())
	runID := m.Run().ID

	steps, err := store.SnapshotSteps(runID)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, steps, "the initial state is stored")

	var next tea.Model = m
	for range 5 {
		next, _ = next.Update(TickMsg{})
	}
	m = next.(Model)
	assert.True(t, m.State().Finished)
	assert.Equal(t, 3, m.State().Step)

	run, err := store.GetRun(runID)
	require.NoError(t, err)
	assert.True(t, run.Finished)
	assert.Equal(t, 3, run.Steps)

	snap, err := store.LoadSnapshot(runID, -1)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Step)
}

func TestViewerPauseAndSpeed(t *testing.T) {
	sim := newCounterSim(t, 100)
	m, err := NewModel(sim, nil, testConfig(), quietOptions())
	require.NoError(t, err)
	assert.Nil(t, m.Run())

	var next tea.Model = m
	next, _ = next.Update(runes("p"))
	next, _ = next.Update(TickMsg{})
	next, _ = next.Update(TickMsg{})
	m = next.(Model)
	assert.True(t, m.State().Paused)
	assert.Equal(t, 0, m.State().Step)

	next, _ = next.Update(runes("+"))
	m = next.(Model)
	assert.Equal(t, 20, m.config.TickRate)

	for range 10 {
		next, _ = next.Update(runes("+"))
	}
	m = next.(Model)
	assert.Equal(t, maxTickRate, m.config.TickRate)
}

func TestViewerRestart(t *testing.T) {
	store := openStore(t)
	sim := newCounterSim(t, 100)
	m, err := NewModel(sim, store, testConfig(), quietOptions())
	require.NoError(t, err)
	first := m.Run().ID

	var next tea.Model = m
	next, _ = next.Update(TickMsg{})
	next, _ = next.Update(runes("r"))
	next, _ = next.Update(TickMsg{})
	m = next.(Model)

	assert.Equal(t, 2, sim.resets)
	assert.Equal(t, 0, m.State().Step)
	assert.NotEqual(t, first, m.Run().ID)

	run, err := store.GetRun(first)
	require.NoError(t, err)
	assert.Equal(t, 1, run.Steps, "the abandoned run keeps its progress")
}

func TestViewerBack(t *testing.T) {
	sim := newCounterSim(t, 100)

	m, err := NewModel(sim, nil, testConfig(), quietOptions())
	require.NoError(t, err)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.False(t, next.(Model).BackToMenu(), "back is ignored unless allowed")
	assert.Nil(t, cmd)

	opts := quietOptions()
	opts.AllowBack = true
	m, err = NewModel(sim, nil, testConfig(), opts)
	require.NoError(t, err)
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.True(t, next.(Model).BackToMenu())
	assert.NotNil(t, cmd)
}

func TestViewerView(t *testing.T) {
	sim := newCounterSim(t, 100)
	m, err := NewModel(sim, nil, testConfig(), quietOptions())
	require.NoError(t, err)
	assert.Contains(t, m.View(), "counter")
}

func TestRunsModel(t *testing.T) {
	store := openStore(t)
	sim := newCounterSim(t, 100)

	run, err := store.CreateRun("counter", sim.Structure(), 1)
	require.NoError(t, err)
	require.NoError(t, store.SaveSnapshot(run.ID, 0, []core.CellValue{{X: 2, Y: 1, Value: "1"}}))

	m := NewRunsModel(store, 80, 24)
	require.Len(t, m.runs, 1)
	assert.Contains(t, m.View(), run.ID[:8])

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(RunsModel)
	require.NotNil(t, m.preview)
	assert.Equal(t, '█', m.preview.Get(2, 1))

	// Any key closes the preview.
	next, _ = m.Update(runes("j"))
	m = next.(RunsModel)
	assert.Nil(t, m.preview)

	next, _ = m.Update(runes("x"))
	m = next.(RunsModel)
	assert.Empty(t, m.runs)
	_, err = store.GetRun(run.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.True(t, next.(RunsModel).IsGoingBack())
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "  ab", centerText("ab", 6))
	assert.Equal(t, "abcdef", centerText("abcdef", 4))
	assert.True(t, strings.HasPrefix(centerText("x", 3), " "))
}

func TestSessionModelFlow(t *testing.T) {
	if !registry.Exists("tui-counter") {
		registry.Register("tui-counter", func() registry.Simulation { return newCounterSim(t, 50) })
	}

	sessions := session.NewRegistry()
	sessions.Register(session.Info{ID: "s1", User: "ann"})

	m := NewSessionModel(nil, testConfig(), log.New(io.Discard))
	m.Track(sessions, "s1")

	var next tea.Model = m
	for range len(registry.List()) {
		if m.menu.items[m.menu.cursor].ID == "tui-counter" {
			break
		}
		next, _ = next.Update(runes("j"))
		m = next.(SessionModel)
	}

	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SessionModel)
	require.Equal(t, viewSim, m.view)
	assert.Equal(t, 1, sessions.Watching("tui-counter"))
	assert.Contains(t, m.View(), "counter")

	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = next.(SessionModel)
	assert.Equal(t, viewMenu, m.view)
	assert.Zero(t, sessions.Watching("tui-counter"))
	assert.Nil(t, cmd, "leaving the viewer must not quit the session")

	next, cmd = next.Update(runes("q"))
	assert.True(t, next.(SessionModel).quitting)
	assert.NotNil(t, cmd)
}
