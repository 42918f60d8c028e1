package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridsim/internal/core"
	"github.com/vovakirdan/gridsim/internal/registry"
	"github.com/vovakirdan/gridsim/internal/storage"
)

const maxRuns = 100

// RunsKeyMap defines the key bindings for the run browser.
type RunsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Preview key.Binding
	Delete  key.Binding
	NextSim key.Binding
	PrevSim key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Preview, k.NextSim, k.Delete, k.Back}
}

func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Preview},
		{k.NextSim, k.PrevSim, k.Delete},
		{k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns the default run browser bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Preview: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "preview"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		NextSim: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next filter"),
		),
		PrevSim: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev filter"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel browses recorded runs and previews their latest snapshot.
type RunsModel struct {
	filters  []string // "" means every simulation
	filter   int
	store    *storage.Store
	runs     []storage.Run
	table    table.Model
	help     help.Model
	keys     RunsKeyMap
	preview  *core.Screen
	err      error
	width    int
	height   int
	quitting bool
	back     bool
}

// NewRunsModel loads the most recent runs from store.
func NewRunsModel(store *storage.Store, width, height int) RunsModel {
	filters := []string{""}
	for _, info := range registry.List() {
		filters = append(filters, info.ID)
	}

	m := RunsModel{
		filters: filters,
		store:   store,
		keys:    DefaultRunsKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 8},
		{Title: "Sim", Width: 8},
		{Title: "Grid", Width: 22},
		{Title: "Steps", Width: 7},
		{Title: "Pop", Width: 6},
		{Title: "Done", Width: 4},
		{Title: "Started", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *RunsModel) loadRuns() {
	m.preview = nil
	if m.store == nil {
		m.runs = nil
		m.table.SetRows(nil)
		return
	}
	runs, err := m.store.ListRuns(m.filters[m.filter], maxRuns)
	m.err = err
	m.runs = runs

	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		done := ""
		if r.Finished {
			done = "yes"
		}
		rows[i] = table.Row{
			shortID(r.ID),
			r.SimID,
			fmt.Sprintf("%s %dx%d %s", r.Shape, r.Width, r.Height, r.Boundary),
			fmt.Sprintf("%d", r.Steps),
			fmt.Sprintf("%d", r.Population),
			done,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (m *RunsModel) selectedRun() (storage.Run, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return storage.Run{}, false
	}
	return m.runs[i], true
}

func (m *RunsModel) loadPreview() {
	run, ok := m.selectedRun()
	if !ok {
		return
	}
	snap, err := m.store.LoadSnapshot(run.ID, -1)
	if err != nil {
		m.err = err
		return
	}
	m.preview = core.NewScreen(min(run.Width, m.width), min(run.Height, max(m.height-4, 1)))
	PreviewSnapshot(m.preview, snap.Cells)
}

func (m RunsModel) Init() tea.Cmd {
	return nil
}

func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.preview != nil {
			// Any key closes the preview.
			m.preview = nil
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextSim):
			m.filter = (m.filter + 1) % len(m.filters)
			m.loadRuns()
			return m, nil
		case key.Matches(msg, m.keys.PrevSim):
			m.filter = (m.filter + len(m.filters) - 1) % len(m.filters)
			m.loadRuns()
			return m, nil
		case key.Matches(msg, m.keys.Preview):
			m.loadPreview()
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if run, ok := m.selectedRun(); ok && m.store != nil {
				m.err = m.store.DeleteRun(run.ID)
				m.loadRuns()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.loadRuns()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m RunsModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	if m.preview != nil {
		run, _ := m.selectedRun()
		return titleStyle.Render(fmt.Sprintf("%s  %s  step %d", shortID(run.ID), run.SimID, run.Steps)) +
			"\n" + RenderScreen(m.preview) + "\n" + statusStyle.Render("press any key to close")
	}

	var b strings.Builder
	title := "SAVED RUNS - all"
	if f := m.filters[m.filter]; f != "" {
		title = "SAVED RUNS - " + f
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.store == nil:
		b.WriteString(boxStyle.Render("No database open."))
	case len(m.runs) == 0:
		b.WriteString(boxStyle.Render(statusStyle.Italic(true).Render("No runs recorded yet.")))
	default:
		b.WriteString(boxStyle.Render(m.table.View()))
	}
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m RunsModel) IsGoingBack() bool { return m.back }

// IsQuitting reports whether the user asked to quit.
func (m RunsModel) IsQuitting() bool { return m.quitting }

// RunRuns shows the run browser full screen. It returns true when the user
// wants to go back to the menu.
func RunRuns(store *storage.Store, width, height int) (bool, error) {
	p := tea.NewProgram(NewRunsModel(store, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(RunsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
