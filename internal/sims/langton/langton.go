// Package langton implements Langton's ant and its multi-color turmite
// generalizations on any cell shape.
package langton

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/vovakirdan/gridsim/internal/config"
	"github.com/vovakirdan/gridsim/internal/core"
	"github.com/vovakirdan/gridsim/internal/grid"
	"github.com/vovakirdan/gridsim/internal/grid/model"
	"github.com/vovakirdan/gridsim/internal/grid/neighborhood"
	"github.com/vovakirdan/gridsim/internal/registry"
	"github.com/vovakirdan/gridsim/internal/sims"
)

// Color is the entity stored in every cell: an index into the turn string.
type Color uint8

func init() {
	registry.Register("langton", func() registry.Simulation { return New() })
}

// Ant is one walker. Dead ants were absorbed by the grid edge.
type Ant struct {
	Position grid.Coordinate
	Heading  neighborhood.CompassDirection
	Alive    bool
}

// Sim moves every ant in place, so later ants see the colors earlier ants
// flipped during the same step.
type Sim struct {
	cfg       config.LangtonConfig
	turns     []bool // true turns clockwise
	structure *grid.Structure
	mode      neighborhood.Mode
	ants      []Ant
	runner    *model.AsyncRunner[Color]
	exec      *model.Executor[Color]
	controls  sims.Controls
	state     core.SimState
	moved     int
}

func New() *Sim {
	return &Sim{}
}

func (s *Sim) ID() string    { return "langton" }
func (s *Sim) Title() string { return "Langton's Ant" }

// Reset loads the langton config and applies grid overrides. The ants
// start deterministically, so the seed is unused.
func (s *Sim) Reset(cfg core.RuntimeConfig) error {
	c, err := config.LoadLangton(cfg.ConfigPath)
	if err != nil {
		return err
	}
	if c.Grid, err = c.Grid.Apply(cfg.Grid); err != nil {
		return err
	}
	return s.ResetWith(c)
}

// ResetWith rebuilds the simulation from an explicit configuration. Ants
// start on the middle row, spaced evenly, heading along their first
// available direction.
func (s *Sim) ResetWith(c config.LangtonConfig) error {
	if err := c.Validate(); err != nil {
		return err
	}
	structure, err := c.Grid.Structure()
	if err != nil {
		return err
	}

	turns := make([]bool, len(c.Turns))
	for i, ch := range strings.ToUpper(c.Turns) {
		turns[i] = ch == 'R'
	}

	*s = Sim{
		cfg:       c,
		turns:     turns,
		structure: structure,
		mode:      c.Grid.Neighborhood,
	}

	spacing := structure.Width() / (c.Ants + 1)
	for i := range c.Ants {
		pos := grid.C(spacing*(i+1), structure.Height()/2)
		dirs := neighborhood.CellNeighborDirections(pos, s.mode, structure.Shape())
		s.ants = append(s.ants, Ant{Position: pos, Heading: dirs[0], Alive: true})
	}

	m := model.New(structure, Color(0), c.Grid.Sparse())
	s.runner = model.NewAsyncRunner(m, s.move)

	term := model.Termination[Color](func(model.Readable[Color], int) bool { return s.AliveAnts() == 0 })
	if c.MaxSteps > 0 {
		term = term.Or(model.AfterSteps[Color](c.MaxSteps))
	}
	s.exec = model.NewExecutor(s.runner, s.Current, term)
	s.refresh()
	return nil
}

// Current returns the color model.
func (s *Sim) Current() model.Readable[Color] {
	return s.runner.Current()
}

// Ants returns a copy of the ants.
func (s *Sim) Ants() []Ant {
	return slices.Clone(s.ants)
}

// AliveAnts counts ants still on the grid.
func (s *Sim) AliveAnts() int {
	n := 0
	for _, a := range s.ants {
		if a.Alive {
			n++
		}
	}
	return n
}

// turn picks the next available direction clockwise or counterclockwise
// from heading. Shapes with fewer than 16 neighbors skip the gaps.
func (s *Sim) turn(pos grid.Coordinate, heading neighborhood.CompassDirection, clockwise bool) neighborhood.CompassDirection {
	dirs := neighborhood.CellNeighborDirections(pos, s.mode, s.structure.Shape())
	order := heading.AllCounterClockwise()
	if clockwise {
		order = heading.AllClockwise()
	}
	for _, d := range order[1:] {
		if slices.Contains(dirs, d) {
			return d
		}
	}
	return heading
}

// reverse picks the available direction closest to the opposite of heading.
func (s *Sim) reverse(pos grid.Coordinate, heading neighborhood.CompassDirection) neighborhood.CompassDirection {
	dirs := neighborhood.CellNeighborDirections(pos, s.mode, s.structure.Shape())
	for _, d := range heading.Opposite().AllClockwise() {
		if slices.Contains(dirs, d) {
			return d
		}
	}
	return heading
}

func (s *Sim) move(m model.Writable[Color], _ int) error {
	s.moved = 0
	for i := range s.ants {
		a := &s.ants[i]
		if !a.Alive {
			continue
		}
		color, err := m.GetEntity(a.Position)
		if err != nil {
			return err
		}
		a.Heading = s.turn(a.Position, a.Heading, s.turns[int(color)%len(s.turns)])
		if err := m.SetEntity(a.Position, Color((int(color)+1)%len(s.turns))); err != nil {
			return err
		}

		nb, ok, err := neighborhood.CellNeighborWithEdgeBehavior(a.Position, s.mode, a.Heading, s.structure)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("langton: no neighbor %s of %s", a.Heading, a.Position)
		}
		switch nb.Action {
		case neighborhood.Valid, neighborhood.Wrapped, neighborhood.Reflected:
			// A reflected ant keeps its heading; the next turn sorts it out.
			a.Position = nb.Mapped
			s.moved++
		case neighborhood.Blocked:
			a.Heading = s.reverse(a.Position, a.Heading)
		case neighborhood.Absorbed:
			a.Alive = false
		}
	}
	return nil
}

func (s *Sim) refresh() {
	s.state = core.SimState{
		Step:       s.exec.StepCount(),
		Population: model.CountNonDefault(s.Current()),
		Finished:   s.exec.IsFinished(),
		Paused:     s.controls.Paused,
	}
}

// Step moves every ant once unless paused or finished.
func (s *Sim) Step(in core.InputFrame) (core.StepResult, error) {
	if !s.controls.Advance(in, s.state.Finished) {
		s.state.Paused = s.controls.Paused
		return core.StepResult{State: s.state}, nil
	}
	if err := s.exec.ExecuteStep(); err != nil {
		return core.StepResult{State: s.state}, err
	}
	s.refresh()
	return core.StepResult{State: s.state, Changed: s.moved}, nil
}

// Run executes up to steps moves of every ant.
func (s *Sim) Run(ctx context.Context, steps int, onStep func(step int)) (model.ExecutionResult, error) {
	res, err := s.exec.ExecuteSteps(ctx, steps, true, onStep)
	s.refresh()
	return res, err
}

var palette = []core.Color{
	core.ColorDefault, core.ColorWhite, core.ColorCyan, core.ColorMagenta,
	core.ColorYellow, core.ColorBlue, core.ColorGreen, core.ColorRed,
}

func (s *Sim) Render(dst *core.Screen) {
	shape := s.structure.Shape()
	sims.Draw(dst, s.Current(), func(c grid.Coordinate, e Color) (rune, core.Color) {
		if e == 0 {
			return ' ', core.ColorDefault
		}
		return sims.ShapeGlyph(shape, c), palette[int(e)%len(palette)]
	})
	for _, a := range s.ants {
		if a.Alive && a.Position.Y < dst.Height()-1 {
			dst.SetColored(a.Position.X, a.Position.Y, '@', core.ColorBrightRed)
		}
	}
	sims.DrawStatus(dst, fmt.Sprintf("%s %s", s.Title(), strings.ToUpper(s.cfg.Turns)), s.state)
}

func (s *Sim) State() core.SimState       { return s.state }
func (s *Sim) Structure() *grid.Structure { return s.structure }

// Snapshot lists colored cells in row-major order, valued by color index.
func (s *Sim) Snapshot() []core.CellValue {
	return sims.Snapshot(s.Current(), func(c Color) string { return fmt.Sprint(int(c)) })
}
