// Package conway runs life-like cellular automata on any cell shape.
package conway

import (
	"context"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/gridsim/internal/config"
	"github.com/vovakirdan/gridsim/internal/core"
	"github.com/vovakirdan/gridsim/internal/grid"
	"github.com/vovakirdan/gridsim/internal/grid/model"
	"github.com/vovakirdan/gridsim/internal/grid/pattern"
	"github.com/vovakirdan/gridsim/internal/grid/pattern/patternfile"
	"github.com/vovakirdan/gridsim/internal/registry"
	"github.com/vovakirdan/gridsim/internal/sims"
)

// State is the entity stored in every cell.
type State uint8

const (
	Dead State = iota
	Alive
)

func (s State) String() string {
	if s == Alive {
		return "alive"
	}
	return "dead"
}

func init() {
	registry.Register("conway", func() registry.Simulation { return New() })
}

// Sim is a life-like automaton driven by a double-buffered runner.
type Sim struct {
	cfg       config.ConwayConfig
	rule      Rule
	rng       *rand.Rand
	structure *grid.Structure
	neighbors sims.NeighborTable
	runner    *model.SyncRunner[State]
	exec      *model.Executor[State]
	controls  sims.Controls
	state     core.SimState
	changed   int
}

// New creates an unconfigured simulation. Call Reset before stepping.
func New() *Sim {
	return &Sim{}
}

func (s *Sim) ID() string    { return "conway" }
func (s *Sim) Title() string { return "Game of Life" }

// Reset loads the conway config, applies grid overrides and reseeds.
func (s *Sim) Reset(cfg core.RuntimeConfig) error {
	c, err := config.LoadConway(cfg.ConfigPath)
	if err != nil {
		return err
	}
	if c.Grid, err = c.Grid.Apply(cfg.Grid); err != nil {
		return err
	}
	return s.ResetWith(c, cfg.Seed)
}

// ResetWith rebuilds the simulation from an explicit configuration.
func (s *Sim) ResetWith(c config.ConwayConfig, seed int64) error {
	if err := c.Validate(); err != nil {
		return err
	}
	rule, err := ParseRule(c.Rule)
	if err != nil {
		return err
	}
	structure, err := c.Grid.Structure()
	if err != nil {
		return err
	}
	neighbors, err := sims.BuildNeighborTable(structure, c.Grid.Neighborhood)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(seed))
	initial := model.New(structure, Dead, c.Grid.Sparse())
	seeder, err := seedInitializer(c, rng)
	if err != nil {
		return err
	}
	if err := seeder(initial); err != nil {
		return err
	}

	term := model.Never[State]()
	if c.MaxSteps > 0 {
		term = model.AfterSteps[State](c.MaxSteps)
	}
	if c.StopWhenEmpty {
		term = term.Or(model.WhenEmpty[State]())
	}

	*s = Sim{
		cfg:       c,
		rule:      rule,
		rng:       rng,
		structure: structure,
		neighbors: neighbors,
	}
	s.runner = model.NewSyncRunner(initial, s.evolve)
	s.exec = model.NewExecutor(s.runner, s.Current, term)
	s.refresh()
	return nil
}

func seedInitializer(c config.ConwayConfig, rng *rand.Rand) (model.Initializer[State], error) {
	if c.Seed == "" || c.Seed == "random" {
		return model.PlaceWithProbability(func() State { return Alive }, c.Density, rng), nil
	}
	p, err := ResolvePattern(c.Seed, patternfile.NewLoader(patternfile.DefaultRoot()))
	if err != nil {
		return nil, err
	}
	return func(m model.Writable[State]) error {
		anchor := grid.C((c.Grid.Width-p.Width())/2, (c.Grid.Height-p.Height())/2)
		pattern.Place(p, m, anchor)
		return nil
	}, nil
}

// Current returns the latest generation.
func (s *Sim) Current() model.Readable[State] {
	return s.runner.Current()
}

// Rule returns the parsed birth/survival rule.
func (s *Sim) Rule() Rule { return s.rule }

func (s *Sim) evolve(current model.Readable[State], next model.Writable[State], _ int) error {
	alive := func(e State) bool { return e == Alive }
	s.changed = 0
	for _, c := range s.candidates(current) {
		was := model.MustGetEntity(current, c) == Alive
		now := s.rule.Next(was, sims.Count(s.neighbors, current, c, alive))
		if now {
			if err := next.SetEntity(c, Alive); err != nil {
				return err
			}
		}
		if now != was {
			s.changed++
		}
	}
	return nil
}

// candidates returns the cells that can be alive next step. On a sparse
// model only live cells and their neighbors qualify, unless the rule
// births cells with zero neighbors.
func (s *Sim) candidates(current model.Readable[State]) []grid.Coordinate {
	if !current.IsSparse() || s.rule.Birth&1 != 0 {
		return s.structure.Coordinates()
	}
	set := mapset.New[grid.Coordinate]()
	for cell := range current.NonDefaultCells() {
		set.Put(cell.Coordinate)
		for _, nb := range s.neighbors[s.structure.Index(cell.Coordinate)] {
			set.Put(nb)
		}
	}
	out := make([]grid.Coordinate, 0, set.Size())
	set.Each(func(c grid.Coordinate) {
		out = append(out, c)
	})
	return out
}

func (s *Sim) refresh() {
	s.state = core.SimState{
		Step:       s.exec.StepCount(),
		Population: model.CountNonDefault(s.Current()),
		Finished:   s.exec.IsFinished(),
		Paused:     s.controls.Paused,
	}
}

// Step advances one generation unless paused or finished.
func (s *Sim) Step(in core.InputFrame) (core.StepResult, error) {
	if !s.controls.Advance(in, s.state.Finished) {
		s.state.Paused = s.controls.Paused
		return core.StepResult{State: s.state}, nil
	}
	if err := s.exec.ExecuteStep(); err != nil {
		return core.StepResult{State: s.state}, err
	}
	s.refresh()
	return core.StepResult{State: s.state, Changed: s.changed}, nil
}

// Run executes up to steps generations.
func (s *Sim) Run(ctx context.Context, steps int, onStep func(step int)) (model.ExecutionResult, error) {
	res, err := s.exec.ExecuteSteps(ctx, steps, true, onStep)
	s.refresh()
	return res, err
}

// Render draws live cells in green with the status line below the grid.
func (s *Sim) Render(dst *core.Screen) {
	shape := s.structure.Shape()
	sims.Draw(dst, s.Current(), func(c grid.Coordinate, e State) (rune, core.Color) {
		if e == Alive {
			return sims.ShapeGlyph(shape, c), core.ColorBrightGreen
		}
		return ' ', core.ColorDefault
	})
	sims.DrawStatus(dst, s.Title()+" "+s.rule.String(), s.state)
}

func (s *Sim) State() core.SimState       { return s.state }
func (s *Sim) Structure() *grid.Structure { return s.structure }

// Snapshot lists live cells in row-major order.
func (s *Sim) Snapshot() []core.CellValue {
	return sims.Snapshot(s.Current(), State.String)
}
