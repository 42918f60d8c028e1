// Package forest implements the Drossel-Schwabl forest-fire model.
package forest

import (
	"context"
	"math/rand"

	"github.com/vovakirdan/gridsim/internal/config"
	"github.com/vovakirdan/gridsim/internal/core"
	"github.com/vovakirdan/gridsim/internal/grid"
	"github.com/vovakirdan/gridsim/internal/grid/model"
	"github.com/vovakirdan/gridsim/internal/registry"
	"github.com/vovakirdan/gridsim/internal/sims"
)

// Cell is the entity stored in every cell.
type Cell uint8

const (
	Empty Cell = iota
	Tree
	Fire
)

func (c Cell) String() string {
	switch c {
	case Tree:
		return "tree"
	case Fire:
		return "fire"
	default:
		return "empty"
	}
}

func init() {
	registry.Register("forest", func() registry.Simulation { return New() })
}

// Sim is a forest-fire model. Each step, fires burn out, trees next to a
// fire catch it, lightning ignites a tree with a small probability and
// empty ground regrows with the growth probability.
type Sim struct {
	cfg       config.ForestConfig
	rng       *rand.Rand
	structure *grid.Structure
	neighbors sims.NeighborTable
	runner    *model.SyncRunner[Cell]
	exec      *model.Executor[Cell]
	controls  sims.Controls
	state     core.SimState
	changed   int
	burning   int
}

func New() *Sim {
	return &Sim{}
}

func (s *Sim) ID() string    { return "forest" }
func (s *Sim) Title() string { return "Forest Fire" }

// Reset loads the forest config, applies grid overrides and reseeds.
func (s *Sim) Reset(cfg core.RuntimeConfig) error {
	c, err := config.LoadForest(cfg.ConfigPath)
	if err != nil {
		return err
	}
	if c.Grid, err = c.Grid.Apply(cfg.Grid); err != nil {
		return err
	}
	return s.ResetWith(c, cfg.Seed)
}

// ResetWith rebuilds the simulation from an explicit configuration.
func (s *Sim) ResetWith(c config.ForestConfig, seed int64) error {
	if err := c.Validate(); err != nil {
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
	initial := model.New(structure, Empty, c.Grid.Sparse())
	plant := model.PlaceWithProbability(func() Cell { return Tree }, c.InitialTrees, rng)
	if err := plant(initial); err != nil {
		return err
	}

	term := model.Never[Cell]()
	if c.MaxSteps > 0 {
		term = model.AfterSteps[Cell](c.MaxSteps)
	}

	*s = Sim{
		cfg:       c,
		rng:       rng,
		structure: structure,
		neighbors: neighbors,
	}
	s.runner = model.NewSyncRunner(initial, s.evolve)
	s.exec = model.NewExecutor(s.runner, s.Current, term)
	s.refresh()
	return nil
}

// Current returns the latest generation.
func (s *Sim) Current() model.Readable[Cell] {
	return s.runner.Current()
}

// Ignite sets a tree at c on fire. It reports whether c held a tree.
func (s *Sim) Ignite(c grid.Coordinate) (bool, error) {
	current := s.runner.Current()
	e, err := current.GetEntity(c)
	if err != nil || e != Tree {
		return false, err
	}
	if err := current.SetEntity(c, Fire); err != nil {
		return false, err
	}
	s.refresh()
	return true, nil
}

func (s *Sim) evolve(current model.Readable[Cell], next model.Writable[Cell], _ int) error {
	onFire := func(e Cell) bool { return e == Fire }
	s.changed = 0
	for c := range s.structure.All() {
		was := model.MustGetEntity(current, c)
		now := was
		switch was {
		case Fire:
			now = Empty
		case Tree:
			if sims.Count(s.neighbors, current, c, onFire) > 0 || s.rng.Float64() < s.cfg.Lightning {
				now = Fire
			}
		case Empty:
			if s.rng.Float64() < s.cfg.Growth {
				now = Tree
			}
		}
		if now != Empty {
			if err := next.SetEntity(c, now); err != nil {
				return err
			}
		}
		if now != was {
			s.changed++
		}
	}
	return nil
}

func (s *Sim) refresh() {
	counts := model.CountEntities(s.Current())
	s.burning = counts[Fire]
	s.state = core.SimState{
		Step:       s.exec.StepCount(),
		Population: counts[Tree] + counts[Fire],
		Finished:   s.exec.IsFinished(),
		Paused:     s.controls.Paused,
	}
}

// Burning returns the number of cells on fire.
func (s *Sim) Burning() int { return s.burning }

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

func (s *Sim) Render(dst *core.Screen) {
	shape := s.structure.Shape()
	sims.Draw(dst, s.Current(), func(c grid.Coordinate, e Cell) (rune, core.Color) {
		switch e {
		case Tree:
			return sims.ShapeGlyph(shape, c), core.ColorDarkGreen
		case Fire:
			return sims.ShapeGlyph(shape, c), core.ColorOrange
		default:
			return ' ', core.ColorDefault
		}
	})
	sims.DrawStatus(dst, s.Title(), s.state)
}

func (s *Sim) State() core.SimState       { return s.state }
func (s *Sim) Structure() *grid.Structure { return s.structure }

// Snapshot lists trees and fires in row-major order.
func (s *Sim) Snapshot() []core.CellValue {
	return sims.Snapshot(s.Current(), Cell.String)
}
