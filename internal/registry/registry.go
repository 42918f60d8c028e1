// Package registry holds the simulation factories. Simulations register
// themselves in init() so the CLI and the SSH server can discover them
// without importing each one by name.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/gridsim/internal/core"
	"github.com/vovakirdan/gridsim/internal/grid"
	"github.com/vovakirdan/gridsim/internal/grid/model"
)

// Simulation is a cellular automaton driven by the grid engine. It holds
// no terminal state; the platform owns timing, input and display.
type Simulation interface {
	// ID is the short name used on the command line and in storage.
	ID() string

	// Title is the human-readable name.
	Title() string

	// Reset loads configuration and rebuilds the initial model.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the automaton by one step.
	Step(in core.InputFrame) (core.StepResult, error)

	// Render draws the model into dst. The screen is cleared beforehand.
	Render(dst *core.Screen)

	State() core.SimState

	// Structure returns the grid the simulation runs on. Valid after Reset.
	Structure() *grid.Structure

	// Snapshot lists the non-default cells in row-major order.
	Snapshot() []core.CellValue
}

// Batch is implemented by simulations that can execute many steps
// without the platform tick loop. Run stops early when ctx is done or the
// simulation's termination condition holds.
type Batch interface {
	Run(ctx context.Context, steps int, onStep func(step int)) (model.ExecutionResult, error)
}

// Info describes a registered simulation.
type Info struct {
	ID    string
	Title string
}

// Factory creates a fresh simulation instance.
type Factory func() Simulation

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory. It panics if id is already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: simulation %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns every registered simulation sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a simulation by ID.
func Create(id string) (Simulation, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown simulation %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
