// Package config loads grid and simulation settings from YAML files with
// embedded defaults.
package config

import (
	"fmt"

	"github.com/vovakirdan/gridsim/internal/core"
	"github.com/vovakirdan/gridsim/internal/grid"
	"github.com/vovakirdan/gridsim/internal/grid/neighborhood"
)

// StorageKind selects the grid model implementation.
type StorageKind string

const (
	StorageDense  StorageKind = "dense"
	StorageSparse StorageKind = "sparse"
)

// GridConfig describes the grid a simulation runs on.
type GridConfig struct {
	Shape        grid.CellShape    `yaml:"shape"`
	Boundary     grid.BoundaryType `yaml:"boundary"`
	Width        int               `yaml:"width"`
	Height       int               `yaml:"height"`
	Neighborhood neighborhood.Mode `yaml:"neighborhood"`
	Storage      StorageKind       `yaml:"storage"`
}

// Sparse reports whether the sparse model was requested.
func (g GridConfig) Sparse() bool {
	return g.Storage == StorageSparse
}

// Structure validates the settings and builds the grid structure.
func (g GridConfig) Structure() (*grid.Structure, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	size, err := grid.NewSize(g.Width, g.Height)
	if err != nil {
		return nil, err
	}
	topology, err := grid.NewTopology(g.Shape, g.Boundary)
	if err != nil {
		return nil, err
	}
	return grid.NewStructure(topology, size)
}

// Apply returns a copy of g with every non-zero override replacing the
// matching setting.
func (g GridConfig) Apply(o core.GridOverrides) (GridConfig, error) {
	if o.Shape != "" {
		shape, err := grid.ParseCellShape(o.Shape)
		if err != nil {
			return g, err
		}
		g.Shape = shape
	}
	if o.Boundary != "" {
		boundary, err := grid.ParseBoundaryType(o.Boundary)
		if err != nil {
			return g, err
		}
		g.Boundary = boundary
	}
	if o.Mode != "" {
		mode, err := neighborhood.ParseMode(o.Mode)
		if err != nil {
			return g, err
		}
		g.Neighborhood = mode
	}
	if o.Storage != "" {
		g.Storage = StorageKind(o.Storage)
	}
	if o.Width > 0 {
		g.Width = o.Width
	}
	if o.Height > 0 {
		g.Height = o.Height
	}
	return g, g.Validate()
}

func (g GridConfig) String() string {
	return fmt.Sprintf("%s %dx%d %s %s", g.Shape, g.Width, g.Height, g.Boundary, g.Storage)
}

// ConwayConfig configures the life-like automaton.
type ConwayConfig struct {
	Grid GridConfig `yaml:"grid"`

	// Rule in B/S notation, e.g. "B3/S23".
	Rule string `yaml:"rule"`

	// Seed is "random", a stock pattern name, a pattern file ID from
	// ~/.gridsim/patterns, or "file:<path>".
	Seed    string  `yaml:"seed"`
	Density float64 `yaml:"density"`

	// MaxSteps stops the run; 0 means unlimited.
	MaxSteps      int  `yaml:"max_steps"`
	StopWhenEmpty bool `yaml:"stop_when_empty"`
}

// ForestConfig configures the forest-fire automaton.
type ForestConfig struct {
	Grid GridConfig `yaml:"grid"`

	Growth       float64 `yaml:"growth"`        // chance an empty cell grows a tree
	Lightning    float64 `yaml:"lightning"`     // chance a tree ignites unprompted
	InitialTrees float64 `yaml:"initial_trees"` // fraction of cells seeded with trees
	MaxSteps     int     `yaml:"max_steps"`
}

// LangtonConfig configures Langton's ant.
type LangtonConfig struct {
	Grid GridConfig `yaml:"grid"`

	// Turns holds one R or L per cell color; "RL" is the classic ant.
	Turns    string `yaml:"turns"`
	Ants     int    `yaml:"ants"`
	MaxSteps int    `yaml:"max_steps"`
}
