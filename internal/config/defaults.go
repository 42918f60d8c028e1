package config

import (
	_ "embed"

	"github.com/vovakirdan/gridsim/internal/grid"
	"github.com/vovakirdan/gridsim/internal/grid/neighborhood"
)

//go:embed defaults/conway.yaml
var defaultConwayYAML []byte

//go:embed defaults/forest.yaml
var defaultForestYAML []byte

//go:embed defaults/langton.yaml
var defaultLangtonYAML []byte

// DefaultGridConfig is a 64x32 square grid that wraps on both axes.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Shape:        grid.Square,
		Boundary:     grid.WrapXWrapY,
		Width:        64,
		Height:       32,
		Neighborhood: neighborhood.EdgesAndVertices,
		Storage:      StorageDense,
	}
}

// DefaultConwayConfig returns the hardcoded Conway defaults.
func DefaultConwayConfig() ConwayConfig {
	g := DefaultGridConfig()
	g.Storage = StorageSparse
	return ConwayConfig{
		Grid:          g,
		Rule:          "B3/S23",
		Seed:          "random",
		Density:       0.25,
		StopWhenEmpty: true,
	}
}

// DefaultForestConfig returns the hardcoded forest-fire defaults.
func DefaultForestConfig() ForestConfig {
	g := DefaultGridConfig()
	g.Neighborhood = neighborhood.EdgesOnly
	g.Boundary = grid.AbsorbXY
	return ForestConfig{
		Grid:         g,
		Growth:       0.03,
		Lightning:    0.0002,
		InitialTrees: 0.5,
	}
}

// DefaultLangtonConfig returns the hardcoded Langton's ant defaults.
func DefaultLangtonConfig() LangtonConfig {
	g := DefaultGridConfig()
	g.Neighborhood = neighborhood.EdgesOnly
	g.Storage = StorageSparse
	return LangtonConfig{
		Grid:  g,
		Turns: "RL",
		Ants:  1,
	}
}

// GetDefaultYAML returns the embedded default YAML for a simulation.
func GetDefaultYAML(simID string) []byte {
	switch simID {
	case "conway":
		return defaultConwayYAML
	case "forest":
		return defaultForestYAML
	case "langton":
		return defaultLangtonYAML
	default:
		return nil
	}
}
