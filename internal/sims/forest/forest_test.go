package forest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/gridsim/internal/config"
	"github.com/vovakirdan/gridsim/internal/core"
	"github.com/vovakirdan/gridsim/internal/grid"
	"github.com/vovakirdan/gridsim/internal/grid/model"
)

// denseForest is a 16x16 grid full of trees that never regrows or ignites.
func denseForest(boundary grid.BoundaryType) config.ForestConfig {
	c := config.DefaultForestConfig()
	c.Grid.Width, c.Grid.Height = 16, 16
	c.Grid.Boundary = boundary
	c.InitialTrees = 1
	c.Growth = 0
	c.Lightning = 0
	return c
}

func newSim(t *testing.T, c config.ForestConfig, seed int64) *Sim {
	t.Helper()
	s := New()
	require.NoError(t, s.ResetWith(c, seed))
	return s
}

func TestFireSpreadsToEdgeNeighbors(t *testing.T) {
	s := newSim(t, denseForest(grid.AbsorbXY), 1)
	ok, err := s.Ignite(grid.C(8, 8))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, s.Burning())

	res, err := s.Step(core.NewInputFrame())
	require.NoError(t, err)
	assert.Equal(t, 5, res.Changed)
	assert.Equal(t, 4, s.Burning())

	cur := s.Current()
	for _, c := range []grid.Coordinate{grid.C(8, 7), grid.C(9, 8), grid.C(8, 9), grid.C(7, 8)} {
		assert.Equal(t, Fire, model.MustGetEntity(cur, c), c.String())
	}
	assert.Equal(t, Empty, model.MustGetEntity(cur, grid.C(8, 8)))
	assert.Equal(t, Tree, model.MustGetEntity(cur, grid.C(9, 9)))
}

func TestBoundaryControlsSpread(t *testing.T) {
	tests := []struct {
		name     string
		boundary grid.BoundaryType
		wrapped  Cell
	}{
		{"absorb", grid.AbsorbXY, Tree},
		{"block", grid.BlockXBlockY, Tree},
		{"wrap", grid.WrapXWrapY, Fire},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newSim(t, denseForest(tc.boundary), 1)
			_, err := s.Ignite(grid.C(0, 0))
			require.NoError(t, err)
			_, err = s.Step(core.NewInputFrame())
			require.NoError(t, err)

			cur := s.Current()
			assert.Equal(t, tc.wrapped, model.MustGetEntity(cur, grid.C(15, 0)))
			assert.Equal(t, Fire, model.MustGetEntity(cur, grid.C(1, 0)))
		})
	}
}

func TestForestBurnsOut(t *testing.T) {
	c := denseForest(grid.AbsorbXY)
	c.MaxSteps = 40
	s := newSim(t, c, 1)
	_, err := s.Ignite(grid.C(0, 0))
	require.NoError(t, err)

	res, err := s.Run(context.Background(), 100, nil)
	require.NoError(t, err)
	assert.True(t, res.Finished)
	assert.Zero(t, s.State().Population)
	assert.Empty(t, s.Snapshot())
}

func TestIgniteIgnoresNonTrees(t *testing.T) {
	c := denseForest(grid.AbsorbXY)
	c.InitialTrees = 0
	s := newSim(t, c, 1)
	ok, err := s.Ignite(grid.C(3, 3))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Ignite(grid.C(99, 3))
	assert.ErrorIs(t, err, model.ErrOutOfBounds)
}

func TestDeterministicForSeed(t *testing.T) {
	c := config.DefaultForestConfig()
	c.Grid.Width, c.Grid.Height = 32, 16
	c.Lightning = 0.01

	a := newSim(t, c, 99)
	b := newSim(t, c, 99)
	for range 20 {
		_, err := a.Step(core.NewInputFrame())
		require.NoError(t, err)
		_, err = b.Step(core.NewInputFrame())
		require.NoError(t, err)
	}
	assert.Equal(t, a.Snapshot(), b.Snapshot())
	assert.Equal(t, 20, a.State().Step)
}

func TestHexagonForest(t *testing.T) {
	c := denseForest(grid.AbsorbXY)
	c.Grid.Shape = grid.Hexagon
	s := newSim(t, c, 1)
	_, err := s.Ignite(grid.C(8, 8))
	require.NoError(t, err)
	_, err = s.Step(core.NewInputFrame())
	require.NoError(t, err)
	assert.Equal(t, 6, s.Burning())
}
