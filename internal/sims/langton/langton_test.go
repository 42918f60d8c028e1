package langton

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/gridsim/internal/config"
	"github.com/vovakirdan/gridsim/internal/core"
	"github.com/vovakirdan/gridsim/internal/grid"
	"github.com/vovakirdan/gridsim/internal/grid/model"
	"github.com/vovakirdan/gridsim/internal/grid/neighborhood"
)

func testConfig(boundary grid.BoundaryType) config.LangtonConfig {
	c := config.DefaultLangtonConfig()
	c.Grid.Width, c.Grid.Height = 16, 16
	c.Grid.Boundary = boundary
	return c
}

func newSim(t *testing.T, c config.LangtonConfig) *Sim {
	t.Helper()
	s := New()
	require.NoError(t, s.ResetWith(c))
	return s
}

func step(t *testing.T, s *Sim, n int) {
	t.Helper()
	for range n {
		_, err := s.Step(core.NewInputFrame())
		require.NoError(t, err)
	}
}

func TestClassicAntFirstSteps(t *testing.T) {
	s := newSim(t, testConfig(grid.WrapXWrapY))
	start := s.Ants()[0]
	require.Equal(t, grid.C(8, 8), start.Position)
	require.Equal(t, neighborhood.N, start.Heading)

	step(t, s, 1)
	ant := s.Ants()[0]
	assert.Equal(t, grid.C(9, 8), ant.Position)
	assert.Equal(t, neighborhood.E, ant.Heading)
	assert.Equal(t, Color(1), model.MustGetEntity(s.Current(), grid.C(8, 8)))

	// Four right turns on white cells close a square back at the start.
	step(t, s, 3)
	ant = s.Ants()[0]
	assert.Equal(t, start.Position, ant.Position)
	assert.Equal(t, neighborhood.N, ant.Heading)
	assert.Equal(t, 4, s.State().Population)

	// The start cell is now colored, so the ant turns left.
	step(t, s, 1)
	ant = s.Ants()[0]
	assert.Equal(t, grid.C(7, 8), ant.Position)
	assert.Equal(t, neighborhood.W, ant.Heading)
	assert.Equal(t, 3, s.State().Population)
}

func TestEdgeBehaviorOnAnt(t *testing.T) {
	tests := []struct {
		name     string
		boundary grid.BoundaryType
		alive    bool
		position grid.Coordinate
		heading  neighborhood.CompassDirection
	}{
		{"absorb", grid.AbsorbXY, false, grid.C(0, 8), neighborhood.W},
		{"block", grid.BlockXBlockY, true, grid.C(0, 8), neighborhood.E},
		{"wrap", grid.WrapXWrapY, true, grid.C(15, 8), neighborhood.W},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newSim(t, testConfig(tc.boundary))
			s.ants[0] = Ant{Position: grid.C(0, 8), Heading: neighborhood.N, Alive: true}
			require.NoError(t, s.runner.Current().SetEntity(grid.C(0, 8), 1))

			step(t, s, 1)
			ant := s.Ants()[0]
			assert.Equal(t, tc.alive, ant.Alive)
			assert.Equal(t, tc.position, ant.Position)
			assert.Equal(t, tc.heading, ant.Heading)
			assert.Equal(t, !tc.alive, s.State().Finished)
		})
	}
}

func TestMultipleAntsAndMaxSteps(t *testing.T) {
	c := testConfig(grid.WrapXWrapY)
	c.Ants = 3
	c.Turns = "LLRR"
	c.MaxSteps = 50
	s := newSim(t, c)
	assert.Equal(t, 3, s.AliveAnts())

	res, err := s.Run(context.Background(), 1000, nil)
	require.NoError(t, err)
	assert.True(t, res.Finished)
	assert.Equal(t, 50, res.StepCount)
	for _, v := range s.Snapshot() {
		assert.Contains(t, []string{"1", "2", "3"}, v.Value)
	}
}

func TestAntOnOtherShapes(t *testing.T) {
	for _, shape := range []grid.CellShape{grid.Triangle, grid.Hexagon} {
		t.Run(shape.String(), func(t *testing.T) {
			c := testConfig(grid.ReflectXY)
			c.Grid.Shape = shape
			s := newSim(t, c)
			step(t, s, 200)
			ant := s.Ants()[0]
			assert.True(t, ant.Alive)
			assert.True(t, s.Structure().IsCoordinateValid(ant.Position))
		})
	}
}

func TestRenderMarksAnt(t *testing.T) {
	s := newSim(t, testConfig(grid.WrapXWrapY))
	screen := core.NewScreen(20, 18)
	s.Render(screen)
	cell := screen.GetCell(8, 8)
	assert.Equal(t, '@', cell.Rune)
	assert.Equal(t, core.ColorBrightRed, cell.Color)
	assert.Contains(t, screen.Row(17), "Langton's Ant RL")
}
