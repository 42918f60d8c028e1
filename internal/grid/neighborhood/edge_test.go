package neighborhood

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/gridsim/internal/grid"
)

func structure(t *testing.T, shape grid.CellShape, b grid.BoundaryType) *grid.Structure {
	t.Helper()
	size, err := grid.NewSize(16, 16)
	require.NoError(t, err)
	s, err := grid.NewStructure(grid.Topology{Shape: shape, Boundary: b}, size)
	require.NoError(t, err)
	return s
}

func TestEdgeActionPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		boundary grid.BoundaryType
		c        grid.Coordinate
		want     Action
	}{
		{"inside", grid.BlockXBlockY, grid.C(3, 3), Valid},
		{"block", grid.BlockXBlockY, grid.C(-1, 3), Blocked},
		{"absorb", grid.AbsorbXY, grid.C(3, 16), Absorbed},
		{"reflect", grid.ReflectXY, grid.C(16, 16), Reflected},
		{"wrap", grid.WrapXWrapY, grid.C(-1, -1), Wrapped},
		{"wrap x only leaves x", grid.WrapXBlockY, grid.C(-1, 5), Wrapped},
		{"block y wins over wrap x", grid.WrapXBlockY, grid.C(-1, -1), Blocked},
		{"block y only", grid.WrapXBlockY, grid.C(5, 16), Blocked},
		{"block x wins over wrap y", grid.BlockXWrapY, grid.C(16, 16), Blocked},
		{"absorb x wins over reflect y", grid.BoundaryType{X: grid.Absorb, Y: grid.Reflect}, grid.C(-1, -1), Absorbed},
		{"reflect y only", grid.BoundaryType{X: grid.Absorb, Y: grid.Reflect}, grid.C(2, -1), Reflected},
		{"block x wins over absorb y", grid.BoundaryType{X: grid.Block, Y: grid.Absorb}, grid.C(-1, -1), Blocked},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := structure(t, grid.Square, tc.boundary)
			got, err := EdgeActionForCoordinate(tc.c, s)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEdgeActionConfigurationErrors(t *testing.T) {
	mixed := structure(t, grid.Square, grid.BoundaryType{X: grid.Wrap, Y: grid.Reflect})

	a, err := EdgeActionForCoordinate(grid.C(2, 2), mixed)
	require.NoError(t, err)
	assert.Equal(t, Valid, a)

	_, err = EdgeActionForCoordinate(grid.C(-1, 2), mixed)
	require.ErrorIs(t, err, grid.ErrIncompatibleEdgeBehavior)

	unknown := structure(t, grid.Square, grid.BoundaryType{X: grid.EdgeBehavior(7), Y: grid.Block})
	_, err = EdgeActionForCoordinate(grid.C(-1, 2), unknown)
	require.ErrorIs(t, err, grid.ErrUnknownEdgeBehavior)

	_, err = ApplyEdgeBehaviorToCoordinate(grid.C(-1, 2), mixed)
	require.ErrorIs(t, err, grid.ErrIncompatibleEdgeBehavior)
}

func TestWrapRoundTrip(t *testing.T) {
	s := structure(t, grid.Square, grid.WrapXWrapY)
	w, h := s.Width(), s.Height()

	for _, x := range []int{-5*w - 3, -w, -1, 0, 7, w - 1, w, w + 1, 9*w + 4} {
		for _, y := range []int{-7*h - 1, -1, 0, h, 3*h + 15} {
			c := grid.C(x, y)
			res, err := ApplyEdgeBehaviorToCoordinate(c, s)
			require.NoError(t, err)
			assert.True(t, s.IsCoordinateValid(res.Mapped), "%s -> %s", c, res.Mapped)
			assert.Equal(t, c, res.Original)

			again, err := ApplyEdgeBehaviorToCoordinate(res.Mapped, s)
			require.NoError(t, err)
			assert.Equal(t, res.Mapped, again.Mapped)
			assert.Equal(t, Valid, again.Action)
		}
	}

	res, err := ApplyEdgeBehaviorToCoordinate(grid.C(-1, 16), s)
	require.NoError(t, err)
	assert.Equal(t, grid.C(15, 0), res.Mapped)
	assert.Equal(t, Wrapped, res.Action)
}

func TestReflectBoundary(t *testing.T) {
	s := structure(t, grid.Square, grid.ReflectXY)
	w, h := s.Width(), s.Height()

	tests := []struct {
		in, want grid.Coordinate
	}{
		{grid.C(-1, 4), grid.C(0, 4)},
		{grid.C(w, 4), grid.C(w-1, 4)},
		{grid.C(4, -1), grid.C(4, 0)},
		{grid.C(4, h), grid.C(4, h-1)},
		{grid.C(-1, h), grid.C(0, h-1)},
		{grid.C(-3, 4), grid.C(2, 4)},
		{grid.C(w+2, 4), grid.C(w-3, 4)},
	}

	for _, tc := range tests {
		res, err := ApplyEdgeBehaviorToCoordinate(tc.in, s)
		require.NoError(t, err)
		assert.Equal(t, Reflected, res.Action)
		assert.Equal(t, tc.want, res.Mapped, "reflect %s", tc.in)
	}
}

func TestBlockAndAbsorbKeepCoordinate(t *testing.T) {
	for _, b := range []grid.BoundaryType{grid.BlockXBlockY, grid.AbsorbXY} {
		s := structure(t, grid.Hexagon, b)
		res, err := ApplyEdgeBehaviorToCoordinate(grid.C(-1, 20), s)
		require.NoError(t, err)
		assert.Equal(t, grid.C(-1, 20), res.Mapped)
		assert.False(t, res.Action.Reachable())

		ok, err := IsValidEdgeCoordinate(grid.C(-1, 20), s)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestWrappedSquareCornerScenario(t *testing.T) {
	s := structure(t, grid.Square, grid.WrapXWrapY)

	groups, err := CellNeighborsWithEdgeBehavior(grid.C(0, 0), EdgesOnly, s)
	require.NoError(t, err)

	want := map[grid.Coordinate]Action{
		grid.C(15, 0): Wrapped,
		grid.C(1, 0):  Valid,
		grid.C(0, 15): Wrapped,
		grid.C(0, 1):  Valid,
	}
	require.Len(t, groups, len(want))
	for c, action := range want {
		require.Contains(t, groups, c)
		require.Len(t, groups[c], 1)
		assert.Equal(t, action, groups[c][0].Action)
		assert.Equal(t, c, groups[c][0].Mapped)
	}
	for _, g := range groups {
		for _, n := range g {
			assert.NotEqual(t, Blocked, n.Action)
		}
	}
}

func TestCellNeighborsWithEdgeBehaviorCollisions(t *testing.T) {
	// Reflecting the W and NW/SW neighbors of a left-edge cell folds them
	// back onto in-bounds cells that are also direct neighbors.
	s := structure(t, grid.Square, grid.ReflectXY)

	groups, err := CellNeighborsWithEdgeBehavior(grid.C(0, 5), EdgesAndVertices, s)
	require.NoError(t, err)

	// W (-1,5) reflects onto the start cell itself.
	require.Contains(t, groups, grid.C(0, 5))
	assert.Equal(t, Reflected, groups[grid.C(0, 5)][0].Action)

	// NW (-1,4) reflects onto N (0,4).
	require.Len(t, groups[grid.C(0, 4)], 2)

	results, err := NeighborEdgeResults(grid.C(0, 5), EdgesAndVertices, s)
	require.NoError(t, err)
	for _, r := range results {
		if r.Mapped == grid.C(0, 4) {
			assert.Equal(t, Valid, r.Action)
		}
	}
	assert.Len(t, results, len(groups))
}

func TestInvalidStartYieldsNothing(t *testing.T) {
	s := structure(t, grid.Square, grid.WrapXWrapY)

	groups, err := CellNeighborsWithEdgeBehavior(grid.C(-1, 0), EdgesOnly, s)
	require.NoError(t, err)
	assert.Empty(t, groups)

	results, err := NeighborEdgeResults(grid.C(16, 0), EdgesOnly, s)
	require.NoError(t, err)
	assert.Empty(t, results)

	_, ok, err := CellNeighborWithEdgeBehavior(grid.Illegal, EdgesOnly, N, s)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCellNeighborWithEdgeBehavior(t *testing.T) {
	s := structure(t, grid.Square, grid.WrapXWrapY)

	n, ok, err := CellNeighborWithEdgeBehavior(grid.C(0, 0), EdgesOnly, N, s)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, grid.C(0, -1), n.Coordinate)
	assert.Equal(t, grid.C(0, 15), n.Mapped)
	assert.Equal(t, Wrapped, n.Action)

	_, ok, err = CellNeighborWithEdgeBehavior(grid.C(0, 0), EdgesOnly, NE, s)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReachableNeighborsBlocked(t *testing.T) {
	s := structure(t, grid.Square, grid.BlockXBlockY)

	got, err := ReachableNeighbors(grid.C(0, 0), EdgesAndVertices, s)
	require.NoError(t, err)
	assert.ElementsMatch(t, []grid.Coordinate{grid.C(1, 0), grid.C(1, 1), grid.C(0, 1)}, got)
}
