package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStructure(t *testing.T, shape CellShape, boundary BoundaryType, w, h int) *Structure {
	t.Helper()
	size, err := NewSize(w, h)
	require.NoError(t, err)
	s, err := NewStructure(Topology{Shape: shape, Boundary: boundary}, size)
	require.NoError(t, err)
	return s
}

func TestStructureBoundsMembership(t *testing.T) {
	s := newTestStructure(t, Square, BlockXBlockY, 16, 32)
	min, max := s.MinCoordinateInclusive(), s.MaxCoordinateExclusive()

	assert.Equal(t, Origin, min)
	assert.Equal(t, C(16, 32), max)
	assert.Equal(t, C(15, 31), s.MaxCoordinateInclusive())

	for y := -3; y < 36; y++ {
		for x := -3; x < 20; x++ {
			c := C(x, y)
			assert.Equal(t, c.IsWithinBounds(min, max), s.IsCoordinateValid(c), "coordinate %s", c)
		}
	}
	assert.False(t, s.IsCoordinateValid(Illegal))
}

func TestStructureIterationOrder(t *testing.T) {
	s := newTestStructure(t, Hexagon, WrapXWrapY, 16, 16)

	coords := s.Coordinates()
	require.Len(t, coords, s.CellCount())
	assert.Equal(t, C(0, 0), coords[0])
	assert.Equal(t, C(1, 0), coords[1])
	assert.Equal(t, C(0, 1), coords[16])
	assert.Equal(t, C(15, 15), coords[len(coords)-1])

	for i, c := range coords {
		assert.Equal(t, i, s.Index(c))
		assert.Equal(t, c, s.CoordinateAt(i))
	}

	// Early break stops the sequence.
	n := 0
	for range s.All() {
		n++
		if n == 5 {
			break
		}
	}
	assert.Equal(t, 5, n)
}

func TestNewStructureRejectsInvalid(t *testing.T) {
	_, err := NewStructure(Topology{Shape: CellShape(9), Boundary: BlockXBlockY}, SmallSquare)
	require.ErrorIs(t, err, ErrUnknownShape)

	_, err = NewStructure(Topology{Shape: Square, Boundary: BlockXBlockY}, Size{})
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestStructureEqual(t *testing.T) {
	a := newTestStructure(t, Triangle, ReflectXY, 16, 16)
	b := newTestStructure(t, Triangle, ReflectXY, 16, 16)
	c := newTestStructure(t, Triangle, AbsorbXY, 16, 16)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, "[TRIANGLE REFLECT] [16x16]", a.String())
}
