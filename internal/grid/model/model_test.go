package model

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/gridsim/internal/grid"
)

func testStructure(t *testing.T, w, h int) *grid.Structure {
	t.Helper()
	size, err := grid.NewSize(w, h)
	require.NoError(t, err)
	s, err := grid.NewStructure(grid.Topology{Shape: grid.Square, Boundary: grid.BlockXBlockY}, size)
	require.NoError(t, err)
	return s
}

func implementations(s *grid.Structure) map[string]Writable[string] {
	return map[string]Writable[string]{
		"array":  NewArray(s, "."),
		"sparse": NewSparse(s, "."),
	}
}

func TestModelBoundsErrors(t *testing.T) {
	s := testStructure(t, 16, 16)
	for name, m := range implementations(s) {
		t.Run(name, func(t *testing.T) {
			for _, c := range []grid.Coordinate{grid.C(-1, 0), grid.C(16, 0), grid.C(0, 16), grid.Illegal} {
				_, err := m.GetEntity(c)
				assert.ErrorIs(t, err, ErrOutOfBounds)
				assert.ErrorIs(t, m.SetEntity(c, "x"), ErrOutOfBounds)
				assert.ErrorIs(t, m.SetEntityToDefault(c), ErrOutOfBounds)
				assert.ErrorIs(t, m.SwapEntities(grid.C(0, 0), c), ErrOutOfBounds)
				_, err = m.IsDefaultEntity(c)
				assert.ErrorIs(t, err, ErrOutOfBounds)

				_, ok := Lookup[string](m, c)
				assert.False(t, ok)
			}
			assert.Panics(t, func() { MustGetEntity[string](m, grid.C(99, 99)) })
		})
	}
}

func TestModelBasics(t *testing.T) {
	s := testStructure(t, 16, 16)
	for name, m := range implementations(s) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, ".", m.DefaultEntity())
			assert.Equal(t, name == "sparse", m.IsSparse())
			assert.True(t, IsEmpty[string](m))

			require.NoError(t, m.SetEntity(grid.C(3, 4), "A"))
			e, ok := Lookup[string](m, grid.C(3, 4))
			require.True(t, ok)
			assert.Equal(t, "A", e)

			isDefault, err := m.IsDefaultEntity(grid.C(3, 4))
			require.NoError(t, err)
			assert.False(t, isDefault)

			require.NoError(t, m.SwapEntities(grid.C(3, 4), grid.C(0, 0)))
			assert.Equal(t, "A", MustGetEntity[string](m, grid.C(0, 0)))
			assert.Equal(t, ".", MustGetEntity[string](m, grid.C(3, 4)))

			require.NoError(t, m.SetEntityToDefault(grid.C(0, 0)))
			assert.True(t, IsEmpty[string](m))
		})
	}
}

func TestSparseRemovesDefaultEntries(t *testing.T) {
	m := NewSparse(testStructure(t, 16, 16), 0)

	require.NoError(t, m.SetEntity(grid.C(1, 1), 5))
	require.NoError(t, m.SetEntity(grid.C(2, 1), 6))
	assert.Equal(t, 2, m.Len())

	require.NoError(t, m.SetEntity(grid.C(1, 1), 0))
	assert.Equal(t, 1, m.Len())

	require.NoError(t, m.SwapEntities(grid.C(2, 1), grid.C(9, 9)))
	assert.Equal(t, 1, m.Len())

	m.Fill(0)
	assert.Equal(t, 0, m.Len())

	m.Fill(3)
	assert.Equal(t, 256, m.Len())

	m.Clear()
	assert.Equal(t, 0, m.Len())
}

func TestCopyIsDeep(t *testing.T) {
	s := testStructure(t, 16, 16)
	for name, m := range implementations(s) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, m.SetEntity(grid.C(5, 5), "A"))

			cp := m.Copy()
			require.NoError(t, cp.SetEntity(grid.C(5, 5), "B"))
			assert.Equal(t, "A", MustGetEntity[string](m, grid.C(5, 5)))
			assert.Equal(t, m.IsSparse(), cp.IsSparse())

			empty := m.CopyWithDefaultEntity()
			assert.True(t, IsEmpty[string](empty))
			assert.Same(t, m.Structure(), empty.Structure())
			assert.Equal(t, m.IsSparse(), empty.IsSparse())
		})
	}
}

func TestFillVariants(t *testing.T) {
	s := testStructure(t, 16, 16)
	for name, m := range implementations(s) {
		t.Run(name, func(t *testing.T) {
			m.Fill("A")
			assert.Equal(t, 256, Count[string](m, func(e string) bool { return e == "A" }))

			n := 0
			m.FillFunc(func() string {
				n++
				if n%2 == 0 {
					return "B"
				}
				return "."
			})
			assert.Equal(t, 128, CountNonDefault[string](m))
			assert.Equal(t, "B", MustGetEntity[string](m, grid.C(1, 0)))

			m.FillMapped(func(c grid.Coordinate) string {
				if c.Y == 2 {
					return "R"
				}
				return "."
			})
			assert.Equal(t, 16, CountNonDefault[string](m))
			assert.Equal(t, map[string]int{"R": 16, ".": 240}, CountEntities[string](m))
		})
	}
}

func TestQueries(t *testing.T) {
	s := testStructure(t, 16, 16)
	for name, m := range implementations(s) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, m.SetEntity(grid.C(7, 1), "bb"))
			require.NoError(t, m.SetEntity(grid.C(2, 3), "a"))
			require.NoError(t, m.SetEntity(grid.C(0, 0), "ccc"))

			cells := FilterSorted[string](m,
				func(e string) bool { return e != "." },
				func(a, b Cell[string]) int { return len(a.Entity) - len(b.Entity) },
			)
			require.Len(t, cells, 3)
			assert.Equal(t, []string{"a", "bb", "ccc"}, []string{cells[0].Entity, cells[1].Entity, cells[2].Entity})

			// Predicate matching the default scans the whole grid.
			assert.Equal(t, 253, Count[string](m, func(e string) bool { return len(e) == 1 && e == "." }))
			assert.Equal(t, 254, Count[string](m, func(e string) bool { return len(e) == 1 }))

			// Non-default cells come out in row-major order.
			var order []grid.Coordinate
			for cell := range m.NonDefaultCells() {
				order = append(order, cell.Coordinate)
			}
			assert.Equal(t, []grid.Coordinate{grid.C(0, 0), grid.C(7, 1), grid.C(2, 3)}, order)

			found, ok := FindCell[string](m, func(c Cell[string]) bool { return strings.HasPrefix(c.Entity, "b") })
			require.True(t, ok)
			assert.Equal(t, grid.C(7, 1), found.Coordinate)

			_, ok = FindCell[string](m, func(c Cell[string]) bool { return c.Entity == "zzz" })
			assert.False(t, ok)

			assert.Len(t, ToMap[string](m), 3)
			set := NonDefaultCoordinates[string](m)
			assert.Equal(t, 3, set.Size())
			assert.True(t, set.Has(grid.C(2, 3)))
		})
	}
}

func TestDenseAndSparseAreEquivalent(t *testing.T) {
	s := testStructure(t, 16, 32)
	entities := []int{0, 1, 2, 3}

	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		dense := NewArray(s, 0)
		sparse := NewSparse(s, 0)
		both := []Writable[int]{dense, sparse}

		randomCoord := func() grid.Coordinate {
			return grid.C(rng.Intn(s.Width()), rng.Intn(s.Height()))
		}

		for op := 0; op < 400; op++ {
			switch rng.Intn(10) {
			case 0:
				e := entities[rng.Intn(len(entities))]
				for _, m := range both {
					m.Fill(e)
				}
			case 1:
				k := rng.Intn(4)
				for _, m := range both {
					m.FillMapped(func(c grid.Coordinate) int { return (c.X*c.Y + k) % 4 })
				}
			case 2, 3:
				a, b := randomCoord(), randomCoord()
				for _, m := range both {
					require.NoError(t, m.SwapEntities(a, b))
				}
			case 4:
				for _, m := range both {
					m.Clear()
				}
			default:
				c, e := randomCoord(), entities[rng.Intn(len(entities))]
				for _, m := range both {
					require.NoError(t, m.SetEntity(c, e))
				}
			}
		}

		assert.True(t, Equal[int](dense, sparse), "seed %d", seed)
		for c := range s.All() {
			require.Equal(t, MustGetEntity[int](dense, c), MustGetEntity[int](sparse, c))
		}

		dc, sc := NonDefaultCoordinates[int](dense), NonDefaultCoordinates[int](sparse)
		require.Equal(t, dc.Size(), sc.Size())
		dc.Each(func(c grid.Coordinate) {
			assert.True(t, sc.Has(c), "seed %d: %s missing from sparse", seed, c)
		})
		assert.Equal(t, CountEntities[int](dense), CountEntities[int](sparse))
	}
}

func TestLayered(t *testing.T) {
	s := testStructure(t, 16, 16)
	terrain := NewArray(s, "grass")
	agents := NewSparse(s, "")

	l, err := NewLayered[string](terrain, agents)
	require.NoError(t, err)
	assert.Equal(t, 2, l.LayerCount())
	assert.Same(t, s, l.Structure())

	require.NoError(t, l.Layer(1).SetEntity(grid.C(2, 2), "ant"))

	got, err := l.GetEntities(grid.C(2, 2))
	require.NoError(t, err)
	assert.Equal(t, []string{"grass", "ant"}, got)

	top, err := l.Top(grid.C(2, 2))
	require.NoError(t, err)
	assert.Equal(t, "ant", top)

	top, err = l.Top(grid.C(3, 2))
	require.NoError(t, err)
	assert.Equal(t, "grass", top)

	_, err = l.GetEntities(grid.C(-1, 0))
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = NewLayered[string]()
	assert.ErrorIs(t, err, ErrNoLayers)

	_, err = NewLayered[string](terrain, NewArray(testStructure(t, 32, 16), ""))
	assert.ErrorIs(t, err, ErrStructureMismatch)
}
