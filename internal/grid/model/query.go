package model

import (
	"iter"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/gridsim/internal/grid"
)

// Lookup returns the entity at c and false when c is outside the structure.
func Lookup[E comparable](m Readable[E], c grid.Coordinate) (E, bool) {
	e, err := m.GetEntity(c)
	if err != nil {
		return e, false
	}
	return e, true
}

// MustGetEntity is GetEntity for coordinates already known to be valid,
// such as those produced by Structure.All. It panics on ErrOutOfBounds.
func MustGetEntity[E comparable](m Readable[E], c grid.Coordinate) E {
	e, err := m.GetEntity(c)
	if err != nil {
		panic(err)
	}
	return e
}

// NonDefaultCoordinates returns the set of coordinates holding a
// non-default entity.
func NonDefaultCoordinates[E comparable](m Readable[E]) mapset.Set[grid.Coordinate] {
	set := mapset.New[grid.Coordinate]()
	for cell := range m.NonDefaultCells() {
		set.Put(cell.Coordinate)
	}
	return set
}

// candidates returns the cheapest cell sequence that still contains every
// cell matching pred.
func candidates[E comparable](m Readable[E], pred func(E) bool) iter.Seq[Cell[E]] {
	if pred(m.DefaultEntity()) {
		return m.Cells()
	}
	return m.NonDefaultCells()
}

// Count returns the number of cells whose entity matches pred.
func Count[E comparable](m Readable[E], pred func(E) bool) int {
	n := 0
	for cell := range candidates(m, pred) {
		if pred(cell.Entity) {
			n++
		}
	}
	return n
}

// CountNonDefault returns the number of cells holding a non-default entity.
func CountNonDefault[E comparable](m Readable[E]) int {
	n := 0
	for range m.NonDefaultCells() {
		n++
	}
	return n
}

// Filter returns matching cells in row-major order.
func Filter[E comparable](m Readable[E], pred func(E) bool) []Cell[E] {
	var out []Cell[E]
	for cell := range candidates(m, pred) {
		if pred(cell.Entity) {
			out = append(out, cell)
		}
	}
	return out
}

// FilterSorted returns matching cells ordered by cmp. The sort is stable,
// so cells comparing equal keep row-major order.
func FilterSorted[E comparable](m Readable[E], pred func(E) bool, cmp func(a, b Cell[E]) int) []Cell[E] {
	out := Filter(m, pred)
	slices.SortStableFunc(out, cmp)
	return out
}

// FindCell returns the first cell in row-major order matching pred.
func FindCell[E comparable](m Readable[E], pred func(Cell[E]) bool) (Cell[E], bool) {
	for cell := range m.Cells() {
		if pred(cell) {
			return cell, true
		}
	}
	return Cell[E]{}, false
}

// IsEmpty reports whether every cell holds the default entity.
func IsEmpty[E comparable](m Readable[E]) bool {
	for range m.NonDefaultCells() {
		return false
	}
	return true
}

// ToMap returns the non-default cells keyed by coordinate.
func ToMap[E comparable](m Readable[E]) map[grid.Coordinate]E {
	out := make(map[grid.Coordinate]E)
	for cell := range m.NonDefaultCells() {
		out[cell.Coordinate] = cell.Entity
	}
	return out
}

// CountEntities tallies every entity value across the whole grid,
// including the default.
func CountEntities[E comparable](m Readable[E]) map[E]int {
	out := make(map[E]int)
	nonDefault := 0
	for cell := range m.NonDefaultCells() {
		out[cell.Entity]++
		nonDefault++
	}
	if rest := m.Structure().CellCount() - nonDefault; rest > 0 {
		out[m.DefaultEntity()] += rest
	}
	return out
}

// Equal reports whether two models hold the same entity at every coordinate.
func Equal[E comparable](a, b Readable[E]) bool {
	if !a.Structure().Equal(b.Structure()) {
		return false
	}
	for c := range a.Structure().All() {
		if MustGetEntity(a, c) != MustGetEntity(b, c) {
			return false
		}
	}
	return true
}
