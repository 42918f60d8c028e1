package model

import (
	"iter"
	"slices"

	"github.com/vovakirdan/gridsim/internal/grid"
)

// SparseModel is the map-backed implementation. Only non-default entities
// are stored; a miss reads as the default entity.
type SparseModel[E comparable] struct {
	structure *grid.Structure
	def       E
	cells     map[grid.Coordinate]E
}

// NewSparse returns an empty sparse model.
func NewSparse[E comparable](s *grid.Structure, defaultEntity E) *SparseModel[E] {
	return &SparseModel[E]{
		structure: s,
		def:       defaultEntity,
		cells:     make(map[grid.Coordinate]E),
	}
}

func (m *SparseModel[E]) sealed() {}

func (m *SparseModel[E]) Structure() *grid.Structure { return m.structure }
func (m *SparseModel[E]) DefaultEntity() E           { return m.def }
func (m *SparseModel[E]) IsSparse() bool             { return true }

// Len returns the number of stored (non-default) entries.
func (m *SparseModel[E]) Len() int {
	return len(m.cells)
}

func (m *SparseModel[E]) GetEntity(c grid.Coordinate) (E, error) {
	if !m.structure.IsCoordinateValid(c) {
		var zero E
		return zero, outOfBounds(m.structure, c)
	}
	if e, ok := m.cells[c]; ok {
		return e, nil
	}
	return m.def, nil
}

func (m *SparseModel[E]) IsDefaultEntity(c grid.Coordinate) (bool, error) {
	if !m.structure.IsCoordinateValid(c) {
		return false, outOfBounds(m.structure, c)
	}
	_, stored := m.cells[c]
	return !stored, nil
}

func (m *SparseModel[E]) Cells() iter.Seq[Cell[E]] {
	return func(yield func(Cell[E]) bool) {
		for c := range m.structure.All() {
			e, ok := m.cells[c]
			if !ok {
				e = m.def
			}
			if !yield(Cell[E]{Coordinate: c, Entity: e}) {
				return
			}
		}
	}
}

// NonDefaultCells yields stored entries sorted into row-major order.
func (m *SparseModel[E]) NonDefaultCells() iter.Seq[Cell[E]] {
	return func(yield func(Cell[E]) bool) {
		keys := make([]grid.Coordinate, 0, len(m.cells))
		for c := range m.cells {
			keys = append(keys, c)
		}
		slices.SortFunc(keys, func(a, b grid.Coordinate) int {
			return m.structure.Index(a) - m.structure.Index(b)
		})
		for _, c := range keys {
			if !yield(Cell[E]{Coordinate: c, Entity: m.cells[c]}) {
				return
			}
		}
	}
}

func (m *SparseModel[E]) Copy() Writable[E] {
	out := NewSparse(m.structure, m.def)
	for c, e := range m.cells {
		out.cells[c] = e
	}
	return out
}

func (m *SparseModel[E]) CopyWithDefaultEntity() Writable[E] {
	return NewSparse(m.structure, m.def)
}

func (m *SparseModel[E]) SetEntity(c grid.Coordinate, e E) error {
	if !m.structure.IsCoordinateValid(c) {
		return outOfBounds(m.structure, c)
	}
	m.put(c, e)
	return nil
}

func (m *SparseModel[E]) put(c grid.Coordinate, e E) {
	if e == m.def {
		delete(m.cells, c)
		return
	}
	m.cells[c] = e
}

func (m *SparseModel[E]) SetEntityToDefault(c grid.Coordinate) error {
	return m.SetEntity(c, m.def)
}

func (m *SparseModel[E]) SwapEntities(a, b grid.Coordinate) error {
	ea, err := m.GetEntity(a)
	if err != nil {
		return err
	}
	eb, err := m.GetEntity(b)
	if err != nil {
		return err
	}
	m.put(a, eb)
	m.put(b, ea)
	return nil
}

func (m *SparseModel[E]) Fill(e E) {
	clear(m.cells)
	if e == m.def {
		return
	}
	for c := range m.structure.All() {
		m.cells[c] = e
	}
}

func (m *SparseModel[E]) FillFunc(supplier func() E) {
	for c := range m.structure.All() {
		m.put(c, supplier())
	}
}

func (m *SparseModel[E]) FillMapped(mapper func(grid.Coordinate) E) {
	for c := range m.structure.All() {
		m.put(c, mapper(c))
	}
}

func (m *SparseModel[E]) Clear() {
	clear(m.cells)
}
