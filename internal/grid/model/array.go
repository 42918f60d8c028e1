package model

import (
	"iter"

	"github.com/vovakirdan/gridsim/internal/grid"
)

// ArrayModel is the dense implementation: one slot per cell, addressed [y][x].
type ArrayModel[E comparable] struct {
	structure *grid.Structure
	def       E
	rows      [][]E
}

// NewArray returns a dense model with every cell set to defaultEntity.
func NewArray[E comparable](s *grid.Structure, defaultEntity E) *ArrayModel[E] {
	m := &ArrayModel[E]{structure: s, def: defaultEntity}
	m.rows = make([][]E, s.Height())
	for y := range m.rows {
		m.rows[y] = make([]E, s.Width())
	}
	m.Clear()
	return m
}

func (m *ArrayModel[E]) sealed() {}

func (m *ArrayModel[E]) Structure() *grid.Structure { return m.structure }
func (m *ArrayModel[E]) DefaultEntity() E           { return m.def }
func (m *ArrayModel[E]) IsSparse() bool             { return false }

func (m *ArrayModel[E]) GetEntity(c grid.Coordinate) (E, error) {
	if !m.structure.IsCoordinateValid(c) {
		var zero E
		return zero, outOfBounds(m.structure, c)
	}
	return m.rows[c.Y][c.X], nil
}

func (m *ArrayModel[E]) IsDefaultEntity(c grid.Coordinate) (bool, error) {
	e, err := m.GetEntity(c)
	if err != nil {
		return false, err
	}
	return e == m.def, nil
}

func (m *ArrayModel[E]) Cells() iter.Seq[Cell[E]] {
	return func(yield func(Cell[E]) bool) {
		for y, row := range m.rows {
			for x, e := range row {
				if !yield(Cell[E]{Coordinate: grid.C(x, y), Entity: e}) {
					return
				}
			}
		}
	}
}

func (m *ArrayModel[E]) NonDefaultCells() iter.Seq[Cell[E]] {
	return func(yield func(Cell[E]) bool) {
		for cell := range m.Cells() {
			if cell.Entity != m.def && !yield(cell) {
				return
			}
		}
	}
}

func (m *ArrayModel[E]) Copy() Writable[E] {
	out := &ArrayModel[E]{structure: m.structure, def: m.def, rows: make([][]E, len(m.rows))}
	for y, row := range m.rows {
		out.rows[y] = append([]E(nil), row...)
	}
	return out
}

func (m *ArrayModel[E]) CopyWithDefaultEntity() Writable[E] {
	return NewArray(m.structure, m.def)
}

func (m *ArrayModel[E]) SetEntity(c grid.Coordinate, e E) error {
	if !m.structure.IsCoordinateValid(c) {
		return outOfBounds(m.structure, c)
	}
	m.rows[c.Y][c.X] = e
	return nil
}

func (m *ArrayModel[E]) SetEntityToDefault(c grid.Coordinate) error {
	return m.SetEntity(c, m.def)
}

func (m *ArrayModel[E]) SwapEntities(a, b grid.Coordinate) error {
	if !m.structure.IsCoordinateValid(a) {
		return outOfBounds(m.structure, a)
	}
	if !m.structure.IsCoordinateValid(b) {
		return outOfBounds(m.structure, b)
	}
	m.rows[a.Y][a.X], m.rows[b.Y][b.X] = m.rows[b.Y][b.X], m.rows[a.Y][a.X]
	return nil
}

func (m *ArrayModel[E]) Fill(e E) {
	for _, row := range m.rows {
		for x := range row {
			row[x] = e
		}
	}
}

func (m *ArrayModel[E]) FillFunc(supplier func() E) {
	for _, row := range m.rows {
		for x := range row {
			row[x] = supplier()
		}
	}
}

func (m *ArrayModel[E]) FillMapped(mapper func(grid.Coordinate) E) {
	for y, row := range m.rows {
		for x := range row {
			row[x] = mapper(grid.C(x, y))
		}
	}
}

func (m *ArrayModel[E]) Clear() {
	m.Fill(m.def)
}
