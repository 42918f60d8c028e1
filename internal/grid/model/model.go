package model

import (
	"fmt"
	"iter"

	"github.com/vovakirdan/gridsim/internal/grid"
)

// Cell pairs a coordinate with the entity stored there.
type Cell[E comparable] struct {
	Coordinate grid.Coordinate
	Entity     E
}

func (c Cell[E]) String() string {
	return fmt.Sprintf("%s=%v", c.Coordinate, c.Entity)
}

// Readable is the read side of a grid model.
type Readable[E comparable] interface {
	Structure() *grid.Structure
	DefaultEntity() E
	// IsSparse reports whether only non-default entities are stored.
	IsSparse() bool
	// GetEntity returns ErrOutOfBounds for coordinates outside the structure.
	GetEntity(c grid.Coordinate) (E, error)
	// IsDefaultEntity returns ErrOutOfBounds for coordinates outside the structure.
	IsDefaultEntity(c grid.Coordinate) (bool, error)
	// Cells yields every cell in row-major order.
	Cells() iter.Seq[Cell[E]]
	// NonDefaultCells yields cells holding a non-default entity in row-major order.
	NonDefaultCells() iter.Seq[Cell[E]]

	sealed()
}

// Writable adds mutation to Readable. Implementations are ArrayModel and SparseModel.
type Writable[E comparable] interface {
	Readable[E]

	// Copy returns a deep copy sharing the structure.
	Copy() Writable[E]
	// CopyWithDefaultEntity returns an empty model of the same kind and structure.
	CopyWithDefaultEntity() Writable[E]

	SetEntity(c grid.Coordinate, e E) error
	SetEntityToDefault(c grid.Coordinate) error
	// SwapEntities exchanges the entities stored at a and b.
	SwapEntities(a, b grid.Coordinate) error

	// Fill sets every cell to e.
	Fill(e E)
	// FillFunc sets every cell to the next supplier value, in row-major order.
	FillFunc(supplier func() E)
	// FillMapped sets every cell to mapper(coordinate), in row-major order.
	FillMapped(mapper func(grid.Coordinate) E)
	// Clear resets every cell to the default entity.
	Clear()
}

func outOfBounds(s *grid.Structure, c grid.Coordinate) error {
	return fmt.Errorf("model: %s on %s: %w", c, s, ErrOutOfBounds)
}

// New returns a sparse or dense model for s.
func New[E comparable](s *grid.Structure, defaultEntity E, sparse bool) Writable[E] {
	if sparse {
		return NewSparse(s, defaultEntity)
	}
	return NewArray(s, defaultEntity)
}
