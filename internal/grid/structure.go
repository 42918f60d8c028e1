package grid

import (
	"fmt"
	"iter"
)

// Structure composes a Topology with a Size. It is the single source of
// truth for coordinate validity and for the per-axis edge behaviors.
//
// Iteration order is row-major: y ascends in the outer loop and x ascends
// in the inner loop. Fills and snapshots rely on this order being stable.
type Structure struct {
	topology Topology
	size     Size
}

// NewStructure validates the shape, the size and the tessellation multiples.
// Boundary conflicts (WRAP mixed with REFLECT) are reported by the neighbor
// engine when a coordinate leaves the grid; call Topology.Validate to catch
// them up front.
func NewStructure(topology Topology, size Size) (*Structure, error) {
	if !topology.Shape.Valid() {
		return nil, fmt.Errorf("grid: structure: %w", ErrUnknownShape)
	}
	if size.IsZero() {
		return nil, fmt.Errorf("grid: structure: zero size: %w", ErrInvalidSize)
	}
	if m := topology.RequiredWidthMultiple(); size.Width()%m != 0 {
		return nil, fmt.Errorf("grid: structure: width %d not a multiple of %d for %s: %w",
			size.Width(), m, topology, ErrInvalidSize)
	}
	if m := topology.RequiredHeightMultiple(); size.Height()%m != 0 {
		return nil, fmt.Errorf("grid: structure: height %d not a multiple of %d for %s: %w",
			size.Height(), m, topology, ErrInvalidSize)
	}
	return &Structure{topology: topology, size: size}, nil
}

// MustStructure is NewStructure for static setups; it panics on error.
func MustStructure(topology Topology, size Size) *Structure {
	s, err := NewStructure(topology, size)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Structure) Topology() Topology          { return s.topology }
func (s *Structure) Shape() CellShape            { return s.topology.Shape }
func (s *Structure) Boundary() BoundaryType      { return s.topology.Boundary }
func (s *Structure) EdgeBehaviorX() EdgeBehavior { return s.topology.Boundary.X }
func (s *Structure) EdgeBehaviorY() EdgeBehavior { return s.topology.Boundary.Y }
func (s *Structure) Size() Size                  { return s.size }
func (s *Structure) Width() int                  { return s.size.Width() }
func (s *Structure) Height() int                 { return s.size.Height() }

// MinCoordinateInclusive is always the origin.
func (s *Structure) MinCoordinateInclusive() Coordinate {
	return Origin
}

// MaxCoordinateExclusive is (width, height).
func (s *Structure) MaxCoordinateExclusive() Coordinate {
	return Coordinate{X: s.size.Width(), Y: s.size.Height()}
}

// MaxCoordinateInclusive is (width-1, height-1).
func (s *Structure) MaxCoordinateInclusive() Coordinate {
	return s.MaxCoordinateExclusive().Decremented()
}

// IsCoordinateValid is the canonical bounds predicate.
func (s *Structure) IsCoordinateValid(c Coordinate) bool {
	return c.X >= 0 && c.X < s.size.Width() && c.Y >= 0 && c.Y < s.size.Height()
}

// CellCount returns width * height.
func (s *Structure) CellCount() int {
	return s.size.Area()
}

// Index converts a valid coordinate to its position in iteration order.
func (s *Structure) Index(c Coordinate) int {
	return c.Y*s.size.Width() + c.X
}

// CoordinateAt is the inverse of Index.
func (s *Structure) CoordinateAt(index int) Coordinate {
	w := s.size.Width()
	return Coordinate{X: index % w, Y: index / w}
}

// All yields every valid coordinate in row-major order.
func (s *Structure) All() iter.Seq[Coordinate] {
	return func(yield func(Coordinate) bool) {
		for y := 0; y < s.size.Height(); y++ {
			for x := 0; x < s.size.Width(); x++ {
				if !yield(Coordinate{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// Coordinates returns every valid coordinate in row-major order.
func (s *Structure) Coordinates() []Coordinate {
	out := make([]Coordinate, 0, s.CellCount())
	for c := range s.All() {
		out = append(out, c)
	}
	return out
}

// Equal reports whether two structures describe the same grid.
func (s *Structure) Equal(other *Structure) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.topology == other.topology && s.size == other.size
}

func (s *Structure) String() string {
	return s.topology.String() + " " + s.size.String()
}
