package grid

import (
	"fmt"
	"math"
)

// Coordinate is the absolute address of a cell. Valid cells have
// non-negative components; arithmetic may produce negative or oversized
// values that the neighbor engine later maps back through edge behavior.
type Coordinate struct {
	X int
	Y int
}

// Origin is the top-left cell.
var Origin = Coordinate{}

// Illegal is the sentinel for "no coordinate".
var Illegal = Coordinate{X: math.MinInt, Y: math.MinInt}

// C is a convenience constructor for Coordinate.
func C(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// String returns "(x,y)", or "(ILLEGAL)" for the sentinel.
func (c Coordinate) String() string {
	if c.IsIllegal() {
		return "(ILLEGAL)"
	}
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// IsIllegal reports whether c is the Illegal sentinel.
func (c Coordinate) IsIllegal() bool {
	return c == Illegal
}

// Offset returns c moved by o.
func (c Coordinate) Offset(o Offset) Coordinate {
	return Coordinate{X: c.X + o.DX, Y: c.Y + o.DY}
}

// Add returns c moved by (dx, dy).
func (c Coordinate) Add(dx, dy int) Coordinate {
	return Coordinate{X: c.X + dx, Y: c.Y + dy}
}

// OffsetTo returns the offset that moves c onto target.
func (c Coordinate) OffsetTo(target Coordinate) Offset {
	return Between(c, target)
}

// Incremented returns (x+1, y+1); it turns an inclusive max into an exclusive one.
func (c Coordinate) Incremented() Coordinate {
	return Coordinate{X: c.X + 1, Y: c.Y + 1}
}

// Decremented returns (x-1, y-1); it turns an exclusive max into an inclusive one.
func (c Coordinate) Decremented() Coordinate {
	return Coordinate{X: c.X - 1, Y: c.Y - 1}
}

// IsWithinBounds reports whether min <= c < maxExclusive on both axes.
func (c Coordinate) IsWithinBounds(min, maxExclusive Coordinate) bool {
	return c.X >= min.X && c.X < maxExclusive.X &&
		c.Y >= min.Y && c.Y < maxExclusive.Y
}

// ClampToBounds pulls c into [min, maxExclusive). It returns ErrInvalidRange
// when the range is empty on either axis.
func (c Coordinate) ClampToBounds(min, maxExclusive Coordinate) (Coordinate, error) {
	if min.X >= maxExclusive.X || min.Y >= maxExclusive.Y {
		return Illegal, fmt.Errorf("grid: clamp %s to [%s,%s): %w", c, min, maxExclusive, ErrInvalidRange)
	}
	return Coordinate{
		X: clamp(c.X, min.X, maxExclusive.X-1),
		Y: clamp(c.Y, min.Y, maxExclusive.Y-1),
	}, nil
}

func (c Coordinate) IsEvenColumn() bool { return c.X%2 == 0 }
func (c Coordinate) IsOddColumn() bool  { return c.X%2 != 0 }
func (c Coordinate) IsEvenRow() bool    { return c.Y%2 == 0 }
func (c Coordinate) IsOddRow() bool     { return c.Y%2 != 0 }

// IsTrianglePointingDown reports the triangle parity class: a triangle
// points down when the parities of x and y agree. Negative components are
// handled so the tessellation repeats past the origin.
func (c Coordinate) IsTrianglePointingDown() bool {
	return mod2(c.X) == mod2(c.Y)
}

// HasHexagonYOffset reports the hexagon parity class: odd columns are shifted
// down by half a cell (flat-top layout).
func (c Coordinate) HasHexagonYOffset() bool {
	return mod2(c.X) == 1
}

func mod2(v int) int {
	return ((v % 2) + 2) % 2
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
