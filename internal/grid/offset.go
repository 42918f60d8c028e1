package grid

import (
	"fmt"
	"math"
)

// Offset is a relative delta between two coordinates. For triangles and
// hexagons its meaning depends on the parity class of the originating cell.
type Offset struct {
	DX int
	DY int
}

// Zero is the empty offset.
var Zero = Offset{}

// O is a convenience constructor for Offset.
func O(dx, dy int) Offset {
	return Offset{DX: dx, DY: dy}
}

// Between returns the offset from start to end.
func Between(start, end Coordinate) Offset {
	return Offset{DX: end.X - start.X, DY: end.Y - start.Y}
}

func (o Offset) Add(other Offset) Offset {
	return Offset{DX: o.DX + other.DX, DY: o.DY + other.DY}
}

func (o Offset) Subtract(other Offset) Offset {
	return Offset{DX: o.DX - other.DX, DY: o.DY - other.DY}
}

func (o Offset) Negate() Offset {
	return Offset{DX: -o.DX, DY: -o.DY}
}

func (o Offset) Scale(factor int) Offset {
	return Offset{DX: o.DX * factor, DY: o.DY * factor}
}

func (o Offset) IsZero() bool {
	return o == Zero
}

// ManhattanLength returns |dx| + |dy|.
func (o Offset) ManhattanLength() int {
	return abs(o.DX) + abs(o.DY)
}

// EuclideanLength returns sqrt(dx² + dy²).
func (o Offset) EuclideanLength() float64 {
	return math.Hypot(float64(o.DX), float64(o.DY))
}

// String returns "[+dx, +dy]" with explicit signs.
func (o Offset) String() string {
	return fmt.Sprintf("[%+d, %+d]", o.DX, o.DY)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
