package grid

import (
	"fmt"
	"strings"
)

// CellShape is the regular polygon every cell of a grid is drawn as.
type CellShape uint8

const (
	Triangle CellShape = iota
	Square
	Hexagon
)

// Shapes lists every cell shape in declaration order.
var Shapes = []CellShape{Triangle, Square, Hexagon}

// String returns the upper-case shape name.
func (s CellShape) String() string {
	switch s {
	case Triangle:
		return "TRIANGLE"
	case Square:
		return "SQUARE"
	case Hexagon:
		return "HEXAGON"
	default:
		return "UNKNOWN"
	}
}

// VertexCount returns the number of corners, which equals the number of edges.
func (s CellShape) VertexCount() int {
	switch s {
	case Triangle:
		return 3
	case Square:
		return 4
	case Hexagon:
		return 6
	default:
		return 0
	}
}

// Valid reports whether s is one of the declared shapes.
func (s CellShape) Valid() bool {
	return s <= Hexagon
}

// ParseCellShape parses a case-insensitive shape name.
func ParseCellShape(name string) (CellShape, error) {
	for _, s := range Shapes {
		if strings.EqualFold(name, s.String()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("grid: parse shape %q: %w", name, ErrUnknownShape)
}

// EdgeBehavior decides what happens to a coordinate that leaves the grid
// along one axis.
type EdgeBehavior uint8

const (
	Block EdgeBehavior = iota
	Wrap
	Absorb
	Reflect
)

// String returns the upper-case behavior name.
func (b EdgeBehavior) String() string {
	switch b {
	case Block:
		return "BLOCK"
	case Wrap:
		return "WRAP"
	case Absorb:
		return "ABSORB"
	case Reflect:
		return "REFLECT"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether b is one of the declared behaviors.
func (b EdgeBehavior) Valid() bool {
	return b <= Reflect
}

// BoundaryType pairs the X axis behavior with the Y axis behavior.
// Use one of the canonical values; literal construction is allowed so that
// conflicting pairs can be detected by Validate and by the neighbor engine.
type BoundaryType struct {
	X EdgeBehavior
	Y EdgeBehavior
}

// Canonical boundary types.
var (
	BlockXBlockY = BoundaryType{X: Block, Y: Block}
	BlockXWrapY  = BoundaryType{X: Block, Y: Wrap}
	WrapXBlockY  = BoundaryType{X: Wrap, Y: Block}
	WrapXWrapY   = BoundaryType{X: Wrap, Y: Wrap}
	AbsorbXY     = BoundaryType{X: Absorb, Y: Absorb}
	ReflectXY    = BoundaryType{X: Reflect, Y: Reflect}
)

var boundaryNames = []struct {
	name     string
	boundary BoundaryType
}{
	{"block", BlockXBlockY},
	{"block_x_wrap_y", BlockXWrapY},
	{"wrap_x_block_y", WrapXBlockY},
	{"wrap", WrapXWrapY},
	{"absorb", AbsorbXY},
	{"reflect", ReflectXY},
}

// BoundaryTypes lists the six canonical boundary types.
func BoundaryTypes() []BoundaryType {
	out := make([]BoundaryType, len(boundaryNames))
	for i, b := range boundaryNames {
		out[i] = b.boundary
	}
	return out
}

// ParseBoundaryType parses a canonical boundary name such as "wrap" or
// "block_x_wrap_y".
func ParseBoundaryType(name string) (BoundaryType, error) {
	for _, b := range boundaryNames {
		if strings.EqualFold(name, b.name) {
			return b.boundary, nil
		}
	}
	return BoundaryType{}, fmt.Errorf("grid: parse boundary %q: %w", name, ErrUnknownEdgeBehavior)
}

// Name returns the canonical config name, or "custom" for a non-canonical pair.
func (b BoundaryType) Name() string {
	for _, n := range boundaryNames {
		if n.boundary == b {
			return n.name
		}
	}
	return "custom"
}

// IsUniform reports whether both axes share the same behavior.
func (b BoundaryType) IsUniform() bool {
	return b.X == b.Y
}

// Has reports whether either axis uses behavior e.
func (b BoundaryType) Has(e EdgeBehavior) bool {
	return b.X == e || b.Y == e
}

// Validate rejects unknown behaviors and WRAP mixed with REFLECT.
func (b BoundaryType) Validate() error {
	if !b.X.Valid() || !b.Y.Valid() {
		return fmt.Errorf("grid: boundary %s: %w", b, ErrUnknownEdgeBehavior)
	}
	if b.Has(Wrap) && b.Has(Reflect) {
		return fmt.Errorf("grid: boundary %s: %w", b, ErrIncompatibleEdgeBehavior)
	}
	return nil
}

// String renders "WRAP" for uniform pairs and "BLOCK/WRAP" otherwise.
func (b BoundaryType) String() string {
	if b.IsUniform() {
		return b.X.String()
	}
	return b.X.String() + "/" + b.Y.String()
}

// Topology is the immutable pairing of a cell shape with a boundary type.
type Topology struct {
	Shape    CellShape
	Boundary BoundaryType
}

// NewTopology returns a validated topology.
func NewTopology(shape CellShape, boundary BoundaryType) (Topology, error) {
	t := Topology{Shape: shape, Boundary: boundary}
	if err := t.Validate(); err != nil {
		return Topology{}, err
	}
	return t, nil
}

// Validate checks the shape and both axis behaviors.
func (t Topology) Validate() error {
	if !t.Shape.Valid() {
		return fmt.Errorf("grid: topology: %w", ErrUnknownShape)
	}
	return t.Boundary.Validate()
}

// RequiredWidthMultiple is the factor the grid width must be a multiple of
// so that the tessellation closes seamlessly across a non-blocking X edge.
func (t Topology) RequiredWidthMultiple() int {
	if t.Boundary.X == Block || t.Boundary.X == Absorb {
		return 1
	}
	switch t.Shape {
	case Triangle, Hexagon:
		return 2
	default:
		return 1
	}
}

// RequiredHeightMultiple is the Y-axis counterpart of RequiredWidthMultiple.
func (t Topology) RequiredHeightMultiple() int {
	if t.Boundary.Y == Block || t.Boundary.Y == Absorb {
		return 1
	}
	if t.Shape == Triangle {
		return 2
	}
	return 1
}

func (t Topology) String() string {
	return "[" + t.Shape.String() + " " + t.Boundary.String() + "]"
}
