package neighborhood

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/gridsim/internal/grid"
)

// ConnectionType tells how two neighboring cells touch.
type ConnectionType uint8

const (
	Edge ConnectionType = iota
	Vertex
)

func (t ConnectionType) String() string {
	if t == Vertex {
		return "VERTEX"
	}
	return "EDGE"
}

// Mode selects which touching cells count as neighbors.
type Mode uint8

const (
	EdgesOnly Mode = iota
	EdgesAndVertices
)

func (m Mode) String() string {
	if m == EdgesAndVertices {
		return "EDGES_AND_VERTICES"
	}
	return "EDGES_ONLY"
}

// ParseMode accepts "edges", "edges_only", "vertices" or "edges_and_vertices".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "edges", "edges_only", "":
		return EdgesOnly, nil
	case "vertices", "edges_and_vertices":
		return EdgesAndVertices, nil
	default:
		return 0, fmt.Errorf("neighborhood: unknown mode %q", s)
	}
}

// Action is the terminal outcome of resolving a coordinate against the
// grid's edge behavior.
type Action uint8

const (
	Valid Action = iota
	Blocked
	Wrapped
	Absorbed
	Reflected
)

func (a Action) String() string {
	switch a {
	case Valid:
		return "VALID"
	case Blocked:
		return "BLOCKED"
	case Wrapped:
		return "WRAPPED"
	case Absorbed:
		return "ABSORBED"
	case Reflected:
		return "REFLECTED"
	default:
		return "UNKNOWN"
	}
}

// Reachable reports whether the mapped coordinate is a usable cell.
func (a Action) Reachable() bool {
	return a == Valid || a == Wrapped || a == Reflected
}

// Connection is one entry of a connection list: where a neighbor lies
// relative to a cell of a given parity class.
type Connection struct {
	Offset    grid.Offset
	Direction CompassDirection
	Type      ConnectionType
}

// Neighbor is a boundary-unaware adjacency fact.
type Neighbor struct {
	Start      grid.Coordinate
	Direction  CompassDirection
	Type       ConnectionType
	Coordinate grid.Coordinate
}

func (n Neighbor) String() string {
	return fmt.Sprintf("%s -%s/%s-> %s", n.Start, n.Direction, n.Type, n.Coordinate)
}

// EdgeResult is a coordinate after edge resolution. Mapped equals Original
// for Valid, Blocked and Absorbed.
type EdgeResult struct {
	Original grid.Coordinate
	Mapped   grid.Coordinate
	Action   Action
}

// NeighborWithEdgeBehavior couples a Neighbor with its resolved EdgeResult.
type NeighborWithEdgeBehavior struct {
	Neighbor
	Mapped grid.Coordinate
	Action Action
}

func (n NeighborWithEdgeBehavior) String() string {
	return fmt.Sprintf("%s => %s %s", n.Neighbor, n.Mapped, n.Action)
}

// MarshalText encodes the mode in its lower-case config spelling.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(m.String())), nil
}

// UnmarshalText parses any spelling accepted by ParseMode.
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
