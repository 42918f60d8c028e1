package neighborhood

import (
	"slices"
	"sync"

	"github.com/vovakirdan/gridsim/internal/grid"
)

// parityClass identifies the structural sub-type of a cell position.
// Square cells always use class 0.
type parityClass uint8

const (
	classPlain   parityClass = iota // square; hexagon even column; triangle pointing up
	classShifted                    // hexagon odd column; triangle pointing down
)

type connectionKey struct {
	shape grid.CellShape
	mode  Mode
	class parityClass
}

var (
	connectionCache = make(map[connectionKey][]Connection, 16)
	cacheMu         sync.RWMutex
)

func classOf(c grid.Coordinate, shape grid.CellShape) parityClass {
	switch shape {
	case grid.Hexagon:
		if c.HasHexagonYOffset() {
			return classShifted
		}
	case grid.Triangle:
		if c.IsTrianglePointingDown() {
			return classShifted
		}
	}
	return classPlain
}

func keyFor(c grid.Coordinate, mode Mode, shape grid.CellShape) connectionKey {
	if shape == grid.Hexagon {
		mode = EdgesOnly
	}
	return connectionKey{shape: shape, mode: mode, class: classOf(c, shape)}
}

// connections returns the shared, read-only connection list for the parity
// class of c. Callers must not modify the returned slice.
func connections(c grid.Coordinate, mode Mode, shape grid.CellShape) []Connection {
	key := keyFor(c, mode, shape)

	cacheMu.RLock()
	list, ok := connectionCache[key]
	cacheMu.RUnlock()
	if ok {
		return list
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()
	if list, ok = connectionCache[key]; ok {
		return list
	}
	list = buildConnections(key)
	connectionCache[key] = list
	return list
}

// Connections returns a copy of the connection list that applies to the
// cell at c.
func Connections(c grid.Coordinate, mode Mode, shape grid.CellShape) []Connection {
	return slices.Clone(connections(c, mode, shape))
}

func edge(dx, dy int, d CompassDirection) Connection {
	return Connection{Offset: grid.O(dx, dy), Direction: d, Type: Edge}
}

func vertex(dx, dy int, d CompassDirection) Connection {
	return Connection{Offset: grid.O(dx, dy), Direction: d, Type: Vertex}
}

func buildConnections(key connectionKey) []Connection {
	switch key.shape {
	case grid.Square:
		if key.mode == EdgesOnly {
			return []Connection{
				edge(0, -1, N),
				edge(1, 0, E),
				edge(0, 1, S),
				edge(-1, 0, W),
			}
		}
		return []Connection{
			edge(0, -1, N),
			vertex(1, -1, NE),
			edge(1, 0, E),
			vertex(1, 1, SE),
			edge(0, 1, S),
			vertex(-1, 1, SW),
			edge(-1, 0, W),
			vertex(-1, -1, NW),
		}

	case grid.Hexagon:
		if key.class == classShifted {
			return []Connection{
				edge(0, -1, N),
				edge(1, 0, NE),
				edge(1, 1, SE),
				edge(0, 1, S),
				edge(-1, 1, SW),
				edge(-1, 0, NW),
			}
		}
		return []Connection{
			edge(0, -1, N),
			edge(1, -1, NE),
			edge(1, 0, SE),
			edge(0, 1, S),
			edge(-1, 0, SW),
			edge(-1, -1, NW),
		}

	case grid.Triangle:
		down := key.class == classShifted
		switch {
		case down && key.mode == EdgesOnly:
			return []Connection{
				edge(0, -1, N),
				edge(1, 0, SE),
				edge(-1, 0, SW),
			}
		case !down && key.mode == EdgesOnly:
			return []Connection{
				edge(1, 0, NE),
				edge(0, 1, S),
				edge(-1, 0, NW),
			}
		case down:
			return []Connection{
				edge(0, -1, N),
				vertex(1, -1, NNE),
				vertex(2, -1, NE),
				vertex(2, 0, E),
				edge(1, 0, SE),
				vertex(1, 1, SSE),
				vertex(0, 1, S),
				vertex(-1, 1, SSW),
				edge(-1, 0, SW),
				vertex(-2, 0, W),
				vertex(-2, -1, NW),
				vertex(-1, -1, NNW),
			}
		default:
			return []Connection{
				vertex(0, -1, N),
				vertex(1, -1, NNE),
				edge(1, 0, NE),
				vertex(2, 0, E),
				vertex(2, 1, SE),
				vertex(1, 1, SSE),
				edge(0, 1, S),
				vertex(-1, 1, SSW),
				vertex(-2, 1, SW),
				vertex(-2, 0, W),
				edge(-1, 0, NW),
				vertex(-1, -1, NNW),
			}
		}
	}
	return nil
}
