package neighborhood

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"github.com/vovakirdan/gridsim/internal/grid"
)

// MaxRadius bounds CoordinatesOfNeighbors.
const MaxRadius = 100

// degree is the number of direct neighbors on an infinite grid.
func degree(shape grid.CellShape, mode Mode) int {
	switch shape {
	case grid.Square:
		if mode == EdgesOnly {
			return 4
		}
		return 8
	case grid.Hexagon:
		return 6
	case grid.Triangle:
		if mode == EdgesOnly {
			return 3
		}
		return 12
	default:
		return 0
	}
}

// MaxNeighborCount returns an upper bound on the number of cells within
// radius rings on an infinite grid. It is meant for allocation sizing only.
func MaxNeighborCount(shape grid.CellShape, mode Mode, radius int) int {
	switch {
	case radius <= 0:
		return 0
	case radius == 1:
		return degree(shape, mode)
	case shape == grid.Hexagon:
		return 1 + 3*radius*(radius+1)
	default:
		return 1 + degree(shape, mode)*radius*(radius+1)/2
	}
}

// CellNeighborsIgnoringEdgeBehavior returns the geometric neighbors of c on
// an unbounded grid. Neither c nor the neighbors are bounds-checked.
func CellNeighborsIgnoringEdgeBehavior(c grid.Coordinate, mode Mode, shape grid.CellShape) []Neighbor {
	conns := connections(c, mode, shape)
	out := make([]Neighbor, len(conns))
	for i, conn := range conns {
		out[i] = Neighbor{
			Start:      c,
			Direction:  conn.Direction,
			Type:       conn.Type,
			Coordinate: c.Offset(conn.Offset),
		}
	}
	return out
}

// CellNeighborDirections returns the compass directions of every direct
// neighbor of c, in connection-list order.
func CellNeighborDirections(c grid.Coordinate, mode Mode, shape grid.CellShape) []CompassDirection {
	conns := connections(c, mode, shape)
	out := make([]CompassDirection, len(conns))
	for i, conn := range conns {
		out[i] = conn.Direction
	}
	return out
}

// IsCellNeighbor reports whether to is a direct geometric neighbor of from.
// A cell is never its own neighbor.
func IsCellNeighbor(from, to grid.Coordinate, mode Mode, shape grid.CellShape) bool {
	if from == to {
		return false
	}
	for _, conn := range connections(from, mode, shape) {
		if from.Offset(conn.Offset) == to {
			return true
		}
	}
	return false
}

// CoordinatesOfNeighbors returns every cell within radius rings of start on
// an unbounded grid, excluding start itself. A radius <= 0 yields an empty
// set; a radius above MaxRadius yields ErrRadiusTooLarge.
func CoordinatesOfNeighbors(start grid.Coordinate, mode Mode, shape grid.CellShape, radius int) (mapset.Set[grid.Coordinate], error) {
	result := mapset.New[grid.Coordinate]()
	if radius <= 0 {
		return result, nil
	}
	if radius > MaxRadius {
		return result, fmt.Errorf("neighborhood: radius %d > %d: %w", radius, MaxRadius, ErrRadiusTooLarge)
	}

	type ring struct {
		c     grid.Coordinate
		depth int
	}

	visited := mapset.New[grid.Coordinate]()
	visited.Put(start)
	q := queue.New[ring]()
	q.Enqueue(ring{c: start})

	for !q.Empty() {
		cur := q.Dequeue()
		if cur.depth == radius {
			continue
		}
		for _, conn := range connections(cur.c, mode, shape) {
			next := cur.c.Offset(conn.Offset)
			if visited.Has(next) {
				continue
			}
			visited.Put(next)
			result.Put(next)
			q.Enqueue(ring{c: next, depth: cur.depth + 1})
		}
	}
	return result, nil
}
