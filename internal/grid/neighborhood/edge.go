package neighborhood

import (
	"fmt"

	"github.com/vovakirdan/gridsim/internal/grid"
)

// EdgeActionForCoordinate classifies c against s. In-bounds coordinates are
// Valid. Otherwise the axis behaviors of every axis c leaves are evaluated
// with precedence BLOCK > ABSORB > REFLECT > WRAP.
func EdgeActionForCoordinate(c grid.Coordinate, s *grid.Structure) (Action, error) {
	if s.IsCoordinateValid(c) {
		return Valid, nil
	}

	b := s.Boundary()
	if !b.X.Valid() || !b.Y.Valid() {
		return 0, fmt.Errorf("neighborhood: resolve %s on %s: %w", c, b, grid.ErrUnknownEdgeBehavior)
	}
	if b.Has(grid.Wrap) && b.Has(grid.Reflect) {
		return 0, fmt.Errorf("neighborhood: resolve %s on %s: %w", c, b, grid.ErrIncompatibleEdgeBehavior)
	}

	max := s.MaxCoordinateExclusive()
	outX := c.X < 0 || c.X >= max.X
	outY := c.Y < 0 || c.Y >= max.Y
	hits := func(e grid.EdgeBehavior) bool {
		return (outX && b.X == e) || (outY && b.Y == e)
	}

	switch {
	case hits(grid.Block):
		return Blocked, nil
	case hits(grid.Absorb):
		return Absorbed, nil
	case hits(grid.Reflect):
		return Reflected, nil
	case hits(grid.Wrap):
		return Wrapped, nil
	}
	return 0, fmt.Errorf("neighborhood: resolve %s on %s: %w", c, b, grid.ErrUnknownEdgeBehavior)
}

// IsValidEdgeCoordinate reports whether c resolves to a reachable cell.
func IsValidEdgeCoordinate(c grid.Coordinate, s *grid.Structure) (bool, error) {
	a, err := EdgeActionForCoordinate(c, s)
	if err != nil {
		return false, err
	}
	return a.Reachable(), nil
}

// ApplyEdgeBehaviorToCoordinate resolves c and maps it back into the grid
// for Wrapped and Reflected. Wrapping lands in range for any input.
// Reflection mirrors across the nearest edge and is exact for coordinates
// up to one grid extent outside.
func ApplyEdgeBehaviorToCoordinate(c grid.Coordinate, s *grid.Structure) (EdgeResult, error) {
	action, err := EdgeActionForCoordinate(c, s)
	if err != nil {
		return EdgeResult{}, err
	}

	mapped := c
	min, max := s.MinCoordinateInclusive(), s.MaxCoordinateExclusive()
	switch action {
	case Wrapped:
		mapped = grid.C(wrap(c.X, min.X, s.Width()), wrap(c.Y, min.Y, s.Height()))
	case Reflected:
		mapped = grid.C(reflect(c.X, min.X, max.X), reflect(c.Y, min.Y, max.Y))
	}
	return EdgeResult{Original: c, Mapped: mapped, Action: action}, nil
}

func wrap(v, min, extent int) int {
	return ((v-min)%extent+extent)%extent + min
}

func reflect(v, min, max int) int {
	switch {
	case v < min:
		return min + (min - v - 1)
	case v >= max:
		return max - ((v - max) + 1)
	default:
		return v
	}
}

// CellNeighborWithEdgeBehavior resolves the single neighbor of start in
// direction d. ok is false when start is invalid or the cell has no
// neighbor in that direction.
func CellNeighborWithEdgeBehavior(start grid.Coordinate, mode Mode, d CompassDirection, s *grid.Structure) (n NeighborWithEdgeBehavior, ok bool, err error) {
	if !s.IsCoordinateValid(start) {
		return n, false, nil
	}
	for _, conn := range connections(start, mode, s.Shape()) {
		if conn.Direction != d {
			continue
		}
		nb := Neighbor{Start: start, Direction: d, Type: conn.Type, Coordinate: start.Offset(conn.Offset)}
		res, err := ApplyEdgeBehaviorToCoordinate(nb.Coordinate, s)
		if err != nil {
			return n, false, err
		}
		return NeighborWithEdgeBehavior{Neighbor: nb, Mapped: res.Mapped, Action: res.Action}, true, nil
	}
	return n, false, nil
}

// CellNeighborsWithEdgeBehavior resolves every neighbor of start and groups
// them by mapped coordinate. Wrap and reflect can fold two geometric
// neighbors onto one cell; such collisions share a key. An invalid start
// yields an empty map.
func CellNeighborsWithEdgeBehavior(start grid.Coordinate, mode Mode, s *grid.Structure) (map[grid.Coordinate][]NeighborWithEdgeBehavior, error) {
	out := make(map[grid.Coordinate][]NeighborWithEdgeBehavior)
	if !s.IsCoordinateValid(start) {
		return out, nil
	}
	for _, nb := range CellNeighborsIgnoringEdgeBehavior(start, mode, s.Shape()) {
		res, err := ApplyEdgeBehaviorToCoordinate(nb.Coordinate, s)
		if err != nil {
			return nil, err
		}
		out[res.Mapped] = append(out[res.Mapped], NeighborWithEdgeBehavior{
			Neighbor: nb,
			Mapped:   res.Mapped,
			Action:   res.Action,
		})
	}
	return out, nil
}

// NeighborEdgeResults returns one EdgeResult per distinct mapped coordinate,
// preferring a Valid result when several neighbors collide. Results follow
// connection-list order of their first occurrence.
func NeighborEdgeResults(start grid.Coordinate, mode Mode, s *grid.Structure) ([]EdgeResult, error) {
	if !s.IsCoordinateValid(start) {
		return nil, nil
	}
	var out []EdgeResult
	index := make(map[grid.Coordinate]int)
	for _, nb := range CellNeighborsIgnoringEdgeBehavior(start, mode, s.Shape()) {
		res, err := ApplyEdgeBehaviorToCoordinate(nb.Coordinate, s)
		if err != nil {
			return nil, err
		}
		i, seen := index[res.Mapped]
		if !seen {
			index[res.Mapped] = len(out)
			out = append(out, res)
			continue
		}
		if out[i].Action != Valid && res.Action == Valid {
			out[i] = res
		}
	}
	return out, nil
}

// ReachableNeighbors returns the mapped coordinates of every neighbor of
// start whose action is Reachable, deduplicated, in connection-list order.
func ReachableNeighbors(start grid.Coordinate, mode Mode, s *grid.Structure) ([]grid.Coordinate, error) {
	results, err := NeighborEdgeResults(start, mode, s)
	if err != nil {
		return nil, err
	}
	out := make([]grid.Coordinate, 0, len(results))
	for _, r := range results {
		if r.Action.Reachable() {
			out = append(out, r.Mapped)
		}
	}
	return out, nil
}
