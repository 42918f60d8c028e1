// Package neighborhood computes which cells touch a given cell and how grid
// edges affect those neighbors.
//
// What:
//
//   - Connection lists: the fixed (offset, direction, connection type) tuples
//     for a shape, a Mode and the parity class of the originating cell.
//   - Edge resolution: map an out-of-bounds coordinate to VALID, BLOCKED,
//     ABSORBED, REFLECTED or WRAPPED using the Structure's axis behaviors.
//   - Multi-ring search: breadth-first expansion up to MaxRadius rings.
//
// Geometry:
//
//   - SQUARE has one parity class.
//   - HEXAGON is flat-top; odd columns are shifted down half a cell. The
//     two parity classes are even and odd columns. Both modes yield the
//     same six edge neighbors.
//   - TRIANGLE alternates orientation along each row. A triangle points
//     down when x%2 == y%2 and up otherwise, giving two parity classes.
//
// Every connection list is symmetric: if B is a neighbor of A in direction
// D, then A is a neighbor of B in direction D.Opposite().
//
// Concurrency: connection lists are memoized in a process-wide cache guarded
// by a sync.RWMutex and are read-only once published. All other functions
// are pure.
//
// Errors:
//   - ErrRadiusTooLarge: radius above MaxRadius.
//   - grid.ErrIncompatibleEdgeBehavior, grid.ErrUnknownEdgeBehavior: raised
//     while resolving an out-of-bounds coordinate.
package neighborhood
