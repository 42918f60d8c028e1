// Package grid provides the value types that describe a cellular grid:
// cell shapes, per-axis edge behaviors, coordinates, offsets, sizes and the
// GridStructure that ties them together.
//
// Everything in this package is immutable and free of I/O. A Structure is
// built once per simulation and shared read-only by the neighbor engine,
// the storage models and the pattern overlay.
//
// Coordinate system: X grows to the right, Y grows downward. Valid cells
// satisfy 0 <= x < width and 0 <= y < height.
//
// Errors:
//   - ErrInvalidSize: width or height odd or outside [MinSize, MaxSize].
//   - ErrInvalidRange: a min/max pair where min >= max.
//   - ErrUnknownShape: a CellShape value outside the enum.
//   - ErrUnknownEdgeBehavior: an EdgeBehavior value outside the enum.
//   - ErrIncompatibleEdgeBehavior: WRAP on one axis mixed with REFLECT on the other.
package grid
