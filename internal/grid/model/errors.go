package model

import "errors"

var (
	// ErrOutOfBounds is returned for reads or writes outside the structure.
	ErrOutOfBounds = errors.New("model: coordinate out of bounds")

	// ErrStructureMismatch is returned when combined models disagree on structure.
	ErrStructureMismatch = errors.New("model: structure mismatch")

	// ErrNoLayers is returned by NewLayered without layers.
	ErrNoLayers = errors.New("model: at least one layer required")

	// ErrPlacement is returned when a random initializer runs out of free cells or attempts.
	ErrPlacement = errors.New("model: unable to place entities")
)
