package grid

import "errors"

// Sentinel errors returned (wrapped) by constructors and parsers.
var (
	ErrInvalidSize              = errors.New("grid: invalid size")
	ErrInvalidRange             = errors.New("grid: invalid range")
	ErrUnknownShape             = errors.New("grid: unknown cell shape")
	ErrUnknownEdgeBehavior      = errors.New("grid: unknown edge behavior")
	ErrIncompatibleEdgeBehavior = errors.New("grid: incompatible edge behaviors")
)
