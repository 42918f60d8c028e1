package model

import (
	"fmt"

	"github.com/vovakirdan/gridsim/internal/grid"
)

// Layered stacks several models over one structure, e.g. terrain below
// agents. Layer 0 is the bottom layer.
type Layered[E comparable] struct {
	layers []Writable[E]
}

// NewLayered requires at least one layer and identical structures.
func NewLayered[E comparable](layers ...Writable[E]) (*Layered[E], error) {
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}
	s := layers[0].Structure()
	for i, l := range layers[1:] {
		if !l.Structure().Equal(s) {
			return nil, fmt.Errorf("model: layer %d is %s, want %s: %w", i+1, l.Structure(), s, ErrStructureMismatch)
		}
	}
	return &Layered[E]{layers: layers}, nil
}

func (l *Layered[E]) Structure() *grid.Structure { return l.layers[0].Structure() }

// LayerCount returns the number of layers.
func (l *Layered[E]) LayerCount() int { return len(l.layers) }

// Layer returns layer i; it panics when i is out of range.
func (l *Layered[E]) Layer(i int) Writable[E] { return l.layers[i] }

// GetEntities returns the entity of every layer at c, bottom first.
func (l *Layered[E]) GetEntities(c grid.Coordinate) ([]E, error) {
	out := make([]E, 0, len(l.layers))
	for _, layer := range l.layers {
		e, err := layer.GetEntity(c)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Top returns the entity of the highest layer at c that is not default,
// falling back to the bottom layer's entity.
func (l *Layered[E]) Top(c grid.Coordinate) (E, error) {
	for i := len(l.layers) - 1; i > 0; i-- {
		isDefault, err := l.layers[i].IsDefaultEntity(c)
		if err != nil {
			var zero E
			return zero, err
		}
		if !isDefault {
			return l.layers[i].GetEntity(c)
		}
	}
	return l.layers[0].GetEntity(c)
}
