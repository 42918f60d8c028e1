package model

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/gridsim/internal/grid"
)

// Initializer prepares a freshly created model before the first step.
type Initializer[E comparable] func(m Writable[E]) error

// Then runs next after i.
func (i Initializer[E]) Then(next Initializer[E]) Initializer[E] {
	return func(m Writable[E]) error {
		if err := i(m); err != nil {
			return err
		}
		return next(m)
	}
}

// Compose runs initializers in order and stops at the first error.
func Compose[E comparable](inits ...Initializer[E]) Initializer[E] {
	return func(m Writable[E]) error {
		for _, init := range inits {
			if err := init(m); err != nil {
				return err
			}
		}
		return nil
	}
}

// Identity leaves the model untouched.
func Identity[E comparable]() Initializer[E] {
	return func(Writable[E]) error { return nil }
}

// Cleared resets every cell to the default entity.
func Cleared[E comparable]() Initializer[E] {
	return func(m Writable[E]) error {
		m.Clear()
		return nil
	}
}

// Constant fills every cell with e.
func Constant[E comparable](e E) Initializer[E] {
	return func(m Writable[E]) error {
		m.Fill(e)
		return nil
	}
}

// Border sets the outermost ring of cells to e.
func Border[E comparable](e E) Initializer[E] {
	return func(m Writable[E]) error {
		s := m.Structure()
		maxX, maxY := s.Width()-1, s.Height()-1
		for c := range s.All() {
			if c.X == 0 || c.Y == 0 || c.X == maxX || c.Y == maxY {
				if err := m.SetEntity(c, e); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// Checkerboard alternates a and b, starting with a at the origin.
func Checkerboard[E comparable](a, b E) Initializer[E] {
	return func(m Writable[E]) error {
		m.FillMapped(func(c grid.Coordinate) E {
			if (c.X+c.Y)%2 == 0 {
				return a
			}
			return b
		})
		return nil
	}
}

// FromCells writes every given cell.
func FromCells[E comparable](cells []Cell[E]) Initializer[E] {
	return func(m Writable[E]) error {
		for _, cell := range cells {
			if err := m.SetEntity(cell.Coordinate, cell.Entity); err != nil {
				return err
			}
		}
		return nil
	}
}

// MapCoordinates sets cell c to mapper(c) wherever cond(c) holds. A nil
// cond maps every cell.
func MapCoordinates[E comparable](mapper func(grid.Coordinate) E, cond func(grid.Coordinate) bool) Initializer[E] {
	return func(m Writable[E]) error {
		for c := range m.Structure().All() {
			if cond != nil && !cond(c) {
				continue
			}
			if err := m.SetEntity(c, mapper(c)); err != nil {
				return err
			}
		}
		return nil
	}
}

// MapEntities replaces every entity with mapper(entity).
func MapEntities[E comparable](mapper func(E) E) Initializer[E] {
	return func(m Writable[E]) error {
		m.FillMapped(func(c grid.Coordinate) E {
			return mapper(MustGetEntity[E](m, c))
		})
		return nil
	}
}

// FillRandomly sets every cell from generator.
func FillRandomly[E comparable](generator func(*rand.Rand) E, rng *rand.Rand) Initializer[E] {
	return func(m Writable[E]) error {
		m.FillFunc(func() E { return generator(rng) })
		return nil
	}
}

// PlaceWithProbability sets each cell to supplier() with probability p.
func PlaceWithProbability[E comparable](supplier func() E, p float64, rng *rand.Rand) Initializer[E] {
	return func(m Writable[E]) error {
		for c := range m.Structure().All() {
			if rng.Float64() < p {
				if err := m.SetEntity(c, supplier()); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// PlaceRandomCounted places count entities at random cells that do not
// already hold an equal entity. Each entity gets max(100, area/2) attempts
// before ErrPlacement is returned.
func PlaceRandomCounted[E comparable](count int, supplier func() E, rng *rand.Rand) Initializer[E] {
	return func(m Writable[E]) error {
		s := m.Structure()
		maxAttempts := max(100, s.CellCount()/2)
		for placed := 0; placed < count; placed++ {
			next := supplier()
			ok := false
			for attempt := 0; attempt < maxAttempts; attempt++ {
				c := grid.C(rng.Intn(s.Width()), rng.Intn(s.Height()))
				if MustGetEntity[E](m, c) == next {
					continue
				}
				if err := m.SetEntity(c, next); err != nil {
					return err
				}
				ok = true
				break
			}
			if !ok {
				return fmt.Errorf("model: placed %d of %d after %d attempts: %w", placed, count, maxAttempts, ErrPlacement)
			}
		}
		return nil
	}
}

// PlaceRandomPercent places round(percent * area) entities via PlaceRandomCounted.
func PlaceRandomPercent[E comparable](percent float64, supplier func() E, rng *rand.Rand) Initializer[E] {
	return func(m Writable[E]) error {
		count := int(math.Round(percent * float64(m.Structure().CellCount())))
		return PlaceRandomCounted(count, supplier, rng)(m)
	}
}

// PlaceShuffledCounted visits cells in a random permutation and places
// count entities on cells that do not already hold an equal entity.
func PlaceShuffledCounted[E comparable](count int, supplier func() E, rng *rand.Rand) Initializer[E] {
	return func(m Writable[E]) error {
		if count <= 0 {
			return nil
		}
		coords := m.Structure().Coordinates()
		rng.Shuffle(len(coords), func(i, j int) { coords[i], coords[j] = coords[j], coords[i] })

		placed := 0
		next := supplier()
		for _, c := range coords {
			if MustGetEntity[E](m, c) == next {
				continue
			}
			if err := m.SetEntity(c, next); err != nil {
				return err
			}
			placed++
			if placed == count {
				return nil
			}
			next = supplier()
		}
		return fmt.Errorf("model: placed %d of %d: %w", placed, count, ErrPlacement)
	}
}

// Modifier is an Initializer applied between steps, e.g. from a UI action.
type Modifier[E comparable] = Initializer[E]

// SetEntityAt writes a single cell.
func SetEntityAt[E comparable](c grid.Coordinate, e E) Modifier[E] {
	return func(m Writable[E]) error {
		return m.SetEntity(c, e)
	}
}

// OnlyIf runs i when cond holds for the model.
func (i Initializer[E]) OnlyIf(cond func(Readable[E]) bool) Initializer[E] {
	return func(m Writable[E]) error {
		if !cond(m) {
			return nil
		}
		return i(m)
	}
}
