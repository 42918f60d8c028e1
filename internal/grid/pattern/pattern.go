// Package pattern describes reusable shapes as maps from relative offset to
// entity, transforms them, and stamps them onto grid models.
package pattern

import (
	"maps"
	"slices"

	"github.com/vovakirdan/gridsim/internal/grid"
	"github.com/vovakirdan/gridsim/internal/grid/model"
)

// Pattern is an immutable offset -> entity mapping. Every transform returns
// a new Pattern.
type Pattern[E comparable] struct {
	cells map[grid.Offset]E
}

// Empty returns a pattern without entries.
func Empty[E comparable]() Pattern[E] {
	return Pattern[E]{cells: map[grid.Offset]E{}}
}

// Of copies m into a new pattern.
func Of[E comparable](m map[grid.Offset]E) Pattern[E] {
	return Pattern[E]{cells: maps.Clone(m)}
}

// OfOffsets places e at each offset.
func OfOffsets[E comparable](e E, offsets ...grid.Offset) Pattern[E] {
	cells := make(map[grid.Offset]E, len(offsets))
	for _, o := range offsets {
		cells[o] = e
	}
	return Pattern[E]{cells: cells}
}

// Singleton places e at a single offset.
func Singleton[E comparable](o grid.Offset, e E) Pattern[E] {
	return Pattern[E]{cells: map[grid.Offset]E{o: e}}
}

// Parse builds a pattern from rows of runes. Runes found in legend become
// entries at (column, row); all other runes are skipped.
func Parse[E comparable](rows []string, legend map[rune]E) Pattern[E] {
	cells := make(map[grid.Offset]E)
	for y, row := range rows {
		for x, r := range []rune(row) {
			if e, ok := legend[r]; ok {
				cells[grid.O(x, y)] = e
			}
		}
	}
	return Pattern[E]{cells: cells}
}

// Combine merges patterns in order; later patterns win on offset collisions.
func Combine[E comparable](patterns ...Pattern[E]) Pattern[E] {
	cells := make(map[grid.Offset]E)
	for _, p := range patterns {
		maps.Copy(cells, p.cells)
	}
	return Pattern[E]{cells: cells}
}

// MapValues converts every entity with fn.
func MapValues[E, R comparable](p Pattern[E], fn func(E) R) Pattern[R] {
	cells := make(map[grid.Offset]R, len(p.cells))
	for o, e := range p.cells {
		cells[o] = fn(e)
	}
	return Pattern[R]{cells: cells}
}

// Len returns the number of entries.
func (p Pattern[E]) Len() int { return len(p.cells) }

func (p Pattern[E]) IsEmpty() bool { return len(p.cells) == 0 }

// Get returns the entity at o.
func (p Pattern[E]) Get(o grid.Offset) (E, bool) {
	e, ok := p.cells[o]
	return e, ok
}

// Offsets returns every offset sorted row-major (dy, then dx).
func (p Pattern[E]) Offsets() []grid.Offset {
	out := slices.Collect(maps.Keys(p.cells))
	slices.SortFunc(out, func(a, b grid.Offset) int {
		if a.DY != b.DY {
			return a.DY - b.DY
		}
		return a.DX - b.DX
	})
	return out
}

// ToMap returns a copy of the underlying mapping.
func (p Pattern[E]) ToMap() map[grid.Offset]E {
	return maps.Clone(p.cells)
}

// Bounds returns the inclusive bounding-box corners. Both are zero for an
// empty pattern.
func (p Pattern[E]) Bounds() (min, max grid.Offset) {
	first := true
	for o := range p.cells {
		if first {
			min, max, first = o, o, false
			continue
		}
		min.DX, min.DY = minInt(min.DX, o.DX), minInt(min.DY, o.DY)
		max.DX, max.DY = maxInt(max.DX, o.DX), maxInt(max.DY, o.DY)
	}
	return min, max
}

// Width of the bounding box; 0 when empty.
func (p Pattern[E]) Width() int {
	if p.IsEmpty() {
		return 0
	}
	min, max := p.Bounds()
	return max.DX - min.DX + 1
}

// Height of the bounding box; 0 when empty.
func (p Pattern[E]) Height() int {
	if p.IsEmpty() {
		return 0
	}
	min, max := p.Bounds()
	return max.DY - min.DY + 1
}

// IsTopLeftAtOrigin reports whether the bounding box starts at (0,0).
func (p Pattern[E]) IsTopLeftAtOrigin() bool {
	min, _ := p.Bounds()
	return min.IsZero()
}

func (p Pattern[E]) transform(fn func(grid.Offset) grid.Offset) Pattern[E] {
	cells := make(map[grid.Offset]E, len(p.cells))
	for o, e := range p.cells {
		cells[fn(o)] = e
	}
	return Pattern[E]{cells: cells}
}

// Shifted moves every entry by d.
func (p Pattern[E]) Shifted(d grid.Offset) Pattern[E] {
	return p.transform(func(o grid.Offset) grid.Offset { return o.Add(d) })
}

// Normalized shifts the pattern so its bounding box starts at (0,0).
func (p Pattern[E]) Normalized() Pattern[E] {
	min, _ := p.Bounds()
	if min.IsZero() {
		return p
	}
	return p.Shifted(min.Negate())
}

// FlipX mirrors the pattern horizontally within its bounding box.
func (p Pattern[E]) FlipX() Pattern[E] {
	min, max := p.Bounds()
	mid := min.DX + max.DX
	return p.transform(func(o grid.Offset) grid.Offset { return grid.O(mid-o.DX, o.DY) })
}

// FlipY mirrors the pattern vertically within its bounding box.
func (p Pattern[E]) FlipY() Pattern[E] {
	min, max := p.Bounds()
	mid := min.DY + max.DY
	return p.transform(func(o grid.Offset) grid.Offset { return grid.O(o.DX, mid-o.DY) })
}

// Rotate90 turns the pattern a quarter turn clockwise (y grows downward)
// and re-anchors its top-left at (0,0).
func (p Pattern[E]) Rotate90() Pattern[E] {
	return p.transform(func(o grid.Offset) grid.Offset { return grid.O(-o.DY, o.DX) }).Normalized()
}

// Rotate180 turns the pattern a half turn and re-anchors it at (0,0).
func (p Pattern[E]) Rotate180() Pattern[E] {
	return p.transform(func(o grid.Offset) grid.Offset { return o.Negate() }).Normalized()
}

// Rotate270 turns the pattern a quarter turn counterclockwise and
// re-anchors it at (0,0).
func (p Pattern[E]) Rotate270() Pattern[E] {
	return p.transform(func(o grid.Offset) grid.Offset { return grid.O(o.DY, -o.DX) }).Normalized()
}

// Equal reports whether both patterns hold the same entries.
func (p Pattern[E]) Equal(other Pattern[E]) bool {
	return maps.Equal(p.cells, other.cells)
}

// Place writes every entry at anchor+offset. Entries landing outside the
// model's structure are skipped silently. It returns the number written.
func Place[E comparable](p Pattern[E], m model.Writable[E], anchor grid.Coordinate) int {
	s := m.Structure()
	placed := 0
	for o, e := range p.cells {
		c := anchor.Offset(o)
		if !s.IsCoordinateValid(c) {
			continue
		}
		if err := m.SetEntity(c, e); err == nil {
			placed++
		}
	}
	return placed
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
