// Package sims holds the pieces shared by the bundled simulations:
// neighbor tables, pause handling, drawing and snapshots.
package sims

import (
	"fmt"

	"github.com/vovakirdan/gridsim/internal/core"
	"github.com/vovakirdan/gridsim/internal/grid"
	"github.com/vovakirdan/gridsim/internal/grid/model"
	"github.com/vovakirdan/gridsim/internal/grid/neighborhood"
)

// NeighborTable lists the reachable neighbors of every cell, indexed by
// Structure.Index. Edge behavior is already applied, so a lookup never
// leaves the grid.
type NeighborTable [][]grid.Coordinate

// BuildNeighborTable resolves the neighbors of every cell of s once.
func BuildNeighborTable(s *grid.Structure, mode neighborhood.Mode) (NeighborTable, error) {
	table := make(NeighborTable, s.CellCount())
	for c := range s.All() {
		reachable, err := neighborhood.ReachableNeighbors(c, mode, s)
		if err != nil {
			return nil, fmt.Errorf("sims: neighbors of %s: %w", c, err)
		}
		table[s.Index(c)] = reachable
	}
	return table, nil
}

// Count returns how many neighbors of c hold an entity matching pred.
func Count[E comparable](t NeighborTable, m model.Readable[E], c grid.Coordinate, pred func(E) bool) int {
	n := 0
	for _, nb := range t[m.Structure().Index(c)] {
		if pred(model.MustGetEntity(m, nb)) {
			n++
		}
	}
	return n
}

// Controls tracks pause state across steps.
type Controls struct {
	Paused bool
}

// Advance applies pause and single-step input and reports whether the
// simulation should execute a step this tick.
func (c *Controls) Advance(in core.InputFrame, finished bool) bool {
	if in.Has(core.ActionPause) {
		c.Paused = !c.Paused
	}
	if finished {
		return false
	}
	return !c.Paused || in.Has(core.ActionStep)
}

// Glyph picks the rune and color drawn for one cell.
type Glyph[E comparable] func(c grid.Coordinate, e E) (rune, core.Color)

// Draw renders m into dst, one screen column per grid column, clipped to
// the screen. The bottom row is reserved for the status line.
func Draw[E comparable](dst *core.Screen, m model.Readable[E], glyph Glyph[E]) {
	rows := dst.Height() - 1
	for cell := range m.Cells() {
		if cell.Coordinate.Y >= rows || cell.Coordinate.X >= dst.Width() {
			continue
		}
		r, color := glyph(cell.Coordinate, cell.Entity)
		dst.SetColored(cell.Coordinate.X, cell.Coordinate.Y, r, color)
	}
}

// DrawStatus writes the title and step counters on the last screen row.
func DrawStatus(dst *core.Screen, title string, st core.SimState) {
	line := fmt.Sprintf(" %s  step %d  population %d", title, st.Step, st.Population)
	switch {
	case st.Finished:
		line += "  [finished]"
	case st.Paused:
		line += "  [paused]"
	}
	dst.DrawTextColored(0, dst.Height()-1, line, core.ColorGray)
}

// ShapeGlyph returns a filled marker suited to the cell shape.
func ShapeGlyph(shape grid.CellShape, c grid.Coordinate) rune {
	switch shape {
	case grid.Triangle:
		if c.IsTrianglePointingDown() {
			return '▼'
		}
		return '▲'
	case grid.Hexagon:
		return '●'
	default:
		return '█'
	}
}

// Snapshot lists the non-default cells of m in row-major order.
func Snapshot[E comparable](m model.Readable[E], name func(E) string) []core.CellValue {
	var out []core.CellValue
	for cell := range m.NonDefaultCells() {
		out = append(out, core.CellValue{X: cell.Coordinate.X, Y: cell.Coordinate.Y, Value: name(cell.Entity)})
	}
	return out
}

// Changed counts the cells whose entity differs between a and b.
func Changed[E comparable](a, b model.Readable[E]) int {
	n := 0
	for cell := range a.Cells() {
		if model.MustGetEntity(b, cell.Coordinate) != cell.Entity {
			n++
		}
	}
	return n
}
