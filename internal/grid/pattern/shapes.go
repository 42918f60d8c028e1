package pattern

import "github.com/vovakirdan/gridsim/internal/grid"

// HorizontalLine is length entries along +x.
func HorizontalLine[E comparable](e E, length int) Pattern[E] {
	cells := make(map[grid.Offset]E, max(length, 0))
	for x := 0; x < length; x++ {
		cells[grid.O(x, 0)] = e
	}
	return Pattern[E]{cells: cells}
}

// VerticalLine is length entries along +y.
func VerticalLine[E comparable](e E, length int) Pattern[E] {
	cells := make(map[grid.Offset]E, max(length, 0))
	for y := 0; y < length; y++ {
		cells[grid.O(0, y)] = e
	}
	return Pattern[E]{cells: cells}
}

// Rectangle is the outline of a width x height box.
func Rectangle[E comparable](stroke E, width, height int) Pattern[E] {
	cells := make(map[grid.Offset]E)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				cells[grid.O(x, y)] = stroke
			}
		}
	}
	return Pattern[E]{cells: cells}
}

// Circle is a midpoint-algorithm circle outline, normalized to (0,0).
func Circle[E comparable](stroke E, radius int) Pattern[E] {
	cells := make(map[grid.Offset]E)
	x, y, e := radius, 0, 0
	for x >= y {
		for _, o := range [...]grid.Offset{
			grid.O(x, y), grid.O(y, x), grid.O(-y, x), grid.O(-x, y),
			grid.O(-x, -y), grid.O(-y, -x), grid.O(y, -x), grid.O(x, -y),
		} {
			cells[o] = stroke
		}
		y++
		if e <= 0 {
			e += 2*y + 1
		} else {
			x--
			e -= 2*x + 1
		}
	}
	return Pattern[E]{cells: cells}.Normalized()
}
