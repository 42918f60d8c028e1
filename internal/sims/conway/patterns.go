package conway

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vovakirdan/gridsim/internal/grid/pattern"
	"github.com/vovakirdan/gridsim/internal/grid/pattern/patternfile"
)

var legend = map[rune]State{'O': Alive, '#': Alive, '*': Alive}

var stock = map[string][]string{
	"glider": {
		".O.",
		"..O",
		"OOO",
	},
	"blinker": {
		"OOO",
	},
	"block": {
		"OO",
		"OO",
	},
	"beehive": {
		".OO.",
		"O..O",
		".OO.",
	},
	"gosper": {
		"........................O...........",
		"......................O.O...........",
		"............OO......OO............OO",
		"...........O...O....OO............OO",
		"OO........O.....O...OO..............",
		"OO........O...O.OO....O.O...........",
		"..........O.....O.......O...........",
		"...........O...O....................",
		"............OO......................",
	},
}

// Pattern returns a stock pattern by name.
func Pattern(name string) (pattern.Pattern[State], error) {
	rows, ok := stock[name]
	if !ok {
		return pattern.Empty[State](), fmt.Errorf("conway: unknown pattern %q", name)
	}
	return pattern.Parse(rows, legend), nil
}

// PatternNames lists the stock patterns in sorted order.
func PatternNames() []string {
	names := make([]string, 0, len(stock))
	for name := range stock {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// filePrefix marks a seed that names a pattern file path.
const filePrefix = "file:"

// ResolvePattern finds the pattern for a seed. A seed is a stock pattern
// name, "file:<path>", or the ID of a file in the pattern library.
func ResolvePattern(seed string, library *patternfile.Loader) (pattern.Pattern[State], error) {
	if path, ok := strings.CutPrefix(seed, filePrefix); ok {
		f, err := library.LoadFile(path)
		if err != nil {
			return pattern.Empty[State](), fmt.Errorf("conway: %w", err)
		}
		return patternfile.Pattern(f, legend, Alive), nil
	}
	if p, err := Pattern(seed); err == nil {
		return p, nil
	}
	f, err := library.LoadByID(seed)
	if err != nil {
		return pattern.Empty[State](), fmt.Errorf("conway: unknown pattern %q", seed)
	}
	return patternfile.Pattern(f, legend, Alive), nil
}
