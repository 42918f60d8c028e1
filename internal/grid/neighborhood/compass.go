package neighborhood

// CompassDirection is one of 16 compass points in clockwise order from North.
type CompassDirection uint8

const (
	N CompassDirection = iota
	NNE
	NE
	ENE
	E
	ESE
	SE
	SSE
	S
	SSW
	SW
	WSW
	W
	WNW
	NW
	NNW
)

const directionCount = 16

var directionInfo = [directionCount]struct {
	abbr  string
	name  string
	arrow string
	level int
}{
	N:   {"N", "North", "↑", 0},
	NNE: {"NNE", "North-northeast", "↑↗", 2},
	NE:  {"NE", "Northeast", "↗", 1},
	ENE: {"ENE", "East-northeast", "→↗", 2},
	E:   {"E", "East", "→", 0},
	ESE: {"ESE", "East-southeast", "→↘", 2},
	SE:  {"SE", "Southeast", "↘", 1},
	SSE: {"SSE", "South-southeast", "↓↘", 2},
	S:   {"S", "South", "↓", 0},
	SSW: {"SSW", "South-southwest", "↓↙", 2},
	SW:  {"SW", "Southwest", "↙", 1},
	WSW: {"WSW", "West-southwest", "←↙", 2},
	W:   {"W", "West", "←", 0},
	WNW: {"WNW", "West-northwest", "←↖", 2},
	NW:  {"NW", "Northwest", "↖", 1},
	NNW: {"NNW", "North-northwest", "↑↖", 2},
}

// Directions lists all compass points clockwise starting at N.
func Directions() []CompassDirection {
	return N.AllClockwise()
}

// String returns the abbreviation, e.g. "NNE".
func (d CompassDirection) String() string {
	if d >= directionCount {
		return "?"
	}
	return directionInfo[d].abbr
}

// Name returns the spelled-out name, e.g. "North-northeast".
func (d CompassDirection) Name() string {
	if d >= directionCount {
		return "Unknown"
	}
	return directionInfo[d].name
}

// Arrow returns a one- or two-glyph arrow for display.
func (d CompassDirection) Arrow() string {
	if d >= directionCount {
		return "?"
	}
	return directionInfo[d].arrow
}

// Level is 0 for cardinal, 1 for intercardinal and 2 for secondary
// intercardinal directions.
func (d CompassDirection) Level() int {
	return directionInfo[d%directionCount].level
}

func (d CompassDirection) Opposite() CompassDirection {
	return (d + 8) % directionCount
}

func (d CompassDirection) NextClockwise() CompassDirection {
	return (d + 1) % directionCount
}

func (d CompassDirection) NextCounterClockwise() CompassDirection {
	return (d + directionCount - 1) % directionCount
}

// AllClockwise returns all 16 directions clockwise, starting with d.
func (d CompassDirection) AllClockwise() []CompassDirection {
	out := make([]CompassDirection, 0, directionCount)
	for cur, i := d, 0; i < directionCount; cur, i = cur.NextClockwise(), i+1 {
		out = append(out, cur)
	}
	return out
}

// AllCounterClockwise returns all 16 directions counterclockwise, starting with d.
func (d CompassDirection) AllCounterClockwise() []CompassDirection {
	out := make([]CompassDirection, 0, directionCount)
	for cur, i := d, 0; i < directionCount; cur, i = cur.NextCounterClockwise(), i+1 {
		out = append(out, cur)
	}
	return out
}
