package core

// GridOverrides replaces individual grid settings read from a simulation's
// config file. Zero values leave the file setting in place.
type GridOverrides struct {
	Shape    string
	Boundary string
	Mode     string
	Storage  string
	Width    int
	Height   int
}

// IsZero reports whether no override is set.
func (o GridOverrides) IsZero() bool {
	return o == GridOverrides{}
}

// RuntimeConfig is passed to a simulation on every Reset.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Steps per second when watched live
	Seed       int64  // RNG seed; 0 lets the platform pick one
	ConfigPath string // Explicit YAML path, empty for the search path
	Grid       GridOverrides
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 10 steps per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 10,
	}
}

// SimState is the externally visible status of a simulation.
type SimState struct {
	Step       int  // Steps executed since the last reset
	Population int  // Non-default cells
	Finished   bool // Termination condition reached
	Paused     bool
}

// StepResult is returned by Simulation.Step.
type StepResult struct {
	State   SimState
	Changed int // Cells whose entity differs from the previous step
}

// CellValue is a non-default cell in a persisted snapshot.
type CellValue struct {
	X, Y  int
	Value string
}
