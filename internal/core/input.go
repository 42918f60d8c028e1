package core

// Action is a semantic control request, decoupled from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionPause          // toggle pause
	ActionStep           // advance one step while paused
	ActionRestart        // reseed and reset
	ActionFaster         // raise the tick rate
	ActionSlower         // lower the tick rate
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionStep:
		return "Step"
	case ActionRestart:
		return "Restart"
	case ActionFaster:
		return "Faster"
	case ActionSlower:
		return "Slower"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions triggered during one tick. The zero
// value is empty and ready to use.
type InputFrame struct {
	bits uint32
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks a for this frame. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone || a > ActionQuit {
		return
	}
	f.bits |= 1 << a
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && a <= ActionQuit && f.bits&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear drops every action ahead of the next frame.
func (f *InputFrame) Clear() {
	f.bits = 0
}
