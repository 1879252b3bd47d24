package core

// Action represents a semantic input token, abstracted from physical key presses.
// The simulation consumes actions and never touches raw device state.
type Action int

const (
	ActionNone       Action = iota
	ActionJump              // Up arrow, W - flap
	ActionStart             // Space, Enter - start a round
	ActionQuit              // Esc, Q, Ctrl+C - exit
	ActionSelectMode        // 1-9 - pick a mode; the frame carries the number
	ActionHistory           // H - toggle round history
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionStart:
		return "Start"
	case ActionQuit:
		return "Quit"
	case ActionSelectMode:
		return "SelectMode"
	case ActionHistory:
		return "History"
	default:
		return "Unknown"
	}
}

// InputFrame holds every action triggered during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Mode is the 1-based mode number attached to ActionSelectMode.
	Mode int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// SelectMode records a mode selection token.
func (f *InputFrame) SelectMode(n int) {
	f.Set(ActionSelectMode)
	f.Mode = n
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Mode = 0
}

// Frame builds an input frame with the given actions set.
func Frame(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}
