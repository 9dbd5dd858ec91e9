package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - step toward higher rows
	ActionDown           // S, Down arrow - step back
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // Escape - go back to menu
	ActionRestart        // R - restart with the same seed
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the action moves the player token.
func (a Action) IsMove() bool {
	return a >= ActionUp && a <= ActionRight
}

// InputFrame holds the actions collected for one simulation tick, in the
// order they were received.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an input frame holding the given actions.
func NewInputFrame(actions ...Action) InputFrame {
	return InputFrame{Actions: actions}
}

// Push appends an action to the frame.
func (f *InputFrame) Push(a Action) {
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Moves returns the movement actions of the frame, order preserved.
func (f InputFrame) Moves() []Action {
	var moves []Action
	for _, a := range f.Actions {
		if a.IsMove() {
			moves = append(moves, a)
		}
	}
	return moves
}

// Clear resets the frame for the next tick, keeping capacity.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}
