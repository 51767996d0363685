package core

// Action represents a semantic command, abstracted from physical key presses.
// Movement is not an action: it is sampled every tick into an InputSnapshot.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // Up arrow / W - scroll camera up in edit mode
	ActionDown              // Down arrow / S - scroll camera down in edit mode
	ActionConfirm           // Enter - confirm selection in menu
	ActionBack              // B, Escape - go back to menu
	ActionRestart           // R key - play again after victory
	ActionQuit              // Q, Ctrl+C - exit game/session
	ActionPause             // P - pause/unpause
	ActionToggleEdit        // E - switch between play and edit mode
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
	case ActionToggleEdit:
		return "ToggleEdit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the discrete actions triggered during one tick.
type InputFrame struct {
	Actions map[Action]bool
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

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// KeyboardState is the set of movement keys held at sampling time.
type KeyboardState struct {
	Left  bool `yaml:"left"`
	Right bool `yaml:"right"`
	Up    bool `yaml:"up"`
}

// GamepadState is an already-sampled gamepad: primary stick X in [-1, 1]
// and the primary button.
type GamepadState struct {
	AxisX    float64 `yaml:"axis_x"`
	JumpHeld bool    `yaml:"jump"`
}

// TouchState is the on-screen control: a virtual joystick in [-1, 1]
// and the jump button.
type TouchState struct {
	Move     float64 `yaml:"move"`
	JumpHeld bool    `yaml:"jump"`
}

// InputSnapshot is every input source sampled once at the top of a tick.
// It is passed down the tick by value and never re-read.
type InputSnapshot struct {
	Keyboard KeyboardState `yaml:"keyboard"`
	Gamepad  GamepadState  `yaml:"gamepad"`
	Touch    TouchState    `yaml:"touch"`
}
