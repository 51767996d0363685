package sim

import (
	"math"

	"github.com/vovakirdan/tui-ascent/internal/config"
	"github.com/vovakirdan/tui-ascent/internal/core"
)

// Intent is the merged player input for one tick.
type Intent struct {
	Horizontal float64 // In [-1, 1]
	Jump       bool    // Jump held on any source
}

// Aggregate merges every input source into one Intent.
// Horizontal priority: gamepad stick beyond its deadzone, then the on-screen
// joystick beyond its deadzone, then keyboard (left and right together cancel).
func Aggregate(in core.InputSnapshot, cfg config.InputConfig) Intent {
	intent := Intent{
		Jump: in.Keyboard.Up || in.Gamepad.JumpHeld || in.Touch.JumpHeld,
	}

	switch {
	case math.Abs(in.Gamepad.AxisX) > cfg.GamepadDeadzone:
		intent.Horizontal = core.ClampF(in.Gamepad.AxisX, -1, 1)
	case math.Abs(in.Touch.Move) > cfg.TouchDeadzone:
		intent.Horizontal = core.ClampF(in.Touch.Move, -1, 1)
	case in.Keyboard.Left && !in.Keyboard.Right:
		intent.Horizontal = -1
	case in.Keyboard.Right && !in.Keyboard.Left:
		intent.Horizontal = 1
	}
	return intent
}
