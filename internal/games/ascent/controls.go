package ascent

import (
	"strings"

	"github.com/vovakirdan/tui-ascent/internal/core"
)

// Button labels of the on-screen controls.
const (
	leftLabel  = "[ ◀ ]"
	rightLabel = "[ ▶ ]"
	jumpLabel  = "[ JUMP ]"
)

// minStickWidth is the narrowest joystick strip worth drawing.
const minStickWidth = 7

// controls is the on-screen control row: two direction buttons, a
// horizontal joystick strip and a jump button.
type controls struct {
	left, right core.Rect
	stick       core.Rect // Zero width when the screen is too narrow
	jump        core.Rect
}

func newControls(w, h int) controls {
	y := h - controlsRows
	c := controls{
		left:  core.NewRect(1, y, runeLen(leftLabel), 1),
		right: core.NewRect(1+runeLen(leftLabel)+1, y, runeLen(rightLabel), 1),
		jump:  core.NewRect(w-runeLen(jumpLabel)-1, y, runeLen(jumpLabel), 1),
	}
	stickX := c.right.Right() + 2
	if stickW := c.jump.X - 2 - stickX; stickW >= minStickWidth {
		c.stick = core.NewRect(stickX, y, stickW, 1)
	}
	return c
}

// touchAt maps a pressed cell to the touch source it drives.
func (c controls) touchAt(x, y int) (core.TouchState, bool) {
	switch {
	case c.left.Contains(x, y):
		return core.TouchState{Move: -1}, true
	case c.right.Contains(x, y):
		return core.TouchState{Move: 1}, true
	case c.jump.Contains(x, y):
		return core.TouchState{JumpHeld: true}, true
	case c.stick.Contains(x, y):
		half := float64(c.stick.W-1) / 2
		move := (float64(x-c.stick.X) - half) / half
		return core.TouchState{Move: core.ClampF(move, -1, 1)}, true
	}
	return core.TouchState{}, false
}

// draw renders the control row, highlighting what touch currently drives.
func (c controls) draw(dst *core.Screen, touch core.TouchState, theme Theme) {
	color := func(on bool) core.Color {
		if on {
			return theme.Active
		}
		return theme.HUD
	}
	dst.DrawTextColored(c.left.X, c.left.Y, leftLabel, color(touch.Move < 0))
	dst.DrawTextColored(c.right.X, c.right.Y, rightLabel, color(touch.Move > 0))
	dst.DrawTextColored(c.jump.X, c.jump.Y, jumpLabel, color(touch.JumpHeld))

	if c.stick.W == 0 {
		return
	}
	track := []rune("├" + strings.Repeat("─", c.stick.W-2) + "┤")
	half := float64(c.stick.W-1) / 2
	knob := int(half + core.ClampF(touch.Move, -1, 1)*half + 0.5)
	track[knob] = '●'
	dst.DrawTextColored(c.stick.X, c.stick.Y, string(track), theme.HUD)
}

func runeLen(s string) int {
	return len([]rune(s))
}
