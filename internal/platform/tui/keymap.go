package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-ascent/internal/config"
	"github.com/vovakirdan/tui-ascent/internal/core"
)

// KeyMapper translates Bubble Tea key messages to discrete actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	// Level actions
	switch key {
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "e":
		return core.ActionToggleEdit, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionEdit
	MenuActionTheme
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ", "space":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "e":
		return MenuActionEdit
	case "t":
		return MenuActionTheme
	}

	return MenuActionNone
}

// movementKey is a key sampled into the keyboard source.
type movementKey int

const (
	keyLeft movementKey = iota
	keyRight
	keyJump
)

var movementKeys = map[string]movementKey{
	"left":  keyLeft,
	"a":     keyLeft,
	"h":     keyLeft,
	"right": keyRight,
	"d":     keyRight,
	"l":     keyRight,
	"up":    keyJump,
	"w":     keyJump,
	" ":     keyJump,
	"space": keyJump,
}

// KeyState approximates held keys from a terminal, which only reports
// presses and auto-repeats. A key counts as held until its hold window
// expires without another press. The first press gets a longer window to
// bridge the terminal's initial repeat delay.
type KeyState struct {
	hold        time.Duration
	repeatDelay time.Duration
	until       map[movementKey]time.Time
}

// NewKeyState creates a tracker using the configured hold windows.
func NewKeyState(cfg config.InputConfig) *KeyState {
	return &KeyState{
		hold:        time.Duration(cfg.KeyHoldMs) * time.Millisecond,
		repeatDelay: time.Duration(cfg.KeyRepeatDelayMs) * time.Millisecond,
		until:       make(map[movementKey]time.Time),
	}
}

// Press records a key press at now. Returns false for keys that are not
// movement keys.
func (k *KeyState) Press(key string, now time.Time) bool {
	mk, ok := movementKeys[key]
	if !ok {
		return false
	}

	// Jump and auto-repeats of a held key get the short window
	window := k.repeatDelay
	if mk == keyJump || k.held(mk, now) {
		window = k.hold
	}
	k.until[mk] = now.Add(window)

	// Pressing one direction releases the other
	switch mk {
	case keyLeft:
		delete(k.until, keyRight)
	case keyRight:
		delete(k.until, keyLeft)
	}
	return true
}

func (k *KeyState) held(mk movementKey, now time.Time) bool {
	until, ok := k.until[mk]
	return ok && now.Before(until)
}

// Snapshot returns the keyboard source as of now.
func (k *KeyState) Snapshot(now time.Time) core.KeyboardState {
	return core.KeyboardState{
		Left:  k.held(keyLeft, now),
		Right: k.held(keyRight, now),
		Up:    k.held(keyJump, now),
	}
}

// Release forgets every held key.
func (k *KeyState) Release() {
	clear(k.until)
}
