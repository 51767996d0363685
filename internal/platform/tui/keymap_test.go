package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-ascent/internal/config"
	"github.com/vovakirdan/tui-ascent/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"q quits", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"s is down", runeKey("s"), core.ActionDown, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"esc is back", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionBack, false},
		{"pause", runeKey("p"), core.ActionPause, false},
		{"restart", runeKey("r"), core.ActionRestart, false},
		{"edit", runeKey("e"), core.ActionToggleEdit, false},
		{"movement is not an action", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tc.msg.String(), action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey("k"), MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeySpace}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("e"), MenuActionEdit},
		{runeKey("x"), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tc.msg.String(), got, tc.want)
		}
	}
}

func testInput() config.InputConfig {
	return config.InputConfig{KeyHoldMs: 100, KeyRepeatDelayMs: 500}
}

func TestKeyStateFirstPressBridgesRepeatDelay(t *testing.T) {
	ks := NewKeyState(testInput())
	t0 := time.Unix(1000, 0)

	if !ks.Press("right", t0) {
		t.Fatal("right should be a movement key")
	}
	if !ks.Snapshot(t0.Add(499 * time.Millisecond)).Right {
		t.Error("first press should hold through the repeat delay")
	}
	if ks.Snapshot(t0.Add(501 * time.Millisecond)).Right {
		t.Error("key should be released after the repeat delay")
	}
}

func TestKeyStateRepeatsUseShortWindow(t *testing.T) {
	ks := NewKeyState(testInput())
	t0 := time.Unix(1000, 0)

	ks.Press("d", t0)
	repeat := t0.Add(450 * time.Millisecond)
	ks.Press("d", repeat)

	if !ks.Snapshot(repeat.Add(99 * time.Millisecond)).Right {
		t.Error("repeat should hold for the hold window")
	}
	if ks.Snapshot(repeat.Add(101 * time.Millisecond)).Right {
		t.Error("repeat should not hold past the hold window")
	}
}

func TestKeyStateOppositeDirectionReleases(t *testing.T) {
	ks := NewKeyState(testInput())
	t0 := time.Unix(1000, 0)

	ks.Press("left", t0)
	ks.Press("l", t0.Add(10*time.Millisecond))

	kb := ks.Snapshot(t0.Add(20 * time.Millisecond))
	if kb.Left || !kb.Right {
		t.Errorf("snapshot = %+v, want only right held", kb)
	}
}

func TestKeyStateJumpAndRelease(t *testing.T) {
	ks := NewKeyState(testInput())
	t0 := time.Unix(1000, 0)

	ks.Press(" ", t0)
	if !ks.Snapshot(t0.Add(50 * time.Millisecond)).Up {
		t.Error("space should hold jump")
	}
	if ks.Snapshot(t0.Add(150 * time.Millisecond)).Up {
		t.Error("jump uses the short hold window")
	}

	ks.Press("a", t0)
	ks.Release()
	if ks.Snapshot(t0).Left {
		t.Error("Release should forget held keys")
	}

	if ks.Press("p", t0) {
		t.Error("p is not a movement key")
	}
}

func TestFrameClock(t *testing.T) {
	c := newFrameClock(50)
	t0 := time.Unix(1000, 0)

	if dt := c.next(t0); dt != 20 {
		t.Errorf("first frame = %v, want nominal 20", dt)
	}
	if dt := c.next(t0.Add(35 * time.Millisecond)); dt != 35 {
		t.Errorf("second frame = %v, want 35", dt)
	}
	if dt := c.next(t0); dt != 20 {
		t.Errorf("non-monotonic tick = %v, want nominal 20", dt)
	}

	c.reset()
	if dt := c.next(t0.Add(time.Hour)); dt != 20 {
		t.Errorf("frame after reset = %v, want nominal 20", dt)
	}
}
