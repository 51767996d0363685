package sim

import (
	"testing"

	"github.com/vovakirdan/tui-ascent/internal/config"
	"github.com/vovakirdan/tui-ascent/internal/core"
)

func TestAggregate(t *testing.T) {
	cfg := config.DefaultAscentConfig().Input

	tests := []struct {
		name string
		in   core.InputSnapshot
		want Intent
	}{
		{"idle", core.InputSnapshot{}, Intent{}},
		{"keyboard left", core.InputSnapshot{Keyboard: core.KeyboardState{Left: true}}, Intent{Horizontal: -1}},
		{"keyboard right", core.InputSnapshot{Keyboard: core.KeyboardState{Right: true}}, Intent{Horizontal: 1}},
		{"keyboard both cancel", core.InputSnapshot{Keyboard: core.KeyboardState{Left: true, Right: true}}, Intent{}},
		{"touch inside deadzone falls through", core.InputSnapshot{
			Keyboard: core.KeyboardState{Right: true},
			Touch:    core.TouchState{Move: 0.05},
		}, Intent{Horizontal: 1}},
		{"touch beats keyboard", core.InputSnapshot{
			Keyboard: core.KeyboardState{Left: true},
			Touch:    core.TouchState{Move: 0.5},
		}, Intent{Horizontal: 0.5}},
		{"gamepad inside deadzone falls through", core.InputSnapshot{
			Gamepad: core.GamepadState{AxisX: 0.15},
			Touch:   core.TouchState{Move: -0.6},
		}, Intent{Horizontal: -0.6}},
		{"gamepad beats everything", core.InputSnapshot{
			Keyboard: core.KeyboardState{Left: true},
			Gamepad:  core.GamepadState{AxisX: 0.9},
			Touch:    core.TouchState{Move: -0.6},
		}, Intent{Horizontal: 0.9}},
		{"gamepad clamped", core.InputSnapshot{Gamepad: core.GamepadState{AxisX: -1.5}}, Intent{Horizontal: -1}},
		{"jump from keyboard", core.InputSnapshot{Keyboard: core.KeyboardState{Up: true}}, Intent{Jump: true}},
		{"jump from gamepad", core.InputSnapshot{Gamepad: core.GamepadState{JumpHeld: true}}, Intent{Jump: true}},
		{"jump from touch", core.InputSnapshot{Touch: core.TouchState{JumpHeld: true}}, Intent{Jump: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.in, cfg)
			if got != tt.want {
				t.Errorf("Aggregate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
