// Package config provides YAML-based tuning for the ascent simulation:
// world dimensions, player physics, camera thresholds and input deadzones.
package config

import "math"

// TimestepMode selects how player motion relates to elapsed frame time.
type TimestepMode string

const (
	// TimestepFixed applies player speed, jump and gravity as per-tick
	// constants, matching behaviour at the nominal tick rate regardless of
	// the real frame delta. Moving platforms still scale by elapsed time.
	TimestepFixed TimestepMode = "fixed"
	// TimestepScaled scales gravity and velocity integration by
	// dt / nominal tick so player motion is frame-rate independent.
	TimestepScaled TimestepMode = "scaled"
)

// AscentConfig contains all configuration for the platformer simulation.
type AscentConfig struct {
	World   WorldConfig   `yaml:"world"`
	Player  PlayerConfig  `yaml:"player"`
	Physics PhysicsConfig `yaml:"physics"`
	Camera  CameraConfig  `yaml:"camera"`
	Input   InputConfig   `yaml:"input"`
	Render  RenderConfig  `yaml:"render"`
	Editor  EditorConfig  `yaml:"editor"`
}

// WorldConfig defines the playfield and level dimensions in pixels.
type WorldConfig struct {
	GameWidth      float64 `yaml:"game_width"`
	GameHeight     float64 `yaml:"game_height"`
	LevelHeightMax float64 `yaml:"level_height_max"`
}

// PlayerConfig defines the player box and its movement constants.
type PlayerConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`         // Horizontal pixels per tick at full input
	JumpStrength float64 `yaml:"jump_strength"` // Vertical impulse, negative = up
}

// PhysicsConfig defines the integrator parameters.
type PhysicsConfig struct {
	Gravity          float64      `yaml:"gravity"`           // Added to velocity.y every tick
	LandingTolerance float64      `yaml:"landing_tolerance"` // Pixels the previous bottom may sit below a platform top
	Timestep         TimestepMode `yaml:"timestep"`
	NominalTickMs    float64      `yaml:"nominal_tick_ms"` // Frame time the per-tick constants are tuned for
	MaxFrameMs       float64      `yaml:"max_frame_ms"`    // Upper bound on a single tick's dt
}

// CameraConfig defines the vertical scroll dead zone.
type CameraConfig struct {
	ScrollThreshold float64 `yaml:"scroll_threshold"`
}

// InputConfig defines deadzones for analog sources and the terminal key hold window.
type InputConfig struct {
	GamepadDeadzone  float64 `yaml:"gamepad_deadzone"`
	TouchDeadzone    float64 `yaml:"touch_deadzone"`
	KeyHoldMs        int     `yaml:"key_hold_ms"`         // How long a repeated key counts as held
	KeyRepeatDelayMs int     `yaml:"key_repeat_delay_ms"` // How long a first press counts as held
}

// RenderConfig defines presentation options.
type RenderConfig struct {
	Theme string `yaml:"theme"`
}

// EditorConfig defines the sizes of objects placed in edit mode.
type EditorConfig struct {
	GridSize         float64 `yaml:"grid_size"` // Placement snaps to multiples of this
	PlatformWidth    float64 `yaml:"platform_width"`
	PlatformHeight   float64 `yaml:"platform_height"`
	CheckpointWidth  float64 `yaml:"checkpoint_width"`
	CheckpointHeight float64 `yaml:"checkpoint_height"`
	TrapWidth        float64 `yaml:"trap_width"`
	TrapHeight       float64 `yaml:"trap_height"`
	MovementSpeed    float64 `yaml:"movement_speed"` // px/s for platforms set moving in the editor
	ScrollStep       float64 `yaml:"scroll_step"`    // Camera pixels per scroll key press
}

// Snap rounds v to the nearest grid line.
func (e EditorConfig) Snap(v float64) float64 {
	if e.GridSize <= 0 {
		return v
	}
	return math.Round(v/e.GridSize) * e.GridSize
}

// Scale returns the timestep multiplier for a frame of dtMs milliseconds.
func (p PhysicsConfig) Scale(dtMs float64) float64 {
	if p.Timestep != TimestepScaled || p.NominalTickMs <= 0 {
		return 1
	}
	return dtMs / p.NominalTickMs
}
