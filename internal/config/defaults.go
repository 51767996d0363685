package config

import (
	_ "embed"
)

//go:embed defaults/ascent.yaml
var defaultAscentYAML []byte

// DefaultAscentConfig returns the default platformer configuration.
func DefaultAscentConfig() AscentConfig {
	return AscentConfig{
		World: WorldConfig{
			GameWidth:      600,
			GameHeight:     800,
			LevelHeightMax: 4000,
		},
		Player: PlayerConfig{
			Width:        40,
			Height:       40,
			Speed:        5,
			JumpStrength: -13,
		},
		Physics: PhysicsConfig{
			Gravity:          0.5,
			LandingTolerance: 1,
			Timestep:         TimestepFixed,
			NominalTickMs:    1000.0 / 60.0,
			MaxFrameMs:       100,
		},
		Camera: CameraConfig{
			ScrollThreshold: 800 / 2.5,
		},
		Input: InputConfig{
			GamepadDeadzone:  0.2,
			TouchDeadzone:    0.1,
			KeyHoldMs:        120,
			KeyRepeatDelayMs: 550,
		},
		Render: RenderConfig{
			Theme: "day",
		},
		Editor: EditorConfig{
			GridSize:         10,
			PlatformWidth:    150,
			PlatformHeight:   20,
			CheckpointWidth:  40,
			CheckpointHeight: 40,
			TrapWidth:        40,
			TrapHeight:       20,
			MovementSpeed:    60,
			ScrollStep:       100,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultAscentYAML
}
