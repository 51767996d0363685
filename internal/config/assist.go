package config

// AssistPreset represents a named physics adjustment.
type AssistPreset string

const (
	AssistNone   AssistPreset = "none"
	AssistFloaty AssistPreset = "floaty"
	AssistHeavy  AssistPreset = "heavy"
)

// ParseAssistPreset maps a CLI value to a preset. Unknown values mean no assist.
func ParseAssistPreset(s string) AssistPreset {
	switch s {
	case "floaty":
		return AssistFloaty
	case "heavy":
		return AssistHeavy
	default:
		return AssistNone
	}
}

// ApplyAssistPreset modifies the config based on an assist preset.
func ApplyAssistPreset(cfg *AscentConfig, preset AssistPreset) {
	switch preset {
	case AssistFloaty:
		// Lower gravity with a matching weaker jump keeps the apex height
		// close to the default while giving more hang time.
		cfg.Physics.Gravity *= 0.75
		cfg.Player.JumpStrength *= 0.9
	case AssistHeavy:
		cfg.Physics.Gravity *= 1.3
		cfg.Player.JumpStrength *= 1.1
		cfg.Player.Speed *= 1.2
	}
}
