package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadAscent loads the platformer configuration.
// Search order: customPath -> ~/.ascent/configs/ascent.yaml -> ./configs/ascent.yaml -> embedded default.
// Fields missing from a file keep their default values.
func LoadAscent(customPath string) (AscentConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultAscentConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultAscentConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("ascent.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/ascent.yaml"); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultAscentYAML)
	if err != nil {
		return DefaultAscentConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML over the hardcoded defaults and validates the result.
func parse(data []byte) (AscentConfig, error) {
	cfg := DefaultAscentConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every setting that would make the simulation meaningless.
func (c AscentConfig) Validate() error {
	var errs []error
	if c.World.GameWidth <= 0 || c.World.GameHeight <= 0 {
		errs = append(errs, errors.New("world: game dimensions must be positive"))
	}
	if c.World.LevelHeightMax < c.World.GameHeight {
		errs = append(errs, errors.New("world: level_height_max must be at least game_height"))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player: dimensions must be positive"))
	}
	if c.Player.Width > c.World.GameWidth {
		errs = append(errs, errors.New("player: wider than the game"))
	}
	if c.Player.JumpStrength >= 0 {
		errs = append(errs, errors.New("player: jump_strength must be negative"))
	}
	if c.Physics.Timestep != TimestepFixed && c.Physics.Timestep != TimestepScaled {
		errs = append(errs, fmt.Errorf("physics: unknown timestep %q", c.Physics.Timestep))
	}
	if c.Physics.NominalTickMs <= 0 {
		errs = append(errs, errors.New("physics: nominal_tick_ms must be positive"))
	}
	if c.Input.GamepadDeadzone < 0 || c.Input.GamepadDeadzone >= 1 ||
		c.Input.TouchDeadzone < 0 || c.Input.TouchDeadzone >= 1 {
		errs = append(errs, errors.New("input: deadzones must be in [0, 1)"))
	}
	if c.Editor.PlatformWidth <= 0 || c.Editor.PlatformHeight <= 0 {
		errs = append(errs, errors.New("editor: platform dimensions must be positive"))
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ascent", "configs", filename)
}
