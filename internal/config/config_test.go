package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(defaultAscentYAML)
	require.NoError(t, err)
	assert.Equal(t, DefaultAscentConfig(), cfg)
}

func TestLoadAscentCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("physics:\n  gravity: 0.8\n  timestep: scaled\nplayer:\n  speed: 7\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadAscent(path)
	require.NoError(t, err)

	assert.Equal(t, 0.8, cfg.Physics.Gravity)
	assert.Equal(t, TimestepScaled, cfg.Physics.Timestep)
	assert.Equal(t, 7.0, cfg.Player.Speed)
	// Untouched fields keep defaults
	assert.Equal(t, -13.0, cfg.Player.JumpStrength)
	assert.Equal(t, 4000.0, cfg.World.LevelHeightMax)
}

func TestLoadAscentMissingFile(t *testing.T) {
	_, err := LoadAscent(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadAscentRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("player:\n  jump_strength: 5\nphysics:\n  timestep: warp\n"), 0o600))

	_, err := LoadAscent(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jump_strength")
	assert.Contains(t, err.Error(), "warp")
}

func TestPhysicsScale(t *testing.T) {
	p := DefaultAscentConfig().Physics
	assert.Equal(t, 1.0, p.Scale(33.3), "fixed timestep ignores dt")

	p.Timestep = TimestepScaled
	assert.InDelta(t, 2.0, p.Scale(2*p.NominalTickMs), 1e-9)
	assert.InDelta(t, 0.5, p.Scale(p.NominalTickMs/2), 1e-9)
}

func TestApplyAssistPreset(t *testing.T) {
	base := DefaultAscentConfig()

	cfg := base
	ApplyAssistPreset(&cfg, AssistNone)
	assert.Equal(t, base, cfg)

	cfg = base
	ApplyAssistPreset(&cfg, ParseAssistPreset("floaty"))
	assert.Less(t, cfg.Physics.Gravity, base.Physics.Gravity)
	assert.Less(t, cfg.Player.JumpStrength, 0.0)

	cfg = base
	ApplyAssistPreset(&cfg, ParseAssistPreset("heavy"))
	assert.Greater(t, cfg.Physics.Gravity, base.Physics.Gravity)
	assert.NoError(t, cfg.Validate())
}

func TestEditorSnap(t *testing.T) {
	e := DefaultAscentConfig().Editor
	assert.Equal(t, 120.0, e.Snap(123))
	assert.Equal(t, 130.0, e.Snap(126))
	assert.Equal(t, -10.0, e.Snap(-7))

	e.GridSize = 0
	assert.Equal(t, 123.4, e.Snap(123.4))
}
