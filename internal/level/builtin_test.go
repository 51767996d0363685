package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsLoadAndValidate(t *testing.T) {
	levels, err := Builtins()
	require.NoError(t, err)
	require.Len(t, levels, 2)

	for _, l := range levels {
		assert.NoError(t, l.Validate(), l.Name)
		_, ok := l.VictoryCheckpoint()
		assert.True(t, ok, "%s needs a victory checkpoint", l.Name)
	}
}

func TestBuiltinRoccoGeometry(t *testing.T) {
	l, err := Builtin("roccos-impossible-level")
	require.NoError(t, err)

	victory, ok := l.VictoryCheckpoint()
	require.True(t, ok)
	assert.Equal(t, ID(75), victory.ID)

	spawn, ok := l.SpawnCheckpoint()
	require.True(t, ok)
	assert.Equal(t, ID(2), spawn.ID)

	i, ok := l.PlatformIndex(74)
	require.True(t, ok)
	require.NotNil(t, l.Platforms[i].Movement)
	assert.Equal(t, 10000.0, l.Platforms[i].Movement.Speed)

	riding := 0
	for _, tr := range l.Traps {
		if tr.PlatformID == 4 {
			riding++
		}
	}
	assert.Equal(t, 3, riding)
}

func TestBuiltinsReturnClones(t *testing.T) {
	a, err := Builtin("Kirby's Ascent")
	require.NoError(t, err)
	a.Platforms[0].Position.Y = -1

	b, err := Builtin("Kirby's Ascent")
	require.NoError(t, err)
	assert.Equal(t, 3980.0, b.Platforms[0].Position.Y)
}

func TestBuiltinNotFound(t *testing.T) {
	_, err := Builtin("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBlank(t *testing.T) {
	l := Blank("New Level", 600, 4000)
	require.Len(t, l.Platforms, 1)
	assert.Equal(t, 3980.0, l.Platforms[0].Top())
	assert.Equal(t, 600.0, l.Platforms[0].Width)
	assert.NoError(t, l.Validate())
}
