package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vovakirdan/tui-ascent/internal/config"
	"github.com/vovakirdan/tui-ascent/internal/core"
	"github.com/vovakirdan/tui-ascent/internal/level"
)

func TestProgressOnlyGrows(t *testing.T) {
	p := NewProgress()
	assert.True(t, p.Activate(3))
	assert.True(t, p.Activate(1))
	assert.False(t, p.Activate(3))
	assert.Equal(t, []level.ID{3, 1}, p.Activated())
	assert.Equal(t, 2, p.Len())

	got := p.Activated()
	got[0] = 99
	assert.True(t, p.IsActive(3), "Activated returns a copy")

	p.Finish()
	assert.True(t, p.Finished())

	p.Reset()
	assert.False(t, p.Finished())
	assert.Zero(t, p.Len())
	assert.False(t, p.IsActive(1))
}

func TestSpawnPoint(t *testing.T) {
	cfg := config.DefaultAscentConfig()

	withCheckpoints := level.Level{Checkpoints: []level.Checkpoint{
		{ID: 1, Box: core.NewBox(300, 100, 40, 40)},
		{ID: 2, Box: core.NewBox(10, 3930, 40, 40)},
	}}
	assert.Equal(t, core.V(10, 3890), SpawnPoint(withCheckpoints, cfg.World, cfg.Player))

	fallback := SpawnPoint(level.Level{}, cfg.World, cfg.Player)
	assert.Equal(t, core.V(280, 3910), fallback)

	st := InitialPlayerState(level.Level{}, cfg.World, cfg.Player)
	assert.Equal(t, fallback, st.Position)
	assert.Equal(t, fallback, st.LastCheckpoint)
	assert.Equal(t, level.NoID, st.GroundedOn)
	assert.False(t, st.Grounded)
}
