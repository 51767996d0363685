package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/tui-ascent/internal/config"
	"github.com/vovakirdan/tui-ascent/internal/core"
	"github.com/vovakirdan/tui-ascent/internal/level"
)

const frame = 16.7

var idle = core.InputSnapshot{}

// towerLevel has a floor at y=500, a spawn checkpoint above it at the
// player's x, a moving platform with riding spikes and a victory checkpoint.
func towerLevel() level.Level {
	return level.Level{
		Name: "Tower",
		Platforms: []level.Platform{
			{ID: 0, Box: core.NewBox(0, 500, 600, 20)},
			{ID: 1, Box: core.NewBox(100, 100, 100, 20), Movement: &level.Movement{
				Path:  [2]core.Vec2{core.V(100, 100), core.V(300, 100)},
				Speed: 50,
			}},
		},
		Checkpoints: []level.Checkpoint{
			{ID: 10, Box: core.NewBox(280, 300, 40, 40)},
			{ID: 11, Box: core.NewBox(500, 0, 40, 40)},
		},
		Traps: []level.Trap{
			{ID: 20, Box: core.NewBox(180, 80, 10, 20), Kind: level.TrapSpikes, PlatformID: 1},
		},
	}
}

func newTestSession(t *testing.T, l level.Level) *Session {
	t.Helper()
	return NewSession(l, config.DefaultAscentConfig(), Options{})
}

func TestSessionFallsOntoFloor(t *testing.T) {
	s := newTestSession(t, towerLevel())
	require.Equal(t, core.V(280, 260), s.Player().Position)

	var snap Snapshot
	for i := 0; i < 40; i++ {
		snap = s.Tick(frame, idle)
	}
	assert.Equal(t, 460.0, snap.Player.Position.Y)
	assert.True(t, snap.Player.Grounded)
	assert.Equal(t, level.ID(0), snap.Player.GroundedOn)
	assert.Equal(t, []level.ID{10}, snap.Activated)
	assert.False(t, snap.Finished)
	assert.Equal(t, 40, snap.Ticks)
	assert.InDelta(t, 40*frame, snap.ElapsedMs, 1e-9)
}

func TestSessionRidingTrapFollowsPlatform(t *testing.T) {
	s := newTestSession(t, towerLevel())
	for i := 0; i < 100; i++ {
		snap := s.Tick(frame, idle)
		offset := snap.Traps[0].Position.Sub(snap.Platforms[1].Position)
		require.InDelta(t, 80.0, offset.X, 1e-9)
		require.InDelta(t, -20.0, offset.Y, 1e-9)
	}
}

func TestSessionVictoryHaltsTicking(t *testing.T) {
	l := towerLevel()
	// Put the victory checkpoint where the player spawns.
	l.Checkpoints[1].Position = core.V(280, 270)
	s := newTestSession(t, l)

	snap := s.Tick(frame, idle)
	require.True(t, snap.Finished)
	assert.True(t, snap.Events.Finished)
	assert.Equal(t, level.ID(11), snap.VictoryID)

	frozen := s.Tick(frame, core.InputSnapshot{Keyboard: core.KeyboardState{Right: true}})
	assert.Equal(t, snap.Player, frozen.Player)
	assert.Equal(t, snap.Platforms, frozen.Platforms)
	assert.Equal(t, 1, frozen.Ticks)

	s.Restart(false)
	after := s.Snapshot()
	assert.False(t, after.Finished)
	assert.Empty(t, after.Activated)
	assert.Zero(t, after.Ticks)
	assert.Equal(t, 3200.0, after.CameraY)
}

func TestSessionTrapCountsDeath(t *testing.T) {
	l := towerLevel()
	l.Traps = append(l.Traps, level.Trap{ID: 21, Box: core.NewBox(0, 480, 600, 20), Kind: level.TrapSpikes, PlatformID: level.NoID})
	s := newTestSession(t, l)

	deaths := 0
	for i := 0; i < 60; i++ {
		snap := s.Tick(frame, idle)
		if snap.Events.Respawn == RespawnTrap {
			deaths++
			assert.Equal(t, snap.Player.LastCheckpoint, snap.Player.Position)
			assert.Equal(t, core.Vec2{}, snap.Player.Velocity)
		}
		assert.Equal(t, deaths, snap.Deaths)
	}
	assert.Positive(t, deaths)
}

func TestSessionClampsFrameTime(t *testing.T) {
	s := newTestSession(t, towerLevel())
	s.Tick(1e6, idle)

	st, ok := s.Motion(1)
	require.True(t, ok)
	// 100ms at 50px/s over a 200px path.
	assert.InDelta(t, 0.025, st.Progress, 1e-12)

	s.Tick(-5, idle)
	st, _ = s.Motion(1)
	assert.InDelta(t, 0.025, st.Progress, 1e-12)
}

func TestSessionEditModeFreezesAndResets(t *testing.T) {
	s := newTestSession(t, towerLevel())
	for i := 0; i < 50; i++ {
		s.Tick(frame, idle)
	}
	require.NotEqual(t, 100.0, s.Snapshot().Platforms[1].Position.X)

	s.SetMode(ModeEdit)
	snap := s.Snapshot()
	assert.Equal(t, ModeEdit, snap.Mode)
	assert.Equal(t, core.V(100, 100), snap.Platforms[1].Position)
	assert.Equal(t, core.V(180, 80), snap.Traps[0].Position)
	st, _ := s.Motion(1)
	assert.Equal(t, Motion{Progress: 0, Direction: 1}, st)

	frozen := s.Tick(frame, idle)
	assert.Equal(t, snap.Player, frozen.Player)
	assert.Equal(t, snap.Ticks, frozen.Ticks)

	s.ScrollCamera(1000)
	assert.Equal(t, min(snap.CameraY+1000, 3200), s.CameraY())

	s.SetMode(ModePlay)
	snap = s.Snapshot()
	assert.Equal(t, ModePlay, snap.Mode)
	assert.Equal(t, core.V(280, 260), snap.Player.Position)
	assert.Zero(t, snap.Ticks)
}

func TestSessionEditingRequiresEditMode(t *testing.T) {
	s := newTestSession(t, towerLevel())

	_, err := s.AddPlatform(core.NewBox(0, 0, 10, 10))
	assert.ErrorIs(t, err, ErrNotEditing)
	assert.ErrorIs(t, s.MovePlatform(0, core.V(1, 1)), ErrNotEditing)
	assert.ErrorIs(t, s.RemoveCheckpoint(10), ErrNotEditing)
	_, err = s.AddTrap(core.NewBox(0, 0, 10, 20), level.NoID)
	assert.ErrorIs(t, err, ErrNotEditing)
}

func TestSessionEditing(t *testing.T) {
	s := NewSession(towerLevel(), config.DefaultAscentConfig(), Options{Mode: ModeEdit})
	require.Equal(t, level.ID(21), s.NextID())

	id, err := s.AddPlatform(core.NewBox(0, 200, 100, 20))
	require.NoError(t, err)
	assert.Equal(t, level.ID(21), id)

	require.NoError(t, s.EnableMovement(id, core.V(200, 200), 40))
	tmpl := s.Template()
	i, ok := tmpl.PlatformIndex(id)
	require.True(t, ok)
	require.NotNil(t, tmpl.Platforms[i].Movement)
	assert.Equal(t, core.V(0, 200), tmpl.Platforms[i].Movement.Path[0])

	trapID, err := s.AddTrap(core.NewBox(50, 180, 10, 20), id)
	require.NoError(t, err)
	_, err = s.AddTrap(core.NewBox(50, 180, 10, 20), 404)
	assert.ErrorIs(t, err, ErrUnknownPlatform)

	// Moving a platform carries its path and its riders.
	require.NoError(t, s.MovePlatform(id, core.V(10, 150)))
	tmpl = s.Template()
	i, _ = tmpl.PlatformIndex(id)
	assert.Equal(t, [2]core.Vec2{core.V(10, 150), core.V(210, 150)}, tmpl.Platforms[i].Movement.Path)
	for _, tr := range tmpl.Traps {
		if tr.ID == trapID {
			assert.Equal(t, core.V(60, 130), tr.Position)
		}
	}

	require.NoError(t, s.DisableMovement(id))
	_, ok = s.Motion(id)
	assert.False(t, ok)

	cpID, err := s.AddCheckpoint(core.NewBox(300, -40, 40, 40))
	require.NoError(t, err)
	assert.Equal(t, cpID, s.Snapshot().VictoryID, "topmost checkpoint becomes the goal")
	require.NoError(t, s.RemoveCheckpoint(cpID))
	assert.Equal(t, level.ID(11), s.Snapshot().VictoryID)
	assert.ErrorIs(t, s.RemoveCheckpoint(cpID), ErrUnknownObject)

	require.NoError(t, s.RemovePlatform(id))
	assert.ErrorIs(t, s.RemovePlatform(id), ErrUnknownPlatform)
	require.NoError(t, s.RemoveTrap(trapID))
	require.NoError(t, s.Rename("Tower II"))
	assert.Equal(t, "Tower II", s.Template().Name)

	// Edits survive a plain restart but not a full one.
	_, err = s.AddPlatform(core.NewBox(0, 250, 50, 20))
	require.NoError(t, err)
	s.Restart(false)
	assert.Len(t, s.Template().Platforms, 3)
	s.Restart(true)
	assert.Len(t, s.Template().Platforms, 2)
	assert.Equal(t, "Tower", s.Template().Name)
}

func TestSessionWithoutCheckpoints(t *testing.T) {
	l := level.Level{Name: "bare", Platforms: []level.Platform{{ID: 0, Box: core.NewBox(0, 3980, 600, 20)}}}
	s := newTestSession(t, l)
	assert.Equal(t, core.V(280, 3910), s.Player().Position)

	var snap Snapshot
	for i := 0; i < 60; i++ {
		snap = s.Tick(frame, idle)
	}
	assert.True(t, snap.Player.Grounded)
	assert.Equal(t, 3940.0, snap.Player.Position.Y)
	assert.Equal(t, level.NoID, snap.VictoryID)
	assert.False(t, snap.Finished)
}

func TestSessionDoesNotTouchTemplate(t *testing.T) {
	tmpl := towerLevel()
	s := newTestSession(t, tmpl)
	for i := 0; i < 30; i++ {
		s.Tick(frame, idle)
	}
	assert.Equal(t, towerLevel(), tmpl)
}

func TestSessionReload(t *testing.T) {
	s := newTestSession(t, towerLevel())
	s.Tick(frame, idle)

	next := towerLevel()
	next.Name = "Tower (edited on disk)"
	next.Checkpoints = next.Checkpoints[1:]
	s.Reload(next)

	snap := s.Snapshot()
	assert.Equal(t, "Tower (edited on disk)", snap.Name)
	assert.Zero(t, snap.Ticks)
	assert.Equal(t, core.V(500, -40), snap.Player.Position)
}

func TestSessionObjectAt(t *testing.T) {
	s := newTestSession(t, towerLevel())

	tests := []struct {
		name string
		p    core.Vec2
		kind ObjectKind
		id   level.ID
	}{
		{"trap", core.V(185, 90), ObjectTrap, 20},
		{"moving platform", core.V(150, 110), ObjectPlatform, 1},
		{"checkpoint", core.V(290, 310), ObjectCheckpoint, 10},
		{"floor", core.V(10, 505), ObjectPlatform, 0},
		{"empty", core.V(50, 50), ObjectNone, level.NoID},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kind, id := s.ObjectAt(tc.p)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.id, id)
		})
	}
}

func TestSessionRemoveObject(t *testing.T) {
	s := newTestSession(t, towerLevel())
	s.SetMode(ModeEdit)

	require.NoError(t, s.RemoveObject(s.ObjectAt(core.V(185, 90))))
	assert.Empty(t, s.Template().Traps)

	require.NoError(t, s.RemoveObject(s.ObjectAt(core.V(290, 310))))
	assert.Len(t, s.Template().Checkpoints, 1)

	err := s.RemoveObject(s.ObjectAt(core.V(50, 50)))
	assert.ErrorIs(t, err, ErrUnknownObject)
}
