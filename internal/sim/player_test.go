package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/tui-ascent/internal/config"
	"github.com/vovakirdan/tui-ascent/internal/core"
	"github.com/vovakirdan/tui-ascent/internal/level"
)

// stepper drives an Integrator against a fixed live level.
type stepper struct {
	t        *testing.T
	in       Integrator
	live     level.Level
	progress *Progress
	state    PlayerState
}

func newStepper(t *testing.T, live level.Level, pos core.Vec2) *stepper {
	t.Helper()
	return &stepper{
		t:        t,
		in:       NewIntegrator(config.DefaultAscentConfig()),
		live:     live,
		progress: NewProgress(),
		state:    PlayerState{Position: pos, GroundedOn: level.NoID, LastCheckpoint: core.V(10, 900)},
	}
}

func (s *stepper) step(intent Intent, deltas Deltas) TickEvents {
	var ev TickEvents
	s.state, ev = s.in.Step(s.state, TickEnv{
		Intent:   intent,
		Live:     &s.live,
		Deltas:   deltas,
		Progress: s.progress,
		Scale:    1,
	})
	return ev
}

func floorAt(top float64) level.Level {
	return level.Level{
		Name:      "floor",
		Platforms: []level.Platform{{ID: 1, Box: core.NewBox(0, top, 600, 20)}},
	}
}

func TestGravityMonotonicity(t *testing.T) {
	s := newStepper(t, level.Level{Name: "empty"}, core.V(100, 100))

	prev := s.state.Velocity.Y
	for i := 0; i < 30; i++ {
		s.step(Intent{Jump: true}, nil)
		require.False(t, s.state.Grounded)
		assert.InDelta(t, prev+0.5, s.state.Velocity.Y, 1e-12, "tick %d", i)
		prev = s.state.Velocity.Y
	}
	assert.True(t, s.state.Falling)
}

func TestFallOntoStaticPlatform(t *testing.T) {
	s := newStepper(t, floorAt(500), core.V(280, 300))

	landedAt := -1
	for i := 0; i < 40; i++ {
		ev := s.step(Intent{}, nil)
		if ev.Landed {
			require.Equal(t, -1, landedAt, "lands only once")
			landedAt = i
			assert.Equal(t, level.ID(1), ev.LandedOn)
		}
	}

	assert.Equal(t, 24, landedAt)
	assert.Equal(t, 460.0, s.state.Position.Y)
	assert.True(t, s.state.Grounded)
	assert.Equal(t, level.ID(1), s.state.GroundedOn)
}

func TestLandingIdempotence(t *testing.T) {
	s := newStepper(t, floorAt(500), core.V(280, 460))
	s.step(Intent{}, nil)
	require.True(t, s.state.Grounded)

	for i := 0; i < 50; i++ {
		s.step(Intent{}, nil)
		assert.Equal(t, 460.0, s.state.Position.Y)
		assert.Equal(t, 0.0, s.state.Velocity.Y)
		assert.False(t, s.state.Jumping || s.state.Falling)
	}
}

func TestRideAlongComposesWithInput(t *testing.T) {
	tests := []struct {
		name   string
		delta  core.Vec2
		intent Intent
	}{
		{"horizontal platform, no input", core.V(0.835, 0), Intent{}},
		{"horizontal platform, running", core.V(0.835, 0), Intent{Horizontal: 1}},
		{"rising platform", core.V(0, -2.5), Intent{Horizontal: -0.5}},
		{"sinking platform", core.V(1, 3), Intent{}},
		{"fast diagonal platform", core.V(-126.2, 97.3), Intent{Horizontal: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			live := level.Level{Name: "ride", Platforms: []level.Platform{
				{ID: 7, Box: core.NewBox(150, 500, 150, 20)},
			}}
			s := newStepper(t, live, core.V(200, 460))
			s.state.Grounded = true
			s.state.GroundedOn = 7

			// Kinematics already moved the platform this tick.
			s.live.Platforms[0].Position = s.live.Platforms[0].Position.Add(tt.delta)
			start := s.state.Position
			s.step(tt.intent, Deltas{7: tt.delta})

			want := start.Add(tt.delta).Add(core.V(tt.intent.Horizontal*5, 0))
			assert.InDelta(t, want.X, s.state.Position.X, 1e-9)
			assert.InDelta(t, want.Y, s.state.Position.Y, 1e-9)
			assert.True(t, s.state.Grounded)
			assert.Equal(t, level.ID(7), s.state.GroundedOn)
		})
	}
}

func TestJumpOnlyFromGround(t *testing.T) {
	s := newStepper(t, floorAt(500), core.V(280, 460))
	s.step(Intent{}, nil)
	require.True(t, s.state.Grounded)

	ev := s.step(Intent{Jump: true}, nil)
	assert.True(t, ev.Jumped)
	assert.Equal(t, -12.5, s.state.Velocity.Y)
	assert.Equal(t, 447.5, s.state.Position.Y)
	assert.False(t, s.state.Grounded)
	assert.True(t, s.state.Jumping)

	// Holding jump while airborne adds no impulse.
	ev = s.step(Intent{Jump: true}, nil)
	assert.False(t, ev.Jumped)
	assert.Equal(t, -12.0, s.state.Velocity.Y)
}

func TestVanishedPlatformMeansNotGrounded(t *testing.T) {
	s := newStepper(t, level.Level{Name: "empty"}, core.V(100, 100))
	s.state.Grounded = true
	s.state.GroundedOn = 42

	ev := s.step(Intent{Jump: true}, Deltas{42: core.V(50, 50)})
	assert.True(t, ev.LostGround)
	assert.False(t, ev.Jumped)
	assert.Equal(t, core.V(100, 100.5), s.state.Position)
	assert.Equal(t, level.NoID, s.state.GroundedOn)
}

func TestHorizontalWalls(t *testing.T) {
	s := newStepper(t, floorAt(500), core.V(557, 460))
	s.step(Intent{Horizontal: 1}, nil)
	assert.Equal(t, 560.0, s.state.Position.X)

	s.state.Position.X = 3
	s.step(Intent{Horizontal: -1}, nil)
	assert.Equal(t, 0.0, s.state.Position.X)
}

func TestTrapRespawn(t *testing.T) {
	velocities := []core.Vec2{{}, core.V(5, -13), core.V(-5, 12)}
	for _, v := range velocities {
		live := floorAt(500)
		live.Traps = []level.Trap{{ID: 9, Box: core.NewBox(0, 0, 600, 300), Kind: level.TrapSpikes, PlatformID: level.NoID}}
		s := newStepper(t, live, core.V(100, 100))
		s.state.Velocity = v

		ev := s.step(Intent{Horizontal: 1}, nil)
		assert.Equal(t, RespawnTrap, ev.Respawn)
		assert.Equal(t, level.ID(9), ev.TrapID)
		assert.Equal(t, s.state.LastCheckpoint, s.state.Position)
		assert.Equal(t, core.Vec2{}, s.state.Velocity)
		assert.False(t, s.state.Grounded)
	}
}

func TestFallOutOfWorldRespawn(t *testing.T) {
	s := newStepper(t, level.Level{Name: "empty"}, core.V(100, 3990))
	s.state.Velocity.Y = 20

	ev := s.step(Intent{}, nil)
	assert.Equal(t, RespawnFall, ev.Respawn)
	assert.Equal(t, core.V(10, 900), s.state.Position)
	assert.Equal(t, core.Vec2{}, s.state.Velocity)
}

func TestCheckpointProgression(t *testing.T) {
	live := level.Level{
		Name: "checkpoints",
		Checkpoints: []level.Checkpoint{
			{ID: 1, Box: core.NewBox(100, 900, 40, 40)},
			{ID: 2, Box: core.NewBox(300, 100, 40, 40)},
		},
	}
	s := newStepper(t, live, core.V(100, 880))

	ev := s.step(Intent{}, nil)
	assert.Equal(t, []level.ID{1}, ev.Activated)
	assert.False(t, ev.Finished)
	assert.False(t, s.progress.Finished())
	assert.Equal(t, core.V(100, 860), s.state.LastCheckpoint)

	// Touching it again is not a new activation.
	s.state.Position = core.V(100, 880)
	s.state.Velocity = core.Vec2{}
	ev = s.step(Intent{}, nil)
	assert.Empty(t, ev.Activated)

	s.state.Position = core.V(300, 90)
	s.state.Velocity = core.Vec2{}
	ev = s.step(Intent{}, nil)
	assert.Equal(t, []level.ID{2}, ev.Activated)
	assert.True(t, ev.Finished)
	assert.True(t, s.progress.Finished())
	assert.Equal(t, []level.ID{1, 2}, s.progress.Activated())
}

func TestVictoryOnlyForTopmostCheckpoint(t *testing.T) {
	live := level.Level{
		Name: "victory",
		Checkpoints: []level.Checkpoint{
			{ID: 5, Box: core.NewBox(0, 600, 40, 40)},
			{ID: 6, Box: core.NewBox(200, 400, 40, 40)},
			{ID: 7, Box: core.NewBox(400, 200, 40, 40)},
		},
	}
	s := newStepper(t, live, core.V(200, 390))
	s.step(Intent{}, nil)
	assert.True(t, s.progress.IsActive(6))
	assert.False(t, s.progress.Finished())

	s.state.Position = core.V(0, 590)
	s.step(Intent{}, nil)
	assert.False(t, s.progress.Finished())
}

func TestSeveralCheckpointsInOneTick(t *testing.T) {
	live := level.Level{
		Name: "overlap",
		Checkpoints: []level.Checkpoint{
			{ID: 3, Box: core.NewBox(130, 500, 40, 40)},
			{ID: 1, Box: core.NewBox(100, 500, 40, 40)},
			{ID: 2, Box: core.NewBox(0, 0, 40, 40)},
		},
	}
	s := newStepper(t, live, core.V(110, 490))

	ev := s.step(Intent{}, nil)
	assert.Equal(t, []level.ID{3, 1}, ev.Activated)
	assert.Equal(t, core.V(100, 460), s.state.LastCheckpoint, "last in level order wins")
}

func TestScaledTimestep(t *testing.T) {
	cfg := config.DefaultAscentConfig()
	cfg.Physics.Timestep = config.TimestepScaled
	in := NewIntegrator(cfg)
	live := level.Level{Name: "empty"}

	state := PlayerState{Position: core.V(100, 100), GroundedOn: level.NoID}
	state, _ = in.Step(state, TickEnv{
		Intent:   Intent{Horizontal: 1},
		Live:     &live,
		Progress: NewProgress(),
		Scale:    cfg.Physics.Scale(2 * cfg.Physics.NominalTickMs),
	})

	assert.InDelta(t, 1.0, state.Velocity.Y, 1e-9)
	assert.InDelta(t, 110.0, state.Position.X, 1e-9)
	assert.InDelta(t, 102.0, state.Position.Y, 1e-9)
}
