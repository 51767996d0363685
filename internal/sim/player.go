package sim

import (
	"github.com/vovakirdan/tui-ascent/internal/config"
	"github.com/vovakirdan/tui-ascent/internal/core"
	"github.com/vovakirdan/tui-ascent/internal/level"
)

// PlayerState is the player's physical state between ticks.
type PlayerState struct {
	Position       core.Vec2 // Top-left of the player box
	Velocity       core.Vec2 // Pixels per tick
	Grounded       bool
	GroundedOn     level.ID  // Platform stood on, or level.NoID
	LastCheckpoint core.Vec2 // Respawn anchor
	Jumping        bool      // Display only
	Falling        bool      // Display only
}

// RespawnCause says why the player was sent back to the last checkpoint.
type RespawnCause int

const (
	RespawnNone RespawnCause = iota
	RespawnTrap
	RespawnFall
)

// String returns a human-readable name for the cause.
func (c RespawnCause) String() string {
	switch c {
	case RespawnTrap:
		return "trap"
	case RespawnFall:
		return "fall"
	default:
		return "none"
	}
}

// TickEvents records what happened to the player during one tick.
type TickEvents struct {
	Jumped     bool
	Landed     bool     // Became grounded this tick
	LandedOn   level.ID // Platform landed or standing on
	LostGround bool     // The platform stood on no longer exists
	Respawn    RespawnCause
	TrapID     level.ID   // Trap hit when Respawn is RespawnTrap
	Activated  []level.ID // Checkpoints newly activated, in level order
	Finished   bool       // The victory checkpoint was activated
}

// TickEnv is everything the integrator reads besides the previous state.
// Live holds positions after platform kinematics and hazard attachment.
type TickEnv struct {
	Intent   Intent
	Live     *level.Level
	Deltas   Deltas
	Progress *Progress
	Scale    float64 // Timestep multiplier for gravity and velocity; 1 for fixed steps
}

// Integrator advances the player by one tick.
type Integrator struct {
	world   config.WorldConfig
	player  config.PlayerConfig
	physics config.PhysicsConfig
}

// NewIntegrator creates an integrator for cfg.
func NewIntegrator(cfg config.AscentConfig) Integrator {
	return Integrator{world: cfg.World, player: cfg.Player, physics: cfg.Physics}
}

// Box returns the player's bounding box at position p.
func (in Integrator) Box(p core.Vec2) core.Box {
	return core.Box{Position: p, Width: in.player.Width, Height: in.player.Height}
}

// Step runs one transition. It updates env.Progress when checkpoints are
// activated and never fails: gameplay failure is a respawn.
func (in Integrator) Step(prev PlayerState, env TickEnv) (PlayerState, TickEvents) {
	s := prev
	ev := TickEvents{LandedOn: level.NoID, TrapID: level.NoID}
	scale := env.Scale
	if scale <= 0 {
		scale = 1
	}

	// Ride along with the platform stood on last tick.
	if s.Grounded && s.GroundedOn.Valid() {
		if _, ok := env.Live.PlatformIndex(s.GroundedOn); ok {
			s.Position = s.Position.Add(env.Deltas[s.GroundedOn])
		} else {
			s.Grounded = false
			s.GroundedOn = level.NoID
			ev.LostGround = true
		}
	}
	wasGrounded := s.Grounded

	s.Velocity.X = env.Intent.Horizontal * in.player.Speed

	if env.Intent.Jump && s.Grounded {
		s.Velocity.Y = in.player.JumpStrength
		s.Grounded = false
		ev.Jumped = true
	}

	s.Velocity.Y += in.physics.Gravity * scale

	next := s.Position.Add(s.Velocity.Scale(scale))

	if i, ok := FindLanding(in.Box(s.Position), in.Box(next), s.Velocity.Y, env.Live.Platforms, in.physics.LandingTolerance); ok {
		p := env.Live.Platforms[i]
		s.Velocity.Y = 0
		next.Y = p.Top() - in.player.Height
		s.Grounded = true
		s.GroundedOn = p.ID
		ev.LandedOn = p.ID
		ev.Landed = !wasGrounded
	} else {
		s.Grounded = false
		s.GroundedOn = level.NoID
	}
	s.Position = next

	s.Position.X = core.ClampF(s.Position.X, 0, in.world.GameWidth-in.player.Width)

	if i, ok := FirstTrapHit(in.Box(s.Position), env.Live.Traps); ok {
		in.respawn(&s)
		ev.Respawn = RespawnTrap
		ev.TrapID = env.Live.Traps[i].ID
	}

	if s.Position.Y > in.world.LevelHeightMax {
		in.respawn(&s)
		ev.Respawn = RespawnFall
	}

	victory, hasVictory := env.Live.VictoryCheckpoint()
	for _, i := range TouchedCheckpoints(in.Box(s.Position), env.Live.Checkpoints) {
		cp := env.Live.Checkpoints[i]
		if !env.Progress.Activate(cp.ID) {
			continue
		}
		s.LastCheckpoint = standOn(cp, in.player)
		ev.Activated = append(ev.Activated, cp.ID)
		if hasVictory && cp.ID == victory.ID {
			env.Progress.Finish()
			ev.Finished = true
		}
	}

	s.Jumping = !s.Grounded && s.Velocity.Y < 0
	s.Falling = !s.Grounded && s.Velocity.Y > 0
	return s, ev
}

// respawn sends the player to the last checkpoint at rest.
func (in Integrator) respawn(s *PlayerState) {
	s.Position = s.LastCheckpoint
	s.Velocity = core.Vec2{}
	s.Grounded = false
	s.GroundedOn = level.NoID
}
