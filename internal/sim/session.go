package sim

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/tui-ascent/internal/config"
	"github.com/vovakirdan/tui-ascent/internal/core"
	"github.com/vovakirdan/tui-ascent/internal/level"
)

var (
	// ErrNotEditing is returned by editing operations outside edit mode.
	ErrNotEditing = errors.New("sim: session is not in edit mode")
	// ErrUnknownPlatform is returned when an edit names a missing platform.
	ErrUnknownPlatform = errors.New("sim: unknown platform")
	// ErrUnknownObject is returned when an edit names a missing trap or checkpoint.
	ErrUnknownObject = errors.New("sim: unknown object")
)

// Mode is the session's top-level state.
type Mode int

const (
	ModePlay Mode = iota
	ModeEdit
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "play"
}

// Options configures a new session.
type Options struct {
	Logger *log.Logger // Nil discards logs
	Mode   Mode
}

// Session owns all mutable simulation state for one level.
// It is not safe for concurrent use; a single driver calls Tick.
//
// Three copies of the level exist: the template it was created from, the
// design (template plus edits, always at rest) and the live copy mutated
// by ticking.
type Session struct {
	cfg    config.AscentConfig
	logger *log.Logger

	template level.Level
	design   level.Level
	live     level.Level

	motion     *MotionTracker
	integrator Integrator
	player     PlayerState
	progress   *Progress
	camera     *Camera
	mode       Mode

	ticks     int
	deaths    int
	elapsedMs float64
	events    TickEvents
}

// NewSession clones tmpl and prepares a fresh run in opts.Mode.
func NewSession(tmpl level.Level, cfg config.AscentConfig, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{
		cfg:        cfg,
		logger:     logger.With("level", tmpl.Name),
		template:   tmpl.Clone(),
		design:     tmpl.Clone(),
		motion:     NewMotionTracker(),
		integrator: NewIntegrator(cfg),
		progress:   NewProgress(),
		camera:     NewCamera(cfg.World, cfg.Camera),
		mode:       opts.Mode,
	}
	s.restart()
	return s
}

// Tick advances the simulation by dtMs milliseconds of wall-clock time.
// It does nothing in edit mode or after victory.
func (s *Session) Tick(dtMs float64, in core.InputSnapshot) Snapshot {
	if s.mode == ModeEdit || s.progress.Finished() {
		return s.Snapshot()
	}
	dtMs = core.ClampF(dtMs, 0, s.cfg.Physics.MaxFrameMs)

	intent := Aggregate(in, s.cfg.Input)
	deltas := s.motion.Advance(s.live.Platforms, dtMs)
	AttachHazards(s.live.Traps, deltas)

	var ev TickEvents
	s.player, ev = s.integrator.Step(s.player, TickEnv{
		Intent:   intent,
		Live:     &s.live,
		Deltas:   deltas,
		Progress: s.progress,
		Scale:    s.cfg.Physics.Scale(dtMs),
	})
	s.camera.Follow(s.player.Position.Y)

	s.ticks++
	s.elapsedMs += dtMs
	if ev.Respawn != RespawnNone {
		s.deaths++
	}
	s.events = ev
	s.logEvents(ev)
	return s.Snapshot()
}

func (s *Session) logEvents(ev TickEvents) {
	if ev.LostGround {
		s.logger.Debug("platform under player vanished")
	}
	if ev.Respawn != RespawnNone {
		s.logger.Info("respawn", "cause", ev.Respawn, "trap", ev.TrapID, "deaths", s.deaths)
	}
	for _, id := range ev.Activated {
		s.logger.Info("checkpoint activated", "id", id)
	}
	if ev.Finished {
		s.logger.Info("level finished", "ticks", s.ticks, "deaths", s.deaths, "elapsed_ms", s.elapsedMs)
	}
}

// Mode returns the current mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// SetMode switches between play and edit. Entering edit puts moving
// platforms back at rest; entering play starts a fresh run.
func (s *Session) SetMode(m Mode) {
	if m == s.mode {
		return
	}
	s.mode = m
	s.logger.Info("mode changed", "mode", m)
	if m == ModeEdit {
		s.syncLive()
		return
	}
	s.Restart(false)
}

// Restart begins a new run. A full restart also discards edits.
func (s *Session) Restart(full bool) {
	if full {
		s.design = s.template.Clone()
	}
	s.restart()
	s.logger.Debug("restart", "full", full)
}

func (s *Session) restart() {
	s.syncLive()
	s.player = InitialPlayerState(s.live, s.cfg.World, s.cfg.Player)
	s.progress.Reset()
	s.camera.Reset()
	s.ticks = 0
	s.deaths = 0
	s.elapsedMs = 0
	s.events = TickEvents{LandedOn: level.NoID, TrapID: level.NoID}
}

// syncLive replaces the live level with the design at rest.
func (s *Session) syncLive() {
	s.live = s.design.Clone()
	AttachHazards(s.live.Traps, s.motion.Reset(s.live.Platforms))
}

// Finished reports whether the victory checkpoint was reached.
func (s *Session) Finished() bool {
	return s.progress.Finished()
}

// Player returns the current player state.
func (s *Session) Player() PlayerState {
	return s.player
}

// Motion returns the oscillator state of a moving platform.
func (s *Session) Motion(id level.ID) (Motion, bool) {
	return s.motion.State(id)
}

// CameraY returns the camera offset.
func (s *Session) CameraY() float64 {
	return s.camera.Y
}

// ScrollCamera moves the camera freely. Only meaningful in edit mode, where
// ticking does not pull it back to the player.
func (s *Session) ScrollCamera(dy float64) {
	s.camera.Scroll(dy)
}

// Template returns the edited level, at rest, for saving or export.
func (s *Session) Template() level.Level {
	return s.design.Clone()
}

// Config returns the session configuration.
func (s *Session) Config() config.AscentConfig {
	return s.cfg
}

// Reload replaces the template with tmpl, discarding edits, and restarts.
func (s *Session) Reload(tmpl level.Level) {
	s.template = tmpl.Clone()
	s.logger.Info("template reloaded", "name", tmpl.Name)
	s.Restart(true)
}

func (s *Session) mustEdit(op string) error {
	if s.mode != ModeEdit {
		return fmt.Errorf("%s: %w", op, ErrNotEditing)
	}
	return nil
}

// editDone mirrors a design change into the live level.
func (s *Session) editDone() {
	s.syncLive()
}

// NextID returns the id the next added object will get.
func (s *Session) NextID() level.ID {
	return s.design.NextID()
}

// AddPlatform places a static platform and returns its id.
func (s *Session) AddPlatform(box core.Box) (level.ID, error) {
	if err := s.mustEdit("add platform"); err != nil {
		return level.NoID, err
	}
	id := s.design.NextID()
	s.design.Platforms = append(s.design.Platforms, level.Platform{ID: id, Box: box})
	s.editDone()
	return id, nil
}

// MovePlatform moves a platform's top-left to pos. Its movement path and
// the traps riding it move along.
func (s *Session) MovePlatform(id level.ID, pos core.Vec2) error {
	if err := s.mustEdit("move platform"); err != nil {
		return err
	}
	i, ok := s.design.PlatformIndex(id)
	if !ok {
		return fmt.Errorf("move platform %d: %w", id, ErrUnknownPlatform)
	}
	p := &s.design.Platforms[i]
	d := pos.Sub(p.Position)
	p.Position = pos
	if p.Movement != nil {
		p.Movement.Path[0] = p.Movement.Path[0].Add(d)
		p.Movement.Path[1] = p.Movement.Path[1].Add(d)
	}
	AttachHazards(s.design.Traps, Deltas{id: d})
	s.editDone()
	return nil
}

// RemovePlatform deletes a platform. Traps riding it keep their position
// and become effectively freestanding.
func (s *Session) RemovePlatform(id level.ID) error {
	if err := s.mustEdit("remove platform"); err != nil {
		return err
	}
	i, ok := s.design.PlatformIndex(id)
	if !ok {
		return fmt.Errorf("remove platform %d: %w", id, ErrUnknownPlatform)
	}
	s.design.Platforms = append(s.design.Platforms[:i], s.design.Platforms[i+1:]...)
	s.motion.Disable(id)
	s.editDone()
	return nil
}

// EnableMovement makes a platform oscillate from its current position to
// target at speed px/s.
func (s *Session) EnableMovement(id level.ID, target core.Vec2, speed float64) error {
	if err := s.mustEdit("enable movement"); err != nil {
		return err
	}
	i, ok := s.design.PlatformIndex(id)
	if !ok {
		return fmt.Errorf("enable movement %d: %w", id, ErrUnknownPlatform)
	}
	p := &s.design.Platforms[i]
	p.Movement = &level.Movement{Path: [2]core.Vec2{p.Position, target}, Speed: max(speed, 0)}
	s.motion.Enable(id)
	s.editDone()
	return nil
}

// DisableMovement makes a platform static at its rest position.
func (s *Session) DisableMovement(id level.ID) error {
	if err := s.mustEdit("disable movement"); err != nil {
		return err
	}
	i, ok := s.design.PlatformIndex(id)
	if !ok {
		return fmt.Errorf("disable movement %d: %w", id, ErrUnknownPlatform)
	}
	s.design.Platforms[i].Movement = nil
	s.motion.Disable(id)
	s.editDone()
	return nil
}

// AddTrap places spikes, riding platformID or freestanding with level.NoID.
func (s *Session) AddTrap(box core.Box, platformID level.ID) (level.ID, error) {
	if err := s.mustEdit("add trap"); err != nil {
		return level.NoID, err
	}
	if platformID.Valid() {
		if _, ok := s.design.PlatformIndex(platformID); !ok {
			return level.NoID, fmt.Errorf("add trap on %d: %w", platformID, ErrUnknownPlatform)
		}
	}
	id := s.design.NextID()
	s.design.Traps = append(s.design.Traps, level.Trap{ID: id, Box: box, Kind: level.TrapSpikes, PlatformID: platformID})
	s.editDone()
	return id, nil
}

// RemoveTrap deletes a trap.
func (s *Session) RemoveTrap(id level.ID) error {
	if err := s.mustEdit("remove trap"); err != nil {
		return err
	}
	for i := range s.design.Traps {
		if s.design.Traps[i].ID == id {
			s.design.Traps = append(s.design.Traps[:i], s.design.Traps[i+1:]...)
			s.editDone()
			return nil
		}
	}
	return fmt.Errorf("remove trap %d: %w", id, ErrUnknownObject)
}

// AddCheckpoint places a checkpoint. The victory checkpoint is recomputed
// from positions, so adding one above all others changes the goal.
func (s *Session) AddCheckpoint(box core.Box) (level.ID, error) {
	if err := s.mustEdit("add checkpoint"); err != nil {
		return level.NoID, err
	}
	id := s.design.NextID()
	s.design.Checkpoints = append(s.design.Checkpoints, level.Checkpoint{ID: id, Box: box})
	s.editDone()
	return id, nil
}

// RemoveCheckpoint deletes a checkpoint.
func (s *Session) RemoveCheckpoint(id level.ID) error {
	if err := s.mustEdit("remove checkpoint"); err != nil {
		return err
	}
	i, ok := s.design.CheckpointIndex(id)
	if !ok {
		return fmt.Errorf("remove checkpoint %d: %w", id, ErrUnknownObject)
	}
	s.design.Checkpoints = append(s.design.Checkpoints[:i], s.design.Checkpoints[i+1:]...)
	s.editDone()
	return nil
}

// Rename changes the level name.
func (s *Session) Rename(name string) error {
	if err := s.mustEdit("rename"); err != nil {
		return err
	}
	s.design.Name = name
	s.live.Name = name
	return nil
}

// ObjectKind identifies what an editor hit test found.
type ObjectKind int

const (
	ObjectNone ObjectKind = iota
	ObjectPlatform
	ObjectTrap
	ObjectCheckpoint
)

// ObjectAt returns the design object under p. Traps win over checkpoints,
// which win over platforms; among one kind the last added wins.
func (s *Session) ObjectAt(p core.Vec2) (ObjectKind, level.ID) {
	for i := len(s.design.Traps) - 1; i >= 0; i-- {
		if s.design.Traps[i].Contains(p) {
			return ObjectTrap, s.design.Traps[i].ID
		}
	}
	for i := len(s.design.Checkpoints) - 1; i >= 0; i-- {
		if s.design.Checkpoints[i].Contains(p) {
			return ObjectCheckpoint, s.design.Checkpoints[i].ID
		}
	}
	if id, ok := s.PlatformAt(p); ok {
		return ObjectPlatform, id
	}
	return ObjectNone, level.NoID
}

// PlatformAt returns the last added design platform containing p.
func (s *Session) PlatformAt(p core.Vec2) (level.ID, bool) {
	for i := len(s.design.Platforms) - 1; i >= 0; i-- {
		if s.design.Platforms[i].Contains(p) {
			return s.design.Platforms[i].ID, true
		}
	}
	return level.NoID, false
}

// RemoveObject deletes whatever ObjectAt reported.
func (s *Session) RemoveObject(kind ObjectKind, id level.ID) error {
	switch kind {
	case ObjectPlatform:
		return s.RemovePlatform(id)
	case ObjectTrap:
		return s.RemoveTrap(id)
	case ObjectCheckpoint:
		return s.RemoveCheckpoint(id)
	}
	return fmt.Errorf("remove object %d: %w", id, ErrUnknownObject)
}
