package sim

import "github.com/vovakirdan/tui-ascent/internal/level"

// Snapshot is a read-only copy of session state for renderers and tests.
type Snapshot struct {
	Mode        Mode
	Name        string
	Player      PlayerState
	Platforms   []level.Platform
	Traps       []level.Trap
	Checkpoints []level.Checkpoint
	Signs       []level.Sign
	CameraY     float64
	Activated   []level.ID
	VictoryID   level.ID // level.NoID when the level has no checkpoints
	Finished    bool
	Ticks       int
	Deaths      int
	ElapsedMs   float64
	Events      TickEvents // What happened during the last tick
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	live := s.live.Clone()
	snap := Snapshot{
		Mode:        s.mode,
		Name:        live.Name,
		Player:      s.player,
		Platforms:   live.Platforms,
		Traps:       live.Traps,
		Checkpoints: live.Checkpoints,
		Signs:       live.Signs,
		CameraY:     s.camera.Y,
		Activated:   s.progress.Activated(),
		VictoryID:   level.NoID,
		Finished:    s.progress.Finished(),
		Ticks:       s.ticks,
		Deaths:      s.deaths,
		ElapsedMs:   s.elapsedMs,
		Events:      s.events,
	}
	if v, ok := s.live.VictoryCheckpoint(); ok {
		snap.VictoryID = v.ID
	}
	snap.Events.Activated = append([]level.ID(nil), s.events.Activated...)
	return snap
}

// IsActive reports whether checkpoint id is in the snapshot's activation set.
func (snap Snapshot) IsActive(id level.ID) bool {
	for _, a := range snap.Activated {
		if a == id {
			return true
		}
	}
	return false
}
