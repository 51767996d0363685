// Package sim is the deterministic platformer simulation: moving platforms,
// riding hazards, input aggregation, the player integrator, checkpoint
// progress and the follow camera, driven tick by tick by a Session.
package sim

import (
	"github.com/vovakirdan/tui-ascent/internal/core"
	"github.com/vovakirdan/tui-ascent/internal/level"
)

// Deltas maps platform ids to their displacement during one tick.
// Only platforms that actually moved are present.
type Deltas map[level.ID]core.Vec2

// Motion is the oscillator state of one moving platform.
type Motion struct {
	Progress  float64 // Position along the path, in [0, 1]
	Direction float64 // +1 towards Path[1], -1 towards Path[0]
}

// restMotion is the state of a platform whose movement was just enabled.
var restMotion = Motion{Progress: 0, Direction: 1}

// AdvanceMotion moves st along mv for dtMs milliseconds, bouncing at the ends.
// A zero-length path or a non-positive speed leaves st unchanged.
func AdvanceMotion(mv level.Movement, st Motion, dtMs float64) Motion {
	length := mv.Length()
	if length == 0 || mv.Speed <= 0 || dtMs <= 0 {
		return st
	}
	if st.Direction == 0 {
		st.Direction = 1
	}

	st.Progress += mv.Speed * dtMs / 1000 * st.Direction / length
	switch {
	case st.Progress >= 1:
		st.Progress = 1
		st.Direction = -1
	case st.Progress <= 0:
		st.Progress = 0
		st.Direction = 1
	}
	return st
}

// MotionTracker owns the progress map of every moving platform in a session.
type MotionTracker struct {
	states map[level.ID]Motion
}

// NewMotionTracker creates an empty tracker.
func NewMotionTracker() *MotionTracker {
	return &MotionTracker{states: make(map[level.ID]Motion)}
}

// Enable starts tracking id at rest: progress 0, heading towards Path[1].
func (m *MotionTracker) Enable(id level.ID) {
	m.states[id] = restMotion
}

// Disable stops tracking id.
func (m *MotionTracker) Disable(id level.ID) {
	delete(m.states, id)
}

// State returns the tracked state of id.
func (m *MotionTracker) State(id level.ID) (Motion, bool) {
	st, ok := m.states[id]
	return st, ok
}

// Len returns the number of tracked platforms.
func (m *MotionTracker) Len() int {
	return len(m.states)
}

// Reset puts every moving platform back at Path[0] with fresh state and
// forgets platforms that no longer move. Returned deltas let riders follow.
func (m *MotionTracker) Reset(platforms []level.Platform) Deltas {
	clear(m.states)
	deltas := make(Deltas)
	for i := range platforms {
		p := &platforms[i]
		if p.Movement == nil {
			continue
		}
		m.Enable(p.ID)
		if d := p.Movement.Path[0].Sub(p.Position); !d.IsZero() {
			p.Position = p.Movement.Path[0]
			deltas[p.ID] = d
		}
	}
	return deltas
}

// Advance moves every platform with a movement path by dtMs milliseconds,
// updating positions in place. Untracked moving platforms start at rest.
func (m *MotionTracker) Advance(platforms []level.Platform, dtMs float64) Deltas {
	deltas := make(Deltas)
	for i := range platforms {
		p := &platforms[i]
		if p.Movement == nil {
			continue
		}
		st, ok := m.states[p.ID]
		if !ok {
			st = restMotion
		}
		st = AdvanceMotion(*p.Movement, st, dtMs)
		m.states[p.ID] = st

		next := p.Movement.At(st.Progress)
		if d := next.Sub(p.Position); !d.IsZero() {
			p.Position = next
			deltas[p.ID] = d
		}
	}
	return deltas
}
