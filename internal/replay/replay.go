// Package replay runs a session headlessly against a scripted input timeline.
package replay

import (
	"fmt"
	"os"

	"github.com/vovakirdan/tui-ascent/internal/core"
	"github.com/vovakirdan/tui-ascent/internal/level"
	"github.com/vovakirdan/tui-ascent/internal/sim"
	"gopkg.in/yaml.v3"
)

// DefaultDtMs is the frame time used when a script does not set one.
const DefaultDtMs = 1000.0 / 60.0

// Script is a sequence of input spans.
type Script struct {
	DtMs  float64 `yaml:"dt_ms"`
	Steps []Step  `yaml:"steps"`
}

// Step holds one input snapshot for a number of ticks.
type Step struct {
	Ticks              int `yaml:"ticks"`
	core.InputSnapshot `yaml:",inline"`
}

// Parse decodes a YAML script.
func Parse(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("replay: parse script: %w", err)
	}
	if s.DtMs <= 0 {
		s.DtMs = DefaultDtMs
	}
	for i, st := range s.Steps {
		if st.Ticks < 0 {
			return Script{}, fmt.Errorf("replay: step %d: negative ticks", i)
		}
	}
	return s, nil
}

// Load reads and parses the script at path.
func Load(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("replay: read script %s: %w", path, err)
	}
	return Parse(data)
}

// TotalTicks returns the number of ticks the script covers.
func (s Script) TotalTicks() int {
	total := 0
	for _, st := range s.Steps {
		total += st.Ticks
	}
	return total
}

// InputAt returns the input for tick n, idle past the end of the script.
func (s Script) InputAt(n int) core.InputSnapshot {
	for _, st := range s.Steps {
		if n < st.Ticks {
			return st.InputSnapshot
		}
		n -= st.Ticks
	}
	return core.InputSnapshot{}
}

// Run ticks sess up to ticks times, or the script length when ticks <= 0,
// stopping early once the level is finished.
func (s Script) Run(sess *sim.Session, ticks int) sim.Snapshot {
	if ticks <= 0 {
		ticks = s.TotalTicks()
	}
	dt := s.DtMs
	if dt <= 0 {
		dt = DefaultDtMs
	}
	snap := sess.Snapshot()
	for n := 0; n < ticks && !snap.Finished; n++ {
		snap = sess.Tick(dt, s.InputAt(n))
	}
	return snap
}

// Summary is the printable outcome of a run.
type Summary struct {
	Level     string     `yaml:"level"`
	Ticks     int        `yaml:"ticks"`
	ElapsedMs float64    `yaml:"elapsed_ms"`
	Deaths    int        `yaml:"deaths"`
	Finished  bool       `yaml:"finished"`
	Player    Player     `yaml:"player"`
	CameraY   float64    `yaml:"camera_y"`
	Activated []level.ID `yaml:"activated"`
}

// Player is the printable player state.
type Player struct {
	Position       core.Vec2 `yaml:"position"`
	Velocity       core.Vec2 `yaml:"velocity"`
	Grounded       bool      `yaml:"grounded"`
	GroundedOn     level.ID  `yaml:"grounded_on"`
	LastCheckpoint core.Vec2 `yaml:"last_checkpoint"`
}

// Summarize converts a snapshot into a Summary.
func Summarize(snap sim.Snapshot) Summary {
	return Summary{
		Level:     snap.Name,
		Ticks:     snap.Ticks,
		ElapsedMs: snap.ElapsedMs,
		Deaths:    snap.Deaths,
		Finished:  snap.Finished,
		Player: Player{
			Position:       snap.Player.Position,
			Velocity:       snap.Player.Velocity,
			Grounded:       snap.Player.Grounded,
			GroundedOn:     snap.Player.GroundedOn,
			LastCheckpoint: snap.Player.LastCheckpoint,
		},
		CameraY:   snap.CameraY,
		Activated: snap.Activated,
	}
}
