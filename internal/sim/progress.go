package sim

import (
	"github.com/vovakirdan/tui-ascent/internal/config"
	"github.com/vovakirdan/tui-ascent/internal/core"
	"github.com/vovakirdan/tui-ascent/internal/level"
)

// Progress is the activation set of one playthrough plus the finished flag.
// Members are only added until Reset.
type Progress struct {
	active   map[level.ID]bool
	order    []level.ID
	finished bool
}

// NewProgress returns an empty, unfinished progress.
func NewProgress() *Progress {
	return &Progress{active: make(map[level.ID]bool)}
}

// Activate adds id to the set and reports whether it was new.
func (p *Progress) Activate(id level.ID) bool {
	if p.active[id] {
		return false
	}
	p.active[id] = true
	p.order = append(p.order, id)
	return true
}

// IsActive reports whether id has been activated.
func (p *Progress) IsActive(id level.ID) bool {
	return p.active[id]
}

// Activated returns the activated ids in activation order.
func (p *Progress) Activated() []level.ID {
	return append([]level.ID(nil), p.order...)
}

// Len returns the number of activated checkpoints.
func (p *Progress) Len() int {
	return len(p.order)
}

// Finish marks the level as won.
func (p *Progress) Finish() {
	p.finished = true
}

// Finished reports whether the victory checkpoint was reached.
func (p *Progress) Finished() bool {
	return p.finished
}

// Reset clears the activation set and the finished flag.
func (p *Progress) Reset() {
	clear(p.active)
	p.order = p.order[:0]
	p.finished = false
}

// SpawnPoint returns where a fresh run starts: standing on the lowest
// checkpoint, or near the bottom centre of the level when there is none.
func SpawnPoint(l level.Level, world config.WorldConfig, player config.PlayerConfig) core.Vec2 {
	if cp, ok := l.SpawnCheckpoint(); ok {
		return standOn(cp, player)
	}
	return core.V(world.GameWidth/2-player.Width/2, world.LevelHeightMax-player.Height-50)
}

// InitialPlayerState returns the player at the spawn point, at rest.
func InitialPlayerState(l level.Level, world config.WorldConfig, player config.PlayerConfig) PlayerState {
	spawn := SpawnPoint(l, world, player)
	return PlayerState{
		Position:       spawn,
		GroundedOn:     level.NoID,
		LastCheckpoint: spawn,
	}
}

func standOn(cp level.Checkpoint, player config.PlayerConfig) core.Vec2 {
	return core.V(cp.Position.X, cp.Position.Y-player.Height)
}
