package sim

import (
	"github.com/vovakirdan/tui-ascent/internal/core"
	"github.com/vovakirdan/tui-ascent/internal/level"
)

// FindLanding returns the index of the platform the player lands on while
// moving from prev to next with vertical velocity vy. Platforms are one-sided:
// the player must start at or above the top (within tolerance), end at or
// below it, overlap it horizontally and not be moving up. When several
// qualify the topmost wins, ties going to the first in level order.
func FindLanding(prev, next core.Box, vy float64, platforms []level.Platform, tolerance float64) (int, bool) {
	if vy < 0 {
		return -1, false
	}
	best := -1
	for i := range platforms {
		p := &platforms[i]
		top := p.Top()
		if prev.Bottom() > top+tolerance || next.Bottom() < top || !next.OverlapsX(p.Box) {
			continue
		}
		if best < 0 || top < platforms[best].Top() {
			best = i
		}
	}
	return best, best >= 0
}

// FirstTrapHit returns the index of the first trap overlapping player.
func FirstTrapHit(player core.Box, traps []level.Trap) (int, bool) {
	for i := range traps {
		if player.Overlaps(traps[i].Box) {
			return i, true
		}
	}
	return -1, false
}

// TouchedCheckpoints returns the indexes of checkpoints overlapping player,
// in level order.
func TouchedCheckpoints(player core.Box, checkpoints []level.Checkpoint) []int {
	var hits []int
	for i := range checkpoints {
		if player.Overlaps(checkpoints[i].Box) {
			hits = append(hits, i)
		}
	}
	return hits
}
