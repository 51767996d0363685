package sim

import "github.com/vovakirdan/tui-ascent/internal/level"

// AttachHazards moves each trap riding a platform by that platform's delta.
// Freestanding traps and traps naming a missing platform stay put.
func AttachHazards(traps []level.Trap, deltas Deltas) {
	if len(deltas) == 0 {
		return
	}
	for i := range traps {
		t := &traps[i]
		if !t.PlatformID.Valid() {
			continue
		}
		if d, ok := deltas[t.PlatformID]; ok {
			t.Box = t.Translate(d)
		}
	}
}
