// Package level defines the level template consumed by the simulation:
// platforms, traps, checkpoints and signs, plus loading, built-in levels
// and file watching.
package level

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/vovakirdan/tui-ascent/internal/core"
)

var (
	// ErrNotFound is returned when no level matches a lookup.
	ErrNotFound = errors.New("level not found")
	// ErrInvalidLevel wraps structural problems reported by Validate.
	ErrInvalidLevel = errors.New("invalid level")
)

// ID identifies a placed object. IDs are stable for the lifetime of a level.
type ID int

// NoID marks the absence of a relation, e.g. a freestanding trap.
const NoID ID = -1

// Valid reports whether id refers to something.
func (id ID) Valid() bool {
	return id >= 0
}

// Movement describes a ping-pong path between two points.
type Movement struct {
	Path  [2]core.Vec2
	Speed float64 // Pixels per second
}

// Length returns the distance between the path endpoints.
func (m Movement) Length() float64 {
	return m.Path[1].Sub(m.Path[0]).Len()
}

// At returns the point at progress t along the path.
func (m Movement) At(t float64) core.Vec2 {
	return core.Lerp(m.Path[0], m.Path[1], t)
}

// Platform is a surface the player can land on from above.
type Platform struct {
	ID ID
	core.Box
	Movement *Movement // Nil for static platforms
}

// Moving reports whether the platform has a movement path.
func (p Platform) Moving() bool {
	return p.Movement != nil
}

// TrapKind names the kind of hazard.
type TrapKind string

// TrapSpikes is the only hazard kind.
const TrapSpikes TrapKind = "spikes"

// Trap is a hazard. PlatformID names the platform it rides on, or NoID.
type Trap struct {
	ID ID
	core.Box
	Kind       TrapKind
	PlatformID ID
}

// Checkpoint is a respawn anchor. Activation state lives in the session.
type Checkpoint struct {
	ID ID
	core.Box
}

// SignVariant is the difficulty printed on a sign.
type SignVariant string

const (
	SignEffortless SignVariant = "effortless"
	SignEasy       SignVariant = "easy"
	SignMedium     SignVariant = "medium"
	SignHard       SignVariant = "hard"
	SignImpossible SignVariant = "impossible"
	SignExtreme    SignVariant = "extreme"
)

// Label returns the text shown on a sign of this variant.
func (v SignVariant) Label() string {
	switch v {
	case SignEffortless:
		return "EFFORTLESS"
	case SignMedium:
		return "MEDIUM"
	case SignHard:
		return "HARD"
	case SignImpossible:
		return "IMPOSSIBLE"
	case SignExtreme:
		return "EXTREME"
	default:
		return "EASY"
	}
}

// Sign is decorative and takes no part in physics.
type Sign struct {
	ID ID
	core.Box
	Variant SignVariant
}

// Level is an immutable template. Sessions clone it before mutating.
type Level struct {
	Name        string
	Platforms   []Platform
	Checkpoints []Checkpoint
	Traps       []Trap
	Signs       []Sign
}

// Clone returns a deep copy of l.
func (l Level) Clone() Level {
	out := Level{
		Name:        l.Name,
		Platforms:   make([]Platform, len(l.Platforms)),
		Checkpoints: append([]Checkpoint(nil), l.Checkpoints...),
		Traps:       append([]Trap(nil), l.Traps...),
		Signs:       append([]Sign(nil), l.Signs...),
	}
	for i, p := range l.Platforms {
		if p.Movement != nil {
			m := *p.Movement
			p.Movement = &m
		}
		out.Platforms[i] = p
	}
	return out
}

// PlatformIndex returns the index of the platform with the given id.
func (l Level) PlatformIndex(id ID) (int, bool) {
	if !id.Valid() {
		return -1, false
	}
	for i := range l.Platforms {
		if l.Platforms[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// CheckpointIndex returns the index of the checkpoint with the given id.
func (l Level) CheckpointIndex(id ID) (int, bool) {
	for i := range l.Checkpoints {
		if l.Checkpoints[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// VictoryCheckpoint returns the topmost checkpoint (smallest y).
// Ties go to the first in level order.
func (l Level) VictoryCheckpoint() (Checkpoint, bool) {
	if len(l.Checkpoints) == 0 {
		return Checkpoint{}, false
	}
	best := l.Checkpoints[0]
	for _, cp := range l.Checkpoints[1:] {
		if cp.Top() < best.Top() {
			best = cp
		}
	}
	return best, true
}

// SpawnCheckpoint returns the lowest checkpoint (largest y), where a fresh
// run starts. Ties go to the first in level order.
func (l Level) SpawnCheckpoint() (Checkpoint, bool) {
	if len(l.Checkpoints) == 0 {
		return Checkpoint{}, false
	}
	best := l.Checkpoints[0]
	for _, cp := range l.Checkpoints[1:] {
		if cp.Top() > best.Top() {
			best = cp
		}
	}
	return best, true
}

// NextID returns one more than the largest id of any object in l.
func (l Level) NextID() ID {
	next := ID(0)
	bump := func(id ID) {
		if id >= next {
			next = id + 1
		}
	}
	for _, p := range l.Platforms {
		bump(p.ID)
	}
	for _, c := range l.Checkpoints {
		bump(c.ID)
	}
	for _, t := range l.Traps {
		bump(t.ID)
	}
	for _, s := range l.Signs {
		bump(s.ID)
	}
	return next
}

// Validate reports structural problems. Degenerate but well-formed data,
// such as a zero-length movement path or a trap naming a missing platform,
// is accepted: the simulation treats it as static or freestanding.
func (l Level) Validate() error {
	var errs []error
	if strings.TrimSpace(l.Name) == "" {
		errs = append(errs, errors.New("name is empty"))
	}

	seen := make(map[ID]bool)
	check := func(kind string, id ID, b core.Box) {
		if !id.Valid() {
			errs = append(errs, fmt.Errorf("%s %d: negative id", kind, id))
		}
		if seen[id] {
			errs = append(errs, fmt.Errorf("%s %d: duplicate id", kind, id))
		}
		seen[id] = true
		if b.Width <= 0 || b.Height <= 0 {
			errs = append(errs, fmt.Errorf("%s %d: size must be positive", kind, id))
		}
	}

	for _, p := range l.Platforms {
		check("platform", p.ID, p.Box)
		if p.Movement != nil && p.Movement.Speed < 0 {
			errs = append(errs, fmt.Errorf("platform %d: negative speed", p.ID))
		}
	}
	clear(seen)
	for _, c := range l.Checkpoints {
		check("checkpoint", c.ID, c.Box)
	}
	clear(seen)
	for _, t := range l.Traps {
		check("trap", t.ID, t.Box)
	}
	clear(seen)
	for _, s := range l.Signs {
		check("sign", s.ID, s.Box)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w %q: %w", ErrInvalidLevel, l.Name, errors.Join(errs...))
}

// Slug returns a lowercase, dash-separated form of name for command lines.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case r == '\'':
			// dropped so "Kirby's" becomes "kirbys"
		default:
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Matches reports whether query names l, either exactly (case-insensitive) or by slug.
func (l Level) Matches(query string) bool {
	return strings.EqualFold(l.Name, query) || Slug(l.Name) == Slug(query)
}
