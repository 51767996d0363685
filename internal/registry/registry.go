// Package registry provides a global registry of playable levels.
// Built-in levels register themselves in init() functions; levels loaded
// from disk or the database are added at runtime with Set. The platform
// discovers and instantiates them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-ascent/internal/config"
	"github.com/vovakirdan/tui-ascent/internal/core"
	"github.com/vovakirdan/tui-ascent/internal/level"
)

// Game is the interface between a level session and the platform.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input sampling, timing, and rendering.
type Game interface {
	// ID returns the level identifier used by the CLI and run storage.
	ID() string

	// Title returns the level name for display.
	Title() string

	// Reset starts a fresh run from the level template.
	// The RuntimeConfig provides screen dimensions and tick rate.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by dtMs of wall-clock time.
	// in holds the movement sources sampled this tick; actions holds the
	// discrete commands (pause, edit, restart).
	Step(dtMs float64, in core.InputSnapshot, actions core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current run state.
	State() core.GameState
}

// Touchable is implemented by games that draw on-screen controls.
// TouchAt maps a pressed screen cell to the touch source and reports
// whether the cell is a control.
type Touchable interface {
	TouchAt(x, y int) (core.TouchState, bool)
}

// Click is a mouse press in edit mode.
type Click struct {
	X, Y  int // Screen cell
	Right bool
	Ctrl  bool
	Alt   bool
	Wheel int // -1 up, +1 down, 0 for a button press
}

// Editable is implemented by games with an in-place level editor.
type Editable interface {
	// Click applies a mouse press to the level design.
	Click(c Click) error
	// Design returns the edited level for saving.
	Design() level.Level
	// Reload replaces the level template, discarding edits.
	Reload(l level.Level)
}

// Env is what a factory needs to build a game.
type Env struct {
	Config config.AscentConfig
	Logger *log.Logger // Nil discards logs
	Edit   bool        // Start in edit mode
}

// GameInfo contains metadata about a registered level.
type GameInfo struct {
	ID     string
	Title  string
	Source string // "builtin", a file path, or "db"
}

// Factory is a function that creates a new instance of a game.
type Factory func(env Env) Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a level factory to the registry.
// Typically called from an init() function.
// Panics if a level with the same ID is already registered.
func Register(info GameInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// Set adds or replaces a level factory. Used for levels discovered at
// runtime, which may shadow a built-in with the same ID.
func Set(info GameInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	entries[info.ID] = entry{info: info, factory: f}
}

// List returns information about all registered levels, sorted by title.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Title != result[j].Title {
			return result[i].Title < result[j].Title
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the ID is not registered.
func Create(id string, env Env) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown level %q", id)
	}
	return e.factory(env), nil
}

// Info returns the metadata of a registered level.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Exists checks if a level with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
