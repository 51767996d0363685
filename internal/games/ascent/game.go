// Package ascent adapts a simulation session to the platform: it maps
// discrete actions onto the session, draws levels into a screen buffer
// and exposes the on-screen controls and the in-place editor.
// Built-in levels register themselves on import.
package ascent

import (
	"fmt"

	"github.com/vovakirdan/tui-ascent/internal/core"
	"github.com/vovakirdan/tui-ascent/internal/level"
	"github.com/vovakirdan/tui-ascent/internal/registry"
	"github.com/vovakirdan/tui-ascent/internal/sim"
)

// Level sources reported in registry.GameInfo.
const (
	SourceBuiltin  = "builtin"
	SourceDatabase = "db"
)

// Game plays one level.
type Game struct {
	id      string
	env     registry.Env
	session *sim.Session
	snap    sim.Snapshot
	input   core.InputSnapshot // Last sampled input, for drawing controls
	paused  bool
	theme   Theme
	rc      core.RuntimeConfig
	screenW int
	screenH int
	view    viewport // Layout of the last Render, for mouse mapping
	status  string   // Last editor message
}

// New creates a game for tmpl.
func New(id string, tmpl level.Level, env registry.Env) *Game {
	mode := sim.ModePlay
	if env.Edit {
		mode = sim.ModeEdit
	}
	theme, _ := ThemeByName(env.Config.Render.Theme)
	g := &Game{
		id:  id,
		env: env,
		session: sim.NewSession(tmpl, env.Config, sim.Options{
			Logger: env.Logger,
			Mode:   mode,
		}),
		theme: theme,
		rc:    core.DefaultConfig(),
	}
	g.snap = g.session.Snapshot()
	g.screenW, g.screenH = g.rc.ScreenW, g.rc.ScreenH
	g.view = newViewport(g.screenW, g.screenH, env.Config.World, g.snap.CameraY)
	return g
}

// ID returns the level identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the level name.
func (g *Game) Title() string {
	return g.snap.Name
}

// Reset starts a fresh run from the template, discarding edits.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rc = cfg
	g.screenW, g.screenH = cfg.ScreenW, cfg.ScreenH
	g.paused = false
	g.status = ""
	g.input = core.InputSnapshot{}
	g.session.Restart(true)
	g.snap = g.session.Snapshot()
}

// Step advances the session by dtMs, after applying discrete actions.
func (g *Game) Step(dtMs float64, in core.InputSnapshot, actions core.InputFrame) core.StepResult {
	g.input = in

	if actions.Has(core.ActionToggleEdit) {
		g.toggleEdit()
	}

	if g.session.Mode() == sim.ModeEdit {
		step := g.env.Config.Editor.ScrollStep
		if actions.Has(core.ActionUp) {
			g.session.ScrollCamera(-step)
		}
		if actions.Has(core.ActionDown) {
			g.session.ScrollCamera(step)
		}
		g.snap = g.session.Snapshot()
		return core.StepResult{State: g.State()}
	}

	if actions.Has(core.ActionRestart) {
		g.session.Restart(false)
		g.paused = false
	}
	if actions.Has(core.ActionPause) && !g.session.Finished() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.snap = g.session.Tick(dtMs, in)
	return core.StepResult{State: g.State()}
}

func (g *Game) toggleEdit() {
	g.paused = false
	g.status = ""
	if g.session.Mode() == sim.ModeEdit {
		g.session.SetMode(sim.ModePlay)
	} else {
		g.session.SetMode(sim.ModeEdit)
	}
	g.snap = g.session.Snapshot()
}

// State returns the current run state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Ticks:     g.snap.Ticks,
		Deaths:    g.snap.Deaths,
		ElapsedMs: g.snap.ElapsedMs,
		Finished:  g.snap.Finished,
		Paused:    g.paused,
		Editing:   g.snap.Mode == sim.ModeEdit,
	}
}

// Snapshot returns the session state after the last Step.
func (g *Game) Snapshot() sim.Snapshot {
	return g.snap
}

// TouchAt maps a pressed screen cell to the on-screen controls.
// Controls are hidden in edit mode.
func (g *Game) TouchAt(x, y int) (core.TouchState, bool) {
	if g.snap.Mode == sim.ModeEdit {
		return core.TouchState{}, false
	}
	return newControls(g.screenW, g.screenH).touchAt(x, y)
}

// Design returns the edited level.
func (g *Game) Design() level.Level {
	return g.session.Template()
}

// Reload replaces the template, for example after the level file changed.
func (g *Game) Reload(l level.Level) {
	g.session.Reload(l)
	g.paused = false
	g.snap = g.session.Snapshot()
	g.status = fmt.Sprintf("reloaded %s", l.Name)
}

// ID returns the registry identifier for a level.
func ID(l level.Level) string {
	if slug := level.Slug(l.Name); slug != "" {
		return slug
	}
	return "level"
}

// Factory builds games for l.
func Factory(l level.Level) registry.Factory {
	tmpl := l.Clone()
	id := ID(l)
	return func(env registry.Env) registry.Game {
		return New(id, tmpl, env)
	}
}

// Set registers l, replacing any level with the same ID.
func Set(l level.Level, source string) string {
	id := ID(l)
	registry.Set(registry.GameInfo{ID: id, Title: l.Name, Source: source}, Factory(l))
	return id
}

// Register the built-in levels with the registry
func init() {
	levels, err := level.Builtins()
	if err != nil {
		panic(fmt.Sprintf("ascent: %v", err))
	}
	for _, l := range levels {
		registry.Register(registry.GameInfo{ID: ID(l), Title: l.Name, Source: SourceBuiltin}, Factory(l))
	}
}
