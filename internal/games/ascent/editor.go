package ascent

import (
	"fmt"

	"github.com/vovakirdan/tui-ascent/internal/core"
	"github.com/vovakirdan/tui-ascent/internal/level"
	"github.com/vovakirdan/tui-ascent/internal/registry"
	"github.com/vovakirdan/tui-ascent/internal/sim"
)

// Click applies a mouse press in edit mode:
//
//	click        add a platform, or toggle movement of the platform under it
//	ctrl+click   add a checkpoint
//	alt+click    add spikes riding the platform under it
//	right click  remove the object under it
//	wheel        scroll the camera
//
// Presses outside the playfield are ignored.
func (g *Game) Click(c registry.Click) error {
	if g.session.Mode() != sim.ModeEdit {
		return fmt.Errorf("click: %w", sim.ErrNotEditing)
	}
	if c.Wheel != 0 {
		g.session.ScrollCamera(float64(c.Wheel) * g.env.Config.Editor.ScrollStep / 2)
		g.snap = g.session.Snapshot()
		return nil
	}
	p, ok := g.view.toLevel(c.X, c.Y)
	if !ok {
		return nil
	}

	var err error
	switch {
	case c.Right:
		err = g.removeAt(p)
	case c.Ctrl:
		err = g.addCheckpoint(p)
	case c.Alt:
		err = g.addTrap(p)
	default:
		err = g.platformClick(p)
	}
	g.snap = g.session.Snapshot()
	if err != nil {
		g.status = err.Error()
	}
	return err
}

// place returns a w x h box centered on p, snapped to the grid and kept
// inside the game width.
func (g *Game) place(p core.Vec2, w, h float64) core.Box {
	ed := g.env.Config.Editor
	x := ed.Snap(p.X - w/2)
	x = core.ClampF(x, 0, g.env.Config.World.GameWidth-w)
	return core.NewBox(x, ed.Snap(p.Y-h/2), w, h)
}

func (g *Game) platformClick(p core.Vec2) error {
	ed := g.env.Config.Editor
	if id, ok := g.session.PlatformAt(p); ok {
		return g.toggleMovement(id)
	}
	id, err := g.session.AddPlatform(g.place(p, ed.PlatformWidth, ed.PlatformHeight))
	if err != nil {
		return err
	}
	g.status = fmt.Sprintf("added platform %d", id)
	return nil
}

// toggleMovement makes a static platform oscillate one platform width
// sideways, toward whichever side has room, or stops a moving one.
func (g *Game) toggleMovement(id level.ID) error {
	design := g.session.Template()
	i, _ := design.PlatformIndex(id)
	pl := design.Platforms[i]
	if pl.Movement != nil {
		if err := g.session.DisableMovement(id); err != nil {
			return err
		}
		g.status = fmt.Sprintf("platform %d stopped", id)
		return nil
	}

	target := pl.Position.Add(core.V(pl.Width, 0))
	if target.X+pl.Width > g.env.Config.World.GameWidth {
		target = pl.Position.Sub(core.V(pl.Width, 0))
	}
	target.X = core.ClampF(target.X, 0, g.env.Config.World.GameWidth-pl.Width)
	if err := g.session.EnableMovement(id, target, g.env.Config.Editor.MovementSpeed); err != nil {
		return err
	}
	g.status = fmt.Sprintf("platform %d moving", id)
	return nil
}

func (g *Game) addCheckpoint(p core.Vec2) error {
	ed := g.env.Config.Editor
	id, err := g.session.AddCheckpoint(g.place(p, ed.CheckpointWidth, ed.CheckpointHeight))
	if err != nil {
		return err
	}
	g.status = fmt.Sprintf("added checkpoint %d", id)
	return nil
}

// addTrap puts spikes on top of the platform under p, riding it. Without
// a platform the spikes are freestanding at p.
func (g *Game) addTrap(p core.Vec2) error {
	ed := g.env.Config.Editor
	box := g.place(p, ed.TrapWidth, ed.TrapHeight)
	rider := level.NoID
	if id, ok := g.session.PlatformAt(p); ok {
		design := g.session.Template()
		i, _ := design.PlatformIndex(id)
		pl := design.Platforms[i]
		box.Position.X = core.ClampF(box.Position.X, pl.Left(), pl.Right()-box.Width)
		box.Position.Y = pl.Top() - box.Height
		rider = id
	}
	id, err := g.session.AddTrap(box, rider)
	if err != nil {
		return err
	}
	if rider.Valid() {
		g.status = fmt.Sprintf("added spikes %d on platform %d", id, rider)
	} else {
		g.status = fmt.Sprintf("added spikes %d", id)
	}
	return nil
}

func (g *Game) removeAt(p core.Vec2) error {
	kind, id := g.session.ObjectAt(p)
	if kind == sim.ObjectNone {
		return nil
	}
	if err := g.session.RemoveObject(kind, id); err != nil {
		return err
	}
	g.status = fmt.Sprintf("removed %d", id)
	return nil
}
