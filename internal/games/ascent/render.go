package ascent

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-ascent/internal/core"
	"github.com/vovakirdan/tui-ascent/internal/level"
	"github.com/vovakirdan/tui-ascent/internal/sim"
)

// Visual characters for rendering
const (
	PlatformChar   = '='
	MovingChar     = '≈'
	PathChar       = '·'
	TrapChar       = '▲'
	CheckpointChar = '⚑'
	VictoryChar    = '★'
	CheckpointFill = '░'
	PlayerChar     = '█'
	FrameChar      = '│'
)

// backdropFrequency is one backdrop rune per this many cells, on average.
const backdropFrequency = 23

// editHelp is shown in the controls row while editing.
const editHelp = "click: platform/move  ctrl: checkpoint  alt: spikes  right: remove  ↑↓: scroll  e: play"

// Render draws the current session state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.screenW, g.screenH = dst.Width(), dst.Height()
	v := newViewport(dst.Width(), dst.Height(), g.env.Config.World, g.snap.CameraY)
	g.view = v

	g.drawBackdrop(dst, v)
	g.drawFrame(dst, v)

	editing := g.snap.Mode == sim.ModeEdit
	for _, s := range g.snap.Signs {
		g.drawSign(dst, v, s)
	}
	if editing {
		for _, p := range g.snap.Platforms {
			if p.Movement != nil {
				g.fill(dst, v, p.Box.At(p.Movement.Path[1]), PathChar, g.theme.Moving)
			}
		}
	}
	for _, p := range g.snap.Platforms {
		if p.Moving() {
			g.fill(dst, v, p.Box, MovingChar, g.theme.Moving)
		} else {
			g.fill(dst, v, p.Box, PlatformChar, g.theme.Platform)
		}
	}
	for _, c := range g.snap.Checkpoints {
		g.drawCheckpoint(dst, v, c)
	}
	for _, t := range g.snap.Traps {
		g.fill(dst, v, t.Box, TrapChar, g.theme.Trap)
	}
	g.fill(dst, v, g.playerBox(), PlayerChar, g.theme.Player)

	g.drawHUD(dst)
	if editing {
		g.drawEditBar(dst)
	} else {
		newControls(dst.Width(), dst.Height()).draw(dst, g.input.Touch, g.theme)
	}

	switch {
	case g.snap.Finished:
		g.drawCenteredMessage(dst, "LEVEL COMPLETE",
			fmt.Sprintf("%s  |  %d deaths  |  R: play again", formatElapsed(g.snap.ElapsedMs), g.snap.Deaths))
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) playerBox() core.Box {
	pc := g.env.Config.Player
	return core.Box{Position: g.snap.Player.Position, Width: pc.Width, Height: pc.Height}
}

// fill paints every cell a level box covers.
func (g *Game) fill(dst *core.Screen, v viewport, b core.Box, r rune, c core.Color) {
	if rect, ok := v.boxRect(b); ok {
		dst.DrawRect(rect, r, c)
	}
}

// drawBackdrop scatters the theme's backdrop rune over the field. The
// pattern is anchored to level rows so it scrolls with the camera.
func (g *Game) drawBackdrop(dst *core.Screen, v viewport) {
	if g.theme.Backdrop == ' ' {
		return
	}
	base := int(math.Floor(v.cameraY / v.pxPerRow))
	for row := 0; row < v.rows; row++ {
		for col := 0; col < v.cols; col++ {
			h := uint32(col)*73856093 ^ uint32(base+row)*19349663
			if h%backdropFrequency == 0 {
				dst.SetColored(v.originX+col, v.originY+row, g.theme.Backdrop, g.theme.BackdropColor)
			}
		}
	}
}

// drawFrame draws the side walls of the playfield.
func (g *Game) drawFrame(dst *core.Screen, v viewport) {
	for row := 0; row < v.rows; row++ {
		dst.SetColored(v.originX-1, v.originY+row, FrameChar, core.ColorGray)
		dst.SetColored(v.originX+v.cols, v.originY+row, FrameChar, core.ColorGray)
	}
}

func (g *Game) drawCheckpoint(dst *core.Screen, v viewport, c level.Checkpoint) {
	rect, ok := v.boxRect(c.Box)
	if !ok {
		return
	}
	glyph, color := CheckpointChar, g.theme.Checkpoint
	switch {
	case c.ID == g.snap.VictoryID:
		glyph, color = VictoryChar, g.theme.Victory
	case g.snap.IsActive(c.ID):
		color = g.theme.Active
	}
	dst.DrawRect(rect, CheckpointFill, color)
	dst.SetColored(rect.X, rect.Y, glyph, color)
}

// drawSign writes the sign label at its top-left, clipped to the field.
func (g *Game) drawSign(dst *core.Screen, v viewport, s level.Sign) {
	x, y := v.toCell(s.Position)
	field := v.field()
	for i, r := range []rune(s.Variant.Label()) {
		if field.Contains(x+i, y) {
			dst.SetColored(x+i, y, r, g.theme.Sign)
		}
	}
}

// drawHUD draws the status line on the top row.
func (g *Game) drawHUD(dst *core.Screen) {
	dst.DrawHLine(0, 0, dst.Width(), ' ', g.theme.HUD)

	left := fmt.Sprintf(" %s ", g.snap.Name)
	dst.DrawTextColored(0, 0, left, g.theme.HUD)

	var mid, mode string
	if g.snap.Mode == sim.ModeEdit {
		mid = fmt.Sprintf("│ y %.0f │ next id %d", g.snap.CameraY, g.session.NextID())
		mode = "EDIT"
	} else {
		mid = fmt.Sprintf("│ %c %d/%d │ ✖ %d │ %s",
			CheckpointChar, len(g.snap.Activated), len(g.snap.Checkpoints),
			g.snap.Deaths, formatElapsed(g.snap.ElapsedMs))
		mode = "PLAY"
		if g.paused {
			mode = "PAUSED"
		}
	}
	dst.DrawTextColored(runeLen(left), 0, mid, g.theme.HUD)

	label := fmt.Sprintf(" %s ", mode)
	dst.DrawTextColored(dst.Width()-runeLen(label), 0, label, g.theme.HUD)
}

// drawEditBar replaces the controls row with editor help and status.
func (g *Game) drawEditBar(dst *core.Screen) {
	y := dst.Height() - controlsRows
	text := " " + editHelp
	if g.status != "" {
		text = fmt.Sprintf(" %s  │ %s", g.status, editHelp)
	}
	dst.DrawTextColored(0, y, text, g.theme.HUD)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := core.Max(runeLen(title), runeLen(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	titleX := boxX + (boxW-runeLen(title))/2
	dst.DrawTextColored(titleX, boxY+1, title, g.theme.Victory)

	subtitleX := boxX + (boxW-runeLen(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// formatElapsed renders milliseconds as m:ss.s.
func formatElapsed(ms float64) string {
	tenths := int(math.Round(ms / 100))
	rest := tenths % 600
	return fmt.Sprintf("%d:%02d.%d", tenths/600, rest/10, rest%10)
}
