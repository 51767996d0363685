package ascent

import (
	"math"

	"github.com/vovakirdan/tui-ascent/internal/config"
	"github.com/vovakirdan/tui-ascent/internal/core"
)

// Screen rows reserved outside the playfield.
const (
	hudRows      = 1
	controlsRows = 1
)

// viewport maps level pixels to screen cells. Terminal cells are about
// twice as tall as wide, so a column covers half the pixels of a row.
type viewport struct {
	originX, originY int // Screen cell of the field's top-left
	cols, rows       int
	pxPerCol         float64
	pxPerRow         float64
	cameraY          float64
}

// newViewport fits the game window into a screen of w x h cells, below
// the HUD and above the controls row, centered horizontally.
func newViewport(w, h int, world config.WorldConfig, cameraY float64) viewport {
	rows := max(h-hudRows-controlsRows, 1)
	pxPerRow := world.GameHeight / float64(rows)
	pxPerCol := pxPerRow / 2
	cols := ceilCells(world.GameWidth / pxPerCol)

	// Too narrow: fit the width and leave rows unused.
	if room := max(w-2, 1); cols > room {
		cols = room
		pxPerCol = world.GameWidth / float64(cols)
		pxPerRow = pxPerCol * 2
		rows = min(ceilCells(world.GameHeight/pxPerRow), rows)
	}

	return viewport{
		originX:  max((w-cols)/2, 0),
		originY:  hudRows,
		cols:     cols,
		rows:     rows,
		pxPerCol: pxPerCol,
		pxPerRow: pxPerRow,
		cameraY:  cameraY,
	}
}

func ceilCells(v float64) int {
	return max(int(math.Ceil(v-1e-9)), 1)
}

// field returns the playfield rectangle in screen cells.
func (v viewport) field() core.Rect {
	return core.NewRect(v.originX, v.originY, v.cols, v.rows)
}

// toCell returns the screen cell covering level point p.
func (v viewport) toCell(p core.Vec2) (int, int) {
	x := v.originX + int(math.Floor(p.X/v.pxPerCol))
	y := v.originY + int(math.Floor((p.Y-v.cameraY)/v.pxPerRow))
	return x, y
}

// toLevel returns the level point at the center of a screen cell and
// whether the cell lies inside the playfield.
func (v viewport) toLevel(x, y int) (core.Vec2, bool) {
	p := core.V(
		(float64(x-v.originX)+0.5)*v.pxPerCol,
		v.cameraY+(float64(y-v.originY)+0.5)*v.pxPerRow,
	)
	return p, v.field().Contains(x, y)
}

// boxRect returns the cells a level box covers, clipped to the field.
// Every visible box covers at least one cell.
func (v viewport) boxRect(b core.Box) (core.Rect, bool) {
	x0 := int(math.Floor(b.Left() / v.pxPerCol))
	x1 := max(int(math.Ceil(b.Right()/v.pxPerCol)), x0+1)
	y0 := int(math.Floor((b.Top() - v.cameraY) / v.pxPerRow))
	y1 := max(int(math.Ceil((b.Bottom()-v.cameraY)/v.pxPerRow)), y0+1)

	x0, x1 = max(x0, 0), min(x1, v.cols)
	y0, y1 = max(y0, 0), min(y1, v.rows)
	if x0 >= x1 || y0 >= y1 {
		return core.Rect{}, false
	}
	return core.NewRect(v.originX+x0, v.originY+y0, x1-x0, y1-y0), true
}
