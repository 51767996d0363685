package sim

import (
	"github.com/vovakirdan/tui-ascent/internal/config"
	"github.com/vovakirdan/tui-ascent/internal/core"
)

// Camera is the vertical scroll offset: the level-space y of the top of the
// viewport. It is always within [0, LevelHeightMax-GameHeight].
type Camera struct {
	Y float64

	threshold  float64
	gameHeight float64
	maxY       float64
}

// NewCamera returns a camera looking at the bottom of the level.
func NewCamera(world config.WorldConfig, cam config.CameraConfig) *Camera {
	c := &Camera{
		threshold:  cam.ScrollThreshold,
		gameHeight: world.GameHeight,
		maxY:       world.LevelHeightMax - world.GameHeight,
	}
	if c.maxY < 0 {
		c.maxY = 0
	}
	c.Reset()
	return c
}

// Reset moves the camera to the bottom of the level.
func (c *Camera) Reset() {
	c.Y = c.maxY
}

// MaxY returns the largest allowed offset.
func (c *Camera) MaxY() float64 {
	return c.maxY
}

// Follow scrolls to keep a player whose top is at playerY inside the dead zone.
// Above the upper threshold the camera tracks the player up; below
// GameHeight-threshold/2 it tracks down, but never moves up in that branch.
func (c *Camera) Follow(playerY float64) {
	screenY := playerY - c.Y
	switch {
	case screenY < c.threshold:
		c.Y = playerY - c.threshold
	case screenY > c.gameHeight-c.threshold/2:
		candidate := min(c.maxY, playerY-(c.gameHeight-c.threshold/2))
		if candidate > c.Y {
			c.Y = candidate
		}
	}
	c.clamp()
}

// Scroll moves the camera by dy, as the edit-mode wheel does.
func (c *Camera) Scroll(dy float64) {
	c.Y += dy
	c.clamp()
}

func (c *Camera) clamp() {
	c.Y = core.ClampF(c.Y, 0, c.maxY)
}
