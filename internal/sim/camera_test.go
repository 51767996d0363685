package sim

import (
	"testing"

	"github.com/vovakirdan/tui-ascent/internal/config"
)

func TestCameraFollow(t *testing.T) {
	cfg := config.DefaultAscentConfig()

	tests := []struct {
		name    string
		startY  float64
		playerY float64
		want    float64
	}{
		{"scrolls down to keep player in view", 0, 1000, 360},
		{"never scrolls past the level bottom", 0, 5000, 3200},
		{"scrolls up above threshold", 3200, 3300, 2980},
		{"never above level top", 100, 50, 0},
		{"dead zone holds still", 2000, 2400, 2000},
		{"at bottom stays at bottom", 3200, 3900, 3200},
		{"upper edge of dead zone", 2000, 2320, 2000},
		{"lower edge of dead zone", 2000, 2640, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(cfg.World, cfg.Camera)
			c.Y = tt.startY
			c.Follow(tt.playerY)
			if c.Y != tt.want {
				t.Errorf("Follow(%v) from %v = %v, want %v", tt.playerY, tt.startY, c.Y, tt.want)
			}
		})
	}
}

func TestCameraStartsAtBottomAndScrollClamps(t *testing.T) {
	cfg := config.DefaultAscentConfig()
	c := NewCamera(cfg.World, cfg.Camera)
	if c.Y != 3200 || c.MaxY() != 3200 {
		t.Fatalf("new camera at %v (max %v), want 3200", c.Y, c.MaxY())
	}

	c.Scroll(500)
	if c.Y != 3200 {
		t.Errorf("Scroll past bottom = %v, want 3200", c.Y)
	}
	c.Scroll(-1000)
	if c.Y != 2200 {
		t.Errorf("Scroll up = %v, want 2200", c.Y)
	}
	c.Scroll(-5000)
	if c.Y != 0 {
		t.Errorf("Scroll past top = %v, want 0", c.Y)
	}
	c.Reset()
	if c.Y != 3200 {
		t.Errorf("Reset = %v, want 3200", c.Y)
	}
}
