// Package tui provides the Bubble Tea integration for the ascent platform.
// It handles the terminal UI loop, input sampling, and level orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameClock turns tick timestamps into frame durations in milliseconds.
// The first frame after a reset uses the nominal interval.
type frameClock struct {
	last      time.Time
	nominalMs float64
}

func newFrameClock(tickRate int) *frameClock {
	return &frameClock{nominalMs: 1000 / float64(max(tickRate, 1))}
}

// next returns the time since the previous tick.
func (c *frameClock) next(t time.Time) float64 {
	if c.last.IsZero() || !t.After(c.last) {
		c.last = t
		return c.nominalMs
	}
	dt := float64(t.Sub(c.last)) / float64(time.Millisecond)
	c.last = t
	return dt
}

// reset forgets the previous tick so time spent paused is not simulated.
func (c *frameClock) reset() {
	c.last = time.Time{}
}
