package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/tui-ascent/internal/core"
)

// cellStyles holds one foreground style per palette entry.
var cellStyles = func() [core.NumColors]lipgloss.Style {
	var styles [core.NumColors]lipgloss.Style
	for c := range core.NumColors {
		styles[c] = lipgloss.NewStyle()
		if code := c.ANSI(); code != "" {
			styles[c] = styles[c].Foreground(lipgloss.Color(code))
		}
	}
	return styles
}()

func styleFor(c core.Color) lipgloss.Style {
	if c >= core.NumColors {
		return cellStyles[core.ColorDefault]
	}
	return cellStyles[c]
}

// RenderScreen turns a Screen into styled terminal text. Each run of
// same-colored cells in a row is styled once.
func RenderScreen(s *core.Screen) string {
	var sb, run strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		run.Reset()
		color := core.ColorDefault
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if x > 0 && cell.Color != color {
				sb.WriteString(styleFor(color).Render(run.String()))
				run.Reset()
			}
			color = cell.Color
			run.WriteRune(cell.Rune)
		}
		if run.Len() > 0 {
			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}
