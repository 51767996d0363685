package ascent

import (
	"sort"

	"github.com/vovakirdan/tui-ascent/internal/core"
)

// Theme is a color palette for the playfield.
type Theme struct {
	Name          string
	Backdrop      rune // Scattered over empty sky; ' ' for none
	BackdropColor core.Color
	Platform      core.Color
	Moving        core.Color
	Trap          core.Color
	Checkpoint    core.Color
	Active        core.Color
	Victory       core.Color
	Player        core.Color
	Sign          core.Color
	HUD           core.Color
}

// DefaultTheme is used when the configured theme is unknown.
const DefaultTheme = "day"

var themes = map[string]Theme{
	"day": {
		Name:          "day",
		Backdrop:      ' ',
		BackdropColor: core.ColorDefault,
		Platform:      core.ColorGreen,
		Moving:        core.ColorCyan,
		Trap:          core.ColorRed,
		Checkpoint:    core.ColorWhite,
		Active:        core.ColorBrightGreen,
		Victory:       core.ColorBrightYellow,
		Player:        core.ColorPink,
		Sign:          core.ColorBrown,
		HUD:           core.ColorBrightWhite,
	},
	"afternoon": {
		Name:          "afternoon",
		Backdrop:      ' ',
		BackdropColor: core.ColorDefault,
		Platform:      core.ColorOrange,
		Moving:        core.ColorYellow,
		Trap:          core.ColorBrightRed,
		Checkpoint:    core.ColorWhite,
		Active:        core.ColorGreen,
		Victory:       core.ColorBrightYellow,
		Player:        core.ColorPink,
		Sign:          core.ColorBrown,
		HUD:           core.ColorYellow,
	},
	"night": {
		Name:          "night",
		Backdrop:      '·',
		BackdropColor: core.ColorGray,
		Platform:      core.ColorBlue,
		Moving:        core.ColorBrightCyan,
		Trap:          core.ColorBrightRed,
		Checkpoint:    core.ColorGray,
		Active:        core.ColorBrightGreen,
		Victory:       core.ColorBrightYellow,
		Player:        core.ColorBrightMagenta,
		Sign:          core.ColorGray,
		HUD:           core.ColorBrightBlue,
	},
	"twilight": {
		Name:          "twilight",
		Backdrop:      '∙',
		BackdropColor: core.ColorMagenta,
		Platform:      core.ColorMagenta,
		Moving:        core.ColorBrightMagenta,
		Trap:          core.ColorRed,
		Checkpoint:    core.ColorWhite,
		Active:        core.ColorBrightGreen,
		Victory:       core.ColorYellow,
		Player:        core.ColorPink,
		Sign:          core.ColorOrange,
		HUD:           core.ColorBrightMagenta,
	},
}

// ThemeByName returns the named theme, falling back to DefaultTheme.
func ThemeByName(name string) (Theme, bool) {
	t, ok := themes[name]
	if !ok {
		return themes[DefaultTheme], false
	}
	return t, true
}

// ThemeNames lists the available themes, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
