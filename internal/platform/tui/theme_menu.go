package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-ascent/internal/core"
)

// ThemeModel lets users pick the color theme levels are drawn with.
type ThemeModel struct {
	themes    []string
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  string
	quitting  bool
	back      bool
}

// NewThemeModel creates a theme picker with the cursor on current.
func NewThemeModel(themes []string, current string, width, height int) ThemeModel {
	m := ThemeModel{
		themes:    themes,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	for i, name := range themes {
		if name == current {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m ThemeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ThemeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m ThemeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.themes)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.themes) > 0 {
			m.selected = m.themes[m.cursor]
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the theme list.
func (m ThemeModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("T H E M E", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a theme:", m.width))
	b.WriteString("\n\n")

	for i, name := range m.themes {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-12s", cursor, name), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen theme, empty if none was chosen.
func (m ThemeModel) Selected() string {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m ThemeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m ThemeModel) WantsBack() bool {
	return m.back
}

// RunThemeSelector runs the theme picker. It returns the chosen theme,
// or "" when the user backed out or quit.
func RunThemeSelector(themes []string, current string, cfg core.RuntimeConfig) (string, error) {
	model := NewThemeModel(themes, current, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(ThemeModel)
	if !ok {
		return "", nil
	}
	return m.Selected(), nil
}
