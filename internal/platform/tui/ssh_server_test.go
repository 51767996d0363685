package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-ascent/internal/config"
	"github.com/vovakirdan/tui-ascent/internal/core"
	"github.com/vovakirdan/tui-ascent/internal/registry"
)

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, want SessionModel", next)
	}
	return sm
}

func TestSessionMenuLevelMenu(t *testing.T) {
	game := &fakeGame{}
	var created registry.Env
	registry.Set(registry.GameInfo{ID: "fake", Title: "Fake", Source: "test"}, func(env registry.Env) registry.Game {
		created = env
		return game
	})

	env := registry.Env{Config: config.DefaultAscentConfig()}
	m := NewSessionModel(nil, core.DefaultConfig(), env)
	if m.view != viewMenu {
		t.Fatal("session should start in the menu")
	}

	// Move the cursor to the fake level
	for i, item := range m.menu.items {
		if item.LevelID == "fake" {
			for range i {
				m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyDown})
			}
			break
		}
	}

	m = updateSession(t, m, runeKey("e"))
	if m.view != viewLevel {
		t.Fatal("selecting a level should open it")
	}
	if !created.Edit {
		t.Error("e should open the level in edit mode")
	}

	m = updateSession(t, m, TickMsg{})
	if game.steps != 1 {
		t.Errorf("level should tick inside the session, steps = %d", game.steps)
	}

	game.state.Editing = true
	m = updateSession(t, m, TickMsg{})
	m = updateSession(t, m, runeKey("b"))
	if m.view != viewMenu {
		t.Error("back should return to the menu")
	}
	if m.quitting {
		t.Error("back must not end the session")
	}
}

func TestSessionScoreboardAndQuit(t *testing.T) {
	m := NewSessionModel(nil, core.DefaultConfig(), registry.Env{Config: config.DefaultAscentConfig()})

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewScores {
		t.Fatal("tab should open the scoreboard")
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.view != viewMenu {
		t.Fatal("esc should leave the scoreboard")
	}

	m = updateSession(t, m, runeKey("q"))
	if !m.quitting || m.View() != "" {
		t.Error("q should end the session")
	}
}
