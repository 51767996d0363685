package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ascent/internal/core"
	"github.com/vovakirdan/tui-ascent/internal/games/ascent"
	"github.com/vovakirdan/tui-ascent/internal/platform/tui"
	"github.com/vovakirdan/tui-ascent/internal/registry"
	"github.com/vovakirdan/tui-ascent/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a level, E to edit it.
After leaving a level, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play level
  E            - Edit level
  Tab          - Best runs
  T            - Theme
  Q            - Quit

Examples:
  ascent menu
  ascent menu --fps 30
  ascent menu --db ./ascent.db`,
	Annotations: map[string]string{
		annotationInteractive: "true",
	},
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagTheme, "theme", "", "Color theme")
}

func runMenu(_ *cobra.Command, _ []string) {
	applyTheme()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	runMenuLoop(store, runtimeConfig())
}

// runMenuLoop alternates between the menu, the scoreboard and levels
// until the player quits.
func runMenuLoop(store *storage.Store, cfg core.RuntimeConfig) {
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		if menuResult.WantsTheme {
			theme, err := tui.RunThemeSelector(ascent.ThemeNames(), ascentCfg.Render.Theme, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if theme != "" {
				ascentCfg.Render.Theme = theme
			}
			continue
		}

		if menuResult.LevelID == "" {
			return
		}

		game, err := registry.Create(menuResult.LevelID, env(menuResult.Edit))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating level: %v\n", err)
			continue
		}

		back, err := tui.Run(game, cfg, tui.Options{
			Store:  store,
			Logger: logger,
			Input:  ascentCfg.Input,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running level: %v\n", err)
			continue
		}
		if !back {
			return
		}

		// Pick up levels saved while editing
		registerStoredLevels(store)
	}
}
