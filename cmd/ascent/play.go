package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ascent/internal/games/ascent"
	"github.com/vovakirdan/tui-ascent/internal/level"
	"github.com/vovakirdan/tui-ascent/internal/platform/tui"
	"github.com/vovakirdan/tui-ascent/internal/registry"
)

var (
	flagWatch bool
	flagEdit  bool
	flagTheme string
)

var playCmd = &cobra.Command{
	Use:   "play [level|file]",
	Short: "Play a level",
	Long: `Start playing the specified level. Without a level, the menu opens.

The level may be an id from 'ascent list', a level name, or the path of a
YAML or JSON level file.

Controls:
  Left/Right/A/D  - Move
  Space/Up/W      - Jump
  Mouse           - On-screen buttons and joystick
  P               - Pause
  R               - Restart (play again after victory)
  E               - Toggle edit mode
  Ctrl+S          - Save the level to the database
  B/Esc           - Back to menu (when paused, finished or editing)
  Q/Ctrl+C        - Quit

Edit mode (mouse):
  Click           - Add a platform, or toggle movement of the one under it
  Ctrl+Click      - Add a checkpoint
  Alt+Click       - Add spikes riding the platform under the cursor
  Right click     - Remove the object under the cursor
  Wheel, Up/Down  - Scroll

Examples:
  ascent play kirbys-ascent
  ascent play "Rocco's Impossible Level" --assist floaty
  ascent play ./tower.yaml --watch --edit
  ascent play kirbys-ascent --theme night`,
	Args: cobra.MaximumNArgs(1),
	Annotations: map[string]string{
		annotationInteractive: "true",
	},
	Run: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the level when its file changes")
	playCmd.Flags().BoolVar(&flagEdit, "edit", false, "Start in edit mode")
	playCmd.Flags().StringVar(&flagTheme, "theme", "", fmt.Sprintf("Color theme: %v", ascent.ThemeNames()))
}

func runPlay(_ *cobra.Command, args []string) {
	applyTheme()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if len(args) == 0 {
		runMenuLoop(store, runtimeConfig())
		return
	}

	id, path, err := resolveLevel(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(id, env(flagEdit))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating level: %v\n", err)
		os.Exit(1)
	}

	opts := tui.Options{
		Store:  store,
		Logger: logger,
		Input:  ascentCfg.Input,
	}
	if flagWatch {
		if path == "" {
			fmt.Fprintf(os.Stderr, "Error: level %q is not backed by a file, --watch needs a level file\n", id)
			os.Exit(1)
		}
		// Watch the directory: editors often replace files on save
		watcher, err := level.NewWatcher(filepath.Dir(path))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", path, err)
			os.Exit(1)
		}
		defer watcher.Close()
		opts.Watcher = watcher
		opts.WatchFile = path
		logger.Info("watching level file", "path", path)
	}

	cfg := runtimeConfig()
	back, err := tui.Run(game, cfg, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running level: %v\n", err)
		os.Exit(1)
	}
	if back {
		runMenuLoop(store, cfg)
	}
}

// applyTheme overrides the configured theme with --theme.
func applyTheme() {
	if flagTheme == "" {
		return
	}
	if _, ok := ascent.ThemeByName(flagTheme); !ok {
		fmt.Fprintf(os.Stderr, "Warning: unknown theme %q, using %s\n", flagTheme, ascent.DefaultTheme)
	}
	ascentCfg.Render.Theme = flagTheme
}
