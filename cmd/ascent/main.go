// ascent is a vertical platformer for the terminal: climb from the floor
// checkpoint to the victory flag, dodging spikes and riding moving platforms.
//
// Usage:
//
//	ascent list                 - List available levels
//	ascent play [level|file]    - Play a level (menu when omitted)
//	ascent menu                 - Start menu to pick levels interactively
//	ascent serve                - Start SSH server for remote play
//	ascent scores <level>       - Show best runs for a level
//	ascent levels <command>     - Manage saved levels
//	ascent simulate <level>     - Run a level headlessly from an input script
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--db <path>         - Set database path (default: ~/.ascent/ascent.db)
//	--config <path>     - Physics/camera/input tuning YAML
//	--levels <dir>      - Directory of level files (default: ~/.ascent/levels)
//	--assist <preset>   - Physics preset: none, floaty, heavy
//	--log-level <level> - debug, info, warn, error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-ascent/internal/config"
	"github.com/vovakirdan/tui-ascent/internal/core"
	"github.com/vovakirdan/tui-ascent/internal/games/ascent"
	"github.com/vovakirdan/tui-ascent/internal/level"
	"github.com/vovakirdan/tui-ascent/internal/registry"
	"github.com/vovakirdan/tui-ascent/internal/storage"
)

// annotationInteractive marks commands that own the terminal, so logs
// must not go to stderr.
const annotationInteractive = "interactive"

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagLevels   string
	flagAssist   string
	flagLogLevel string
	flagLogFile  string
)

var (
	ascentCfg config.AscentConfig
	logger    = log.New(io.Discard)
	logFile   *os.File
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ascent",
	Short: "Ascent - climb to the top in your terminal",
	Long: `Ascent is a vertical platformer for the terminal.

Climb from the floor checkpoint to the victory flag. Touching spikes or
falling off the bottom of the level sends you back to the last checkpoint.

Available commands:
  list      - Show all available levels
  play      - Play a specific level directly
  menu      - Interactive level picker menu
  serve     - Start SSH server for remote play
  scores    - View best runs
  levels    - Import, export and delete saved levels
  simulate  - Run a level headlessly

Examples:
  ascent list
  ascent play kirbys-ascent
  ascent play ./levels/tower.yaml --watch
  ascent menu --assist floaty
  ascent serve --ssh :2222
  ascent scores kirbys-ascent`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ascent/ascent.db", "Path to levels and runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "~/.ascent/levels", "Directory of level files")
	rootCmd.PersistentFlags().StringVar(&flagAssist, "assist", "none", "Physics preset: none, floaty, heavy")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(simulateCmd)
}

// setup loads tuning, builds the logger and registers level files.
func setup(cmd *cobra.Command, _ []string) error {
	if err := setupLogger(cmd); err != nil {
		return err
	}

	cfg, err := config.LoadAscent(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	preset := config.ParseAssistPreset(flagAssist)
	config.ApplyAssistPreset(&cfg, preset)
	ascentCfg = cfg
	logger.Debug("config loaded", "path", flagConfig, "assist", preset, "timestep", cfg.Physics.Timestep)

	registerLevelFiles(expandHome(flagLevels))
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if logFile != nil {
		return logFile.Close()
	}
	return nil
}

func setupLogger(cmd *cobra.Command) error {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		path := expandHome(flagLogFile)
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating log directory: %w", err)
			}
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logFile = f
		w = f
	case cmd.Annotations[annotationInteractive] == "true":
		// The TUI owns the terminal
		w = io.Discard
	}

	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "ascent",
		Level:           lvl,
	})
	return nil
}

// registerLevelFiles registers every level file under dir. Files replace
// built-ins with the same name.
func registerLevelFiles(dir string) {
	entries, err := level.NewLoader(dir, logger).Entries()
	if err != nil {
		logger.Warn("loading level directory", "dir", dir, "err", err)
		return
	}
	for _, e := range entries {
		id := ascent.Set(e.Level, e.Path)
		logger.Debug("registered level file", "id", id, "path", e.Path)
	}
}

// registerStoredLevels registers levels saved in the database. They
// replace files and built-ins with the same name.
func registerStoredLevels(store *storage.Store) {
	if store == nil {
		return
	}
	entries, err := store.Levels()
	if err != nil {
		logger.Warn("loading saved levels", "err", err)
		return
	}
	for _, e := range entries {
		id := ascent.Set(e.Level, ascent.SourceDatabase)
		logger.Debug("registered saved level", "id", id)
	}
}

// openStore opens the database, warning and continuing without it on
// failure. Saved levels are registered on success.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		logger.Warn("could not open database", "path", flagDBPath, "err", err)
		return nil
	}
	registerStoredLevels(store)
	return store
}

// env returns the registry environment for creating levels.
func env(edit bool) registry.Env {
	return registry.Env{Config: ascentCfg, Logger: logger, Edit: edit}
}

// runtimeConfig sizes the runtime from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	return cfg
}

// resolveLevel maps a level id, name or file path to a registered id.
// The returned path is set when the level is backed by a file.
func resolveLevel(arg string) (id, path string, err error) {
	if info, statErr := os.Stat(arg); statErr == nil && !info.IsDir() {
		l, loadErr := level.LoadFile(arg)
		if loadErr != nil {
			return "", "", loadErr
		}
		return ascent.Set(l, arg), arg, nil
	}

	id = arg
	if !registry.Exists(id) {
		id = level.Slug(arg)
	}
	info, ok := registry.Info(id)
	if !ok {
		return "", "", fmt.Errorf("unknown level %q (run 'ascent list' to see available levels)", arg)
	}
	if info.Source != ascent.SourceBuiltin && info.Source != ascent.SourceDatabase {
		path = info.Source
	}
	return id, path, nil
}

// levelTemplate returns the definition of a registered level.
func levelTemplate(id string) (level.Level, error) {
	game, err := registry.Create(id, env(false))
	if err != nil {
		return level.Level{}, err
	}
	ed, ok := game.(registry.Editable)
	if !ok {
		return level.Level{}, fmt.Errorf("level %q has no definition", id)
	}
	return ed.Design(), nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
