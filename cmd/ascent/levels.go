package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ascent/internal/level"
	"github.com/vovakirdan/tui-ascent/internal/storage"
)

var (
	flagExportOut    string
	flagExportFormat string
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Manage saved levels",
	Long: `Import, export, list and delete levels saved in the database.

Levels are stored by name; saving a level with an existing name replaces it.
Files use YAML or the original JSON shape {name, platforms, checkpoints,
traps, signs}, chosen by extension.

Examples:
  ascent levels list
  ascent levels import ./tower.json ./spire.yaml
  ascent levels export kirbys-ascent --out kirby.json
  ascent levels export tower --format yaml
  ascent levels delete tower`,
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List levels saved in the database",
	Args:  cobra.NoArgs,
	RunE:  runLevelsList,
}

var levelsImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Save level files to the database",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLevelsImport,
}

var levelsExportCmd = &cobra.Command{
	Use:   "export <level>",
	Short: "Write any level to a file or stdout",
	Args:  cobra.ExactArgs(1),
	RunE:  runLevelsExport,
}

var levelsDeleteCmd = &cobra.Command{
	Use:   "delete <level>",
	Short: "Delete a level from the database",
	Args:  cobra.ExactArgs(1),
	RunE:  runLevelsDelete,
}

func init() {
	levelsExportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output file (stdout when empty)")
	levelsExportCmd.Flags().StringVar(&flagExportFormat, "format", "", "Stdout format: yaml or json (--out uses its extension)")

	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsImportCmd)
	levelsCmd.AddCommand(levelsExportCmd)
	levelsCmd.AddCommand(levelsDeleteCmd)
}

func runLevelsList(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Levels()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No saved levels.")
		return nil
	}

	maxNameLen := 4
	for _, e := range entries {
		maxNameLen = max(maxNameLen, len(e.Level.Name))
	}
	fmt.Printf("  %-*s  %-9s  %-11s  %s\n", maxNameLen, "Name", "Platforms", "Checkpoints", "Updated")
	fmt.Printf("  %-*s  %-9s  %-11s  %s\n", maxNameLen, "----", "---------", "-----------", "-------")
	for _, e := range entries {
		fmt.Printf("  %-*s  %-9d  %-11d  %s\n", maxNameLen, e.Level.Name,
			len(e.Level.Platforms), len(e.Level.Checkpoints), e.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runLevelsImport(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, path := range args {
		l, err := level.LoadFile(path)
		if err != nil {
			return err
		}
		if err := store.SaveLevel(l); err != nil {
			return err
		}
		logger.Info("level imported", "name", l.Name, "path", path)
		fmt.Printf("Imported %q from %s\n", l.Name, path)
	}
	return nil
}

func runLevelsExport(_ *cobra.Command, args []string) error {
	if store := openStore(); store != nil {
		defer store.Close()
	}

	id, _, err := resolveLevel(args[0])
	if err != nil {
		return err
	}
	l, err := levelTemplate(id)
	if err != nil {
		return err
	}

	if flagExportOut == "" {
		ext := ".yaml"
		if flagExportFormat != "" {
			ext = "." + flagExportFormat
		}
		data, err := level.Encode(l, ext)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := level.WriteFile(flagExportOut, l); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Exported %q to %s\n", l.Name, flagExportOut)
	return nil
}

func runLevelsDelete(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteLevel(args[0]); err != nil {
		return err
	}
	logger.Info("level deleted", "query", args[0])
	fmt.Printf("Deleted %q\n", args[0])
	return nil
}
