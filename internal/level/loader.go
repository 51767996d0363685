package level

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/tui-ascent/internal/level/formats"
)

// Loader handles loading levels from a directory.
type Loader struct {
	Root   string
	Logger *log.Logger // Optional; receives skipped-file warnings
}

// NewLoader creates a new level loader.
func NewLoader(root string, logger *log.Logger) *Loader {
	return &Loader{Root: root, Logger: logger}
}

// Entry is a level together with the file it was loaded from.
type Entry struct {
	Path  string
	Level Level
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by name.
// A missing root yields no levels.
func (l *Loader) LoadAll() ([]Level, error) {
	entries, err := l.Entries()
	if err != nil {
		return nil, err
	}
	levels := make([]Level, len(entries))
	for i, e := range entries {
		levels[i] = e.Level
	}
	return levels, nil
}

// Entries is LoadAll keeping the source path of every level.
func (l *Loader) Entries() ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !formats.IsSupported(filepath.Ext(path)) {
			return nil
		}

		lvl, err := l.LoadFile(path)
		if err != nil {
			if l.Logger != nil {
				l.Logger.Warn("skipping level file", "path", path, "err", err)
			}
			return nil
		}
		entries = append(entries, Entry{Path: path, Level: lvl})
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Level.Name < entries[j].Level.Name
	})
	return entries, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	return LoadFile(path)
}

// LoadByName loads the level whose name or slug matches query.
func (l *Loader) LoadByName(query string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.Matches(query) {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, query)
}

// LoadFile reads and validates the level file at path.
func LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	lvl, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	return lvl, nil
}

// WriteFile writes l to path in the format implied by its extension.
func WriteFile(path string, l Level) error {
	data, err := Encode(l, filepath.Ext(path))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

// FileName returns the default file name for a level saved as ext.
func FileName(l Level, ext string) string {
	slug := Slug(l.Name)
	if slug == "" {
		slug = "level"
	}
	return slug + strings.ToLower(ext)
}
