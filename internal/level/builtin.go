package level

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-ascent/internal/core"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

var (
	builtinOnce   sync.Once
	builtinLevels []Level
	builtinErr    error
)

// Builtins returns the levels shipped with the binary, sorted by name.
// Each call returns fresh clones.
func Builtins() ([]Level, error) {
	builtinOnce.Do(func() {
		builtinLevels, builtinErr = loadBuiltins()
	})
	if builtinErr != nil {
		return nil, builtinErr
	}
	out := make([]Level, len(builtinLevels))
	for i, l := range builtinLevels {
		out[i] = l.Clone()
	}
	return out, nil
}

// Builtin returns the built-in level matching query by name or slug.
func Builtin(query string) (Level, error) {
	levels, err := Builtins()
	if err != nil {
		return Level{}, err
	}
	for _, l := range levels {
		if l.Matches(query) {
			return l, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, query)
}

func loadBuiltins() ([]Level, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, fmt.Errorf("level: reading built-in levels: %w", err)
	}
	var levels []Level
	for _, e := range entries {
		name := path.Join("builtin", e.Name())
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("level: reading %s: %w", name, err)
		}
		l, err := Decode(data, path.Ext(name))
		if err != nil {
			return nil, fmt.Errorf("level: parsing %s: %w", name, err)
		}
		levels = append(levels, l)
	}
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].Name < levels[j].Name
	})
	return levels, nil
}

// Blank returns a new editable level holding only the floor.
func Blank(name string, gameWidth, levelHeight float64) Level {
	return Level{
		Name: name,
		Platforms: []Platform{{
			ID:  0,
			Box: core.NewBox(0, levelHeight-20, gameWidth, 20),
		}},
	}
}
