package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-ascent/internal/level"
)

// levelFormat is the codec used for the data column: the original JSON
// shape, so rows can be exported verbatim.
const levelFormat = ".json"

// LevelEntry is a saved level with its timestamps.
type LevelEntry struct {
	Level     level.Level
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaveLevel stores l under its name, overwriting any level with that name.
func (s *Store) SaveLevel(l level.Level) error {
	if err := l.Validate(); err != nil {
		return fmt.Errorf("storage: cannot save level: %w", err)
	}
	data, err := level.Encode(l, levelFormat)
	if err != nil {
		return fmt.Errorf("storage: cannot encode level: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO levels (name, slug, data) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   slug = excluded.slug,
		   data = excluded.data,
		   updated_at = CURRENT_TIMESTAMP`,
		l.Name, level.Slug(l.Name), string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save level: %w", err)
	}
	return nil
}

// Level returns the saved level whose name or slug matches query.
// The error wraps level.ErrNotFound when there is none.
func (s *Store) Level(query string) (LevelEntry, error) {
	row := s.db.QueryRow(
		`SELECT data, created_at, updated_at
		 FROM levels
		 WHERE name = ? OR slug = ?
		 ORDER BY name = ? DESC
		 LIMIT 1`,
		query, level.Slug(query), query,
	)
	e, err := scanLevel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return LevelEntry{}, fmt.Errorf("storage: %w: %s", level.ErrNotFound, query)
	}
	if err != nil {
		return LevelEntry{}, err
	}
	return e, nil
}

// Levels returns every saved level, sorted by name.
func (s *Store) Levels() ([]LevelEntry, error) {
	rows, err := s.db.Query(
		`SELECT data, created_at, updated_at
		 FROM levels
		 ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var entries []LevelEntry
	for rows.Next() {
		e, err := scanLevel(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteLevel removes a saved level by name or slug.
// The error wraps level.ErrNotFound when nothing was deleted.
func (s *Store) DeleteLevel(query string) error {
	res, err := s.db.Exec("DELETE FROM levels WHERE name = ? OR slug = ?", query, level.Slug(query))
	if err != nil {
		return fmt.Errorf("storage: cannot delete level: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("storage: %w: %s", level.ErrNotFound, query)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLevel(row scanner) (LevelEntry, error) {
	var (
		data                 string
		createdAt, updatedAt any
	)
	if err := row.Scan(&data, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LevelEntry{}, err
		}
		return LevelEntry{}, fmt.Errorf("storage: cannot scan level: %w", err)
	}
	l, err := level.Decode([]byte(data), levelFormat)
	if err != nil {
		return LevelEntry{}, fmt.Errorf("storage: cannot decode level: %w", err)
	}
	return LevelEntry{
		Level:     l,
		CreatedAt: parseTime(createdAt),
		UpdatedAt: parseTime(updatedAt),
	}, nil
}
