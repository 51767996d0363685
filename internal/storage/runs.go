package storage

import (
	"fmt"
	"time"
)

// Run is a completed attempt at a level.
type Run struct {
	ID        int64
	LevelID   string
	Ticks     int
	Deaths    int
	ElapsedMs float64
	CreatedAt time.Time
}

// SaveRun records a completed run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(levelID string, ticks, deaths int, elapsedMs float64) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (level_id, ticks, deaths, elapsed_ms) VALUES (?, ?, ?, ?)",
		levelID, ticks, deaths, elapsedMs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestRuns retrieves the fastest N runs for the given level.
// Ties on time go to the run with fewer deaths, then the earlier run.
func (s *Store) BestRuns(levelID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, ticks, deaths, elapsed_ms, created_at
		 FROM runs
		 WHERE level_id = ?
		 ORDER BY elapsed_ms ASC, deaths ASC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LevelID, &r.Ticks, &r.Deaths, &r.ElapsedMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestTime returns the fastest completion time for the given level.
// Returns false if the level was never completed.
func (s *Store) BestTime(levelID string) (float64, bool, error) {
	runs, err := s.BestRuns(levelID, 1)
	if err != nil {
		return 0, false, err
	}
	if len(runs) == 0 {
		return 0, false, nil
	}
	return runs[0].ElapsedMs, true, nil
}

// ClearRuns deletes all runs for the given level.
func (s *Store) ClearRuns(levelID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID     string
	Completions int
	BestMs      float64
	AvgDeaths   float64
	TotalDeaths int64
	LastPlayed  time.Time
}

// GetLevelStats retrieves aggregated statistics for a specific level.
func (s *Store) GetLevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(elapsed_ms), 0), COALESCE(AVG(deaths), 0),
		        COALESCE(SUM(deaths), 0), MAX(created_at)
		 FROM runs WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Completions, &stats.BestMs, &stats.AvgDeaths, &stats.TotalDeaths, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllLevelStats retrieves statistics for all levels that have been completed.
func (s *Store) GetAllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), MIN(elapsed_ms), AVG(deaths), SUM(deaths), MAX(created_at)
		 FROM runs
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &st.Completions, &st.BestMs, &st.AvgDeaths, &st.TotalDeaths, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.LevelID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
