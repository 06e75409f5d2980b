// Package storage provides SQLite-based persistence for solver run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// timeLayout is how created_at is stored.
const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Run represents a single solver run.
type Run struct {
	ID        uuid.UUID
	MapID     string
	Strategy  string
	Width     int
	Height    int
	Reachable int
	Loops     int
	Workers   int
	Duration  time.Duration
	CreatedAt time.Time
}

// MapStats contains aggregated run statistics for one map.
type MapStats struct {
	MapID    string
	Runs     int
	Fastest  time.Duration
	Average  time.Duration
	LastRun  time.Time
	LastLoop int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			map_id TEXT NOT NULL,
			strategy TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			reachable INTEGER NOT NULL,
			loops INTEGER NOT NULL,
			workers INTEGER NOT NULL DEFAULT 1,
			duration_us INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_map_id ON runs(map_id);
		CREATE INDEX IF NOT EXISTS idx_runs_recent ON runs(map_id, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run. A zero ID is replaced with a new random UUID and a
// zero CreatedAt with the current time. Returns the stored run.
func (s *Store) SaveRun(r Run) (Run, error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	r.CreatedAt = r.CreatedAt.UTC().Truncate(time.Second)

	_, err := s.db.Exec(
		`INSERT INTO runs (id, map_id, strategy, width, height, reachable, loops, workers, duration_us, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.MapID, r.Strategy, r.Width, r.Height, r.Reachable, r.Loops, r.Workers,
		r.Duration.Microseconds(), r.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot save run: %w", err)
	}

	return r, nil
}

const runColumns = `id, map_id, strategy, width, height, reachable, loops, workers, duration_us, created_at`

// RecentRuns retrieves the latest runs for the given map, newest first.
func (s *Store) RecentRuns(mapID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE map_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		mapID, limit,
	)
}

// AllRuns retrieves the latest runs across all maps, newest first.
func (s *Store) AllRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
}

// FastestRun returns the run with the shortest duration for the map.
// Returns nil if the map has no runs.
func (s *Store) FastestRun(mapID string) (*Run, error) {
	runs, err := s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE map_id = ?
		 ORDER BY duration_us ASC, rowid ASC
		 LIMIT 1`,
		mapID,
	)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// DeleteRuns deletes all runs for the given map and returns how many were removed.
func (s *Store) DeleteRuns(mapID string) (int64, error) {
	result, err := s.db.Exec("DELETE FROM runs WHERE map_id = ?", mapID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot delete runs: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count deleted runs: %w", err)
	}
	return n, nil
}

// Stats retrieves aggregated statistics for a map.
func (s *Store) Stats(mapID string) (*MapStats, error) {
	stats := &MapStats{MapID: mapID}

	var fastest, average float64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(duration_us), 0), COALESCE(AVG(duration_us), 0)
		 FROM runs WHERE map_id = ?`,
		mapID,
	).Scan(&stats.Runs, &fastest, &average)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get map stats: %w", err)
	}
	stats.Fastest = time.Duration(fastest) * time.Microsecond
	stats.Average = time.Duration(average) * time.Microsecond

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at, loops FROM runs WHERE map_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		mapID,
	).Scan(&lastRun, &stats.LastLoop)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTime(lastRun)
	}

	return stats, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			id         string
			durationUS int64
			createdAt  any
		)
		if err := rows.Scan(&id, &r.MapID, &r.Strategy, &r.Width, &r.Height,
			&r.Reachable, &r.Loops, &r.Workers, &durationUS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		r.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("storage: bad run id %q: %w", id, err)
		}
		r.Duration = time.Duration(durationUS) * time.Microsecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTime handles both time.Time and string datetime values from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
