// Package storage provides SQLite-based archiving of ended sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/houseguard/internal/sim"
)

// Store manages the SQLite database connection for the results archive.
type Store struct {
	db *sql.DB
}

// ResultEntry is one archived session.
type ResultEntry struct {
	ID           int64
	Cause        sim.Cause
	AliveCount   int
	TotalTargets int
	Elapsed      time.Duration
	LetterSent   bool
	VoteStopUsed bool
	CreatedAt    time.Time

	// Agents is only filled by ResultByID.
	Agents []AgentEntry
}

// Passed reports whether the session ended by the countdown.
func (e ResultEntry) Passed() bool {
	return e.Cause == sim.CauseTimeUp
}

// AgentEntry is a destructor's final state within an archived session.
type AgentEntry struct {
	Name    string
	Variant string
	Mode    string
	Stopped bool
	X, Y    float64
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

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

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS session_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			cause TEXT NOT NULL,
			alive_count INTEGER NOT NULL,
			total_targets INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			letter_sent INTEGER NOT NULL DEFAULT 0,
			vote_stop_used INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_session_results_created ON session_results(created_at DESC);

		CREATE TABLE IF NOT EXISTS session_agents (
			result_id INTEGER NOT NULL REFERENCES session_results(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			variant TEXT NOT NULL,
			mode TEXT NOT NULL,
			stopped INTEGER NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			PRIMARY KEY (result_id, position)
		);
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

// SaveResult archives an ended session with the final state of every agent.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(sum sim.Summary) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	res, err := tx.Exec(
		`INSERT INTO session_results
		 (cause, alive_count, total_targets, elapsed_ms, letter_sent, vote_stop_used)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sum.Cause.String(),
		sum.AliveCount,
		sum.TotalTargets,
		sum.Elapsed.Milliseconds(),
		sum.LetterSent,
		sum.VoteStopUsed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for i, a := range sum.Agents {
		_, err := tx.Exec(
			`INSERT INTO session_agents (result_id, position, name, variant, mode, stopped, x, y)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, a.Name, a.Variant.String(), a.Mode.String(), a.Stopped, a.Pos.X, a.Pos.Y,
		)
		if err != nil {
			return 0, fmt.Errorf("storage: cannot save agent %s: %w", a.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit result: %w", err)
	}
	return id, nil
}

// RecentResults retrieves the most recent sessions, newest first.
func (s *Store) RecentResults(limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, cause, alive_count, total_targets, elapsed_ms, letter_sent, vote_stop_used, created_at
		 FROM session_results
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		e, err := scanResult(rows)
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

// ResultByID retrieves one session including its agents.
// Returns nil if no such session exists.
func (s *Store) ResultByID(id int64) (*ResultEntry, error) {
	row := s.db.QueryRow(
		`SELECT id, cause, alive_count, total_targets, elapsed_ms, letter_sent, vote_stop_used, created_at
		 FROM session_results
		 WHERE id = ?`,
		id,
	)
	e, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT name, variant, mode, stopped, x, y
		 FROM session_agents
		 WHERE result_id = ?
		 ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query agents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a AgentEntry
		if err := rows.Scan(&a.Name, &a.Variant, &a.Mode, &a.Stopped, &a.X, &a.Y); err != nil {
			return nil, fmt.Errorf("storage: cannot scan agent row: %w", err)
		}
		e.Agents = append(e.Agents, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return &e, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(sc scanner) (ResultEntry, error) {
	var (
		e         ResultEntry
		cause     string
		elapsedMs int64
		createdAt any
	)
	err := sc.Scan(&e.ID, &cause, &e.AliveCount, &e.TotalTargets, &elapsedMs, &e.LetterSent, &e.VoteStopUsed, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return e, err
	}
	if err != nil {
		return e, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	e.Cause, _ = sim.ParseCause(cause)
	e.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Stats contains aggregated statistics over every archived session.
type Stats struct {
	Sessions   int
	Passed     int
	AvgAlive   float64
	LastPlayed time.Time
}

// Failed returns the number of sessions that lost every house.
func (st Stats) Failed() int {
	return st.Sessions - st.Passed
}

// Stats retrieves aggregated statistics for the archive.
func (s *Store) Stats() (*Stats, error) {
	st := &Stats{}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN cause = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(alive_count), 0),
		        MAX(created_at)
		 FROM session_results`,
		sim.CauseTimeUp.String(),
	).Scan(&st.Sessions, &st.Passed, &st.AvgAlive, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	st.LastPlayed = parseTime(lastPlayed)
	return st, nil
}

// ClearResults deletes the whole archive.
func (s *Store) ClearResults() error {
	if _, err := s.db.Exec("DELETE FROM session_agents"); err != nil {
		return fmt.Errorf("storage: cannot clear agents: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM session_results"); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}
