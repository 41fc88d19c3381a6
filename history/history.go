// Package history records launched actions in a SQLite database so
// handler scripts can rank frequent choices.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const createLaunchesTable = `
CREATE TABLE IF NOT EXISTS launches (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    action TEXT NOT NULL,
    launched_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_launches_action ON launches(action);
`

const insertLaunch = `
INSERT INTO launches (action, launched_at) VALUES (?, ?)
`

const selectFrequent = `
SELECT action, COUNT(*) AS n
FROM launches
GROUP BY action
ORDER BY n DESC, MAX(launched_at) DESC
LIMIT ?
`

const selectRecent = `
SELECT action FROM launches ORDER BY id DESC LIMIT ?
`

// Store wraps the SQLite launch history.
type Store struct {
	conn *sql.DB
}

// New opens (creating if needed) the history database at dbPath and
// initializes the schema.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if _, err := conn.Exec(createLaunchesTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating launches schema: %w", err)
	}

	return &Store{conn: conn}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Record stores one launched action with the current timestamp.
func (s *Store) Record(action string) error {
	_, err := s.conn.Exec(insertLaunch, action, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording launch: %w", err)
	}
	return nil
}

// LaunchCount is one action with the number of times it was launched.
type LaunchCount struct {
	Action string
	Count  int
}

// Frequent returns the n most launched actions, most frequent first.
// Ties break toward the most recently launched.
func (s *Store) Frequent(n int) ([]LaunchCount, error) {
	rows, err := s.conn.Query(selectFrequent, n)
	if err != nil {
		return nil, fmt.Errorf("querying frequent launches: %w", err)
	}
	defer rows.Close()

	var counts []LaunchCount
	for rows.Next() {
		var lc LaunchCount
		if err := rows.Scan(&lc.Action, &lc.Count); err != nil {
			return nil, fmt.Errorf("scanning launch row: %w", err)
		}
		counts = append(counts, lc)
	}
	return counts, rows.Err()
}

// Recent returns the last n launched actions, newest first.
func (s *Store) Recent(n int) ([]string, error) {
	rows, err := s.conn.Query(selectRecent, n)
	if err != nil {
		return nil, fmt.Errorf("querying recent launches: %w", err)
	}
	defer rows.Close()

	var actions []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scanning launch row: %w", err)
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}
