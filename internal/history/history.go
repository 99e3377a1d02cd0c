// Package history persists a cross-session log of visited directories and
// executed actions to a small SQLite database, so the History menu survives
// a restart instead of resetting to the current session's in-memory stack.
package history

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS visits (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	path TEXT NOT NULL,
	visited_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS actions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	label TEXT NOT NULL,
	logged_at INTEGER NOT NULL
);
`

// Store is a handle to the history database.
type Store struct {
	db *sql.DB
}

// Open creates (if needed) and opens the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// RecordVisit appends a directory visit, deduplicating an immediate repeat
// of the most recent entry.
func (s *Store) RecordVisit(path string) error {
	var last string
	_ = s.db.QueryRow(`SELECT path FROM visits ORDER BY id DESC LIMIT 1`).Scan(&last)
	if last == path {
		return nil
	}
	_, err := s.db.Exec(`INSERT INTO visits(path, visited_at) VALUES (?, ?)`, path, time.Now().Unix())
	return err
}

// RecordAction appends a one-line description of a completed action (a
// rename, a bulk delete, a compress job) to the action log.
func (s *Store) RecordAction(label string) error {
	_, err := s.db.Exec(`INSERT INTO actions(label, logged_at) VALUES (?, ?)`, label, time.Now().Unix())
	return err
}

// Entry is one row of history shown in the History menu.
type Entry struct {
	Path      string
	VisitedAt time.Time
}

// RecentVisits returns up to limit most-recently-visited directories,
// newest first, deduplicated by path.
func (s *Store) RecentVisits(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT path, MAX(visited_at) FROM visits GROUP BY path ORDER BY MAX(visited_at) DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&e.Path, &ts); err != nil {
			return nil, err
		}
		e.VisitedAt = time.Unix(ts, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}

// RecentActions returns up to limit most-recently-logged action labels,
// newest first, for the action-log tail shown in the help/status line.
func (s *Store) RecentActions(limit int) ([]string, error) {
	rows, err := s.db.Query(`SELECT label FROM actions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		out = append(out, label)
	}
	return out, rows.Err()
}
