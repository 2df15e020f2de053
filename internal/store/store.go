package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

const (
	dateLayout = "2006-01-02"
	tsLayout   = time.RFC3339
)

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = errors.New("not found")

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SetClock replaces the time source used for default dates and timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Today returns the current local calendar date.
func (s *Store) Today() time.Time {
	return truncateDay(s.now())
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS tasks (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		task            TEXT NOT NULL,
		completed       BOOLEAN DEFAULT FALSE,
		date_added      DATE DEFAULT CURRENT_DATE,
		date_completed  DATE
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_date_added ON tasks(date_added);

	CREATE TABLE IF NOT EXISTS focus_sessions (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		duration   INTEGER NOT NULL,
		date       DATE DEFAULT CURRENT_DATE,
		timestamp  DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_focus_date ON focus_sessions(date);

	CREATE TABLE IF NOT EXISTS logs (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		entry      TEXT NOT NULL,
		date       DATE DEFAULT CURRENT_DATE,
		timestamp  DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_logs_date ON logs(date);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('focus_minutes', '25'),
		('history_days',  '7');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/reflex/reflex.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "reflex", "reflex.db"), nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// parseDate accepts both plain dates and the datetime form SQLite's driver
// may hand back for DATE columns.
func parseDate(s string) time.Time {
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	}
	if len(s) >= len(dateLayout) {
		t, _ := time.ParseInLocation(dateLayout, s[:len(dateLayout)], time.Local)
		return t
	}
	return time.Time{}
}

func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(tsLayout, s); err == nil {
		return t
	}
	t, _ := time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
	return t
}
