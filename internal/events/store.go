package events

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed LLM request ledger. It implements Repo.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

const schema = `CREATE TABLE IF NOT EXISTS llm_request_events (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at    TEXT    NOT NULL,
	request_id    TEXT    NOT NULL DEFAULT '',
	provider      TEXT    NOT NULL DEFAULT '',
	model         TEXT    NOT NULL DEFAULT '',
	purpose       TEXT    NOT NULL DEFAULT '',
	input_tokens  INTEGER NOT NULL DEFAULT 0,
	output_tokens INTEGER NOT NULL DEFAULT 0,
	latency_ms    INTEGER NOT NULL DEFAULT 0,
	success       INTEGER NOT NULL DEFAULT 0,
	error_message TEXT    NOT NULL DEFAULT '',
	request_body  TEXT    NOT NULL DEFAULT '',
	response_body TEXT    NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_llm_request_events_purpose ON llm_request_events (purpose);`

// Open connects to the SQLite database at dsn, applies pragmas and
// creates the ledger table if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One writer, one process.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the ledger location:
// $XDG_DATA_HOME/mcqgen/events.db, falling back to ~/.local/share.
func DefaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "mcqgen", "events.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
