package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // CGO-free SQLite driver
)

// DB is the concrete storage backed by SQLite. It holds API accounts,
// sessions and the audit trail; analysis results are never stored.
type DB struct {
	conn *sql.DB
}

// OpenSQLite opens (and creates if missing) a SQLite DB at path.
func OpenSQLite(path string) (*DB, error) {
	// Pragmas via DSN keep it portable with the modernc driver.
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)"
	c, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := c.Ping(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return &DB{conn: c}, nil
}

func (db *DB) Close() error { return db.conn.Close() }

// CreateSchema ensures tables exist.
func (db *DB) CreateSchema() error {
	_, err := db.conn.Exec(`
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT UNIQUE NOT NULL,
  pass_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'viewer',
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
  token TEXT PRIMARY KEY,
  user_id INTEGER NOT NULL,
  expires_at TEXT NOT NULL,
  created_at TEXT NOT NULL,
  FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);

-- audit rows carry who/what/when only; document text and findings stay out
CREATE TABLE IF NOT EXISTS audit (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ts TEXT NOT NULL,
  username TEXT,
  action TEXT NOT NULL,
  resource TEXT,
  meta_json TEXT
);

CREATE INDEX IF NOT EXISTS idx_sessions_expires ON sessions(expires_at);
CREATE INDEX IF NOT EXISTS idx_audit_ts ON audit(ts);
`)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
