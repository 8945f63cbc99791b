// Package sqlite provides the SQLite-backed harvest manifest.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// memoryPath opens a private in-memory database.
const memoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS pages (
	id TEXT PRIMARY KEY,
	seed TEXT NOT NULL,
	url TEXT NOT NULL,
	path TEXT NOT NULL,
	format TEXT NOT NULL DEFAULT 'md',
	title TEXT NOT NULL DEFAULT '',
	content_hash TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	scraped_at TEXT NOT NULL,
	UNIQUE (seed, url)
);
CREATE INDEX IF NOT EXISTS idx_pages_seed_path ON pages(seed, path);
`

// DB is the manifest database file.
type DB struct {
	conn *sql.DB
	path string
}

// NewDB returns a DB for path. Use ":memory:" for a throwaway database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects and applies the schema. Harvest workers share the single
// connection, so manifest writes are serialized.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("open manifest %s: %w", db.path, err)
	}
	conn.SetMaxOpenConns(1)

	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if db.path != memoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, stmt := range append(pragmas, schema) {
		if _, err := conn.Exec(stmt); err != nil {
			conn.Close()
			return fmt.Errorf("prepare manifest %s: %w", db.path, err)
		}
	}

	db.conn = conn
	return nil
}

// Close closes the connection, if open.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}
