package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
)

// Config declares the store's shape at open time.
type Config struct {
	// Version is the schema version. Declared collections are created
	// whenever Version exceeds the database's stored user_version.
	Version int

	// Tables lists the logical collections to create on upgrade.
	Tables []string
}

// Store is a set of named record collections on one SQLite database.
type Store struct {
	db *sql.DB

	stats Stats
}

// Stats counts durable requests since Open. Used by tests to assert
// request-level properties (e.g. a table drop is one clear, not N
// deletes) and surfaced by the CLI in verbose mode.
type Stats struct {
	BulkReads atomic.Int64
	Puts      atomic.Int64
	Deletes   atomic.Int64
	Clears    atomic.Int64
}

// Open creates or opens the SQLite database at path, applies pragmas,
// and creates any declared collections the stored version predates.
//
// Idempotent: reopening with the same config is a no-op beyond the
// connection itself.
func Open(path string, cfg Config) (*Store, error) {
	if cfg.Version < 1 {
		return nil, fmt.Errorf("store version must be >= 1, got %d", cfg.Version)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY between the engine's interleaved operations.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := applySchema(db, cfg); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Stats returns the request counters.
func (s *Store) Stats() *Stats {
	return &s.stats
}

// Collections returns the names of the collections present in the
// database, in lexical order.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name LIKE 'tbl\_%' ESCAPE '\'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan collection name: %w", err)
		}
		names = append(names, strings.TrimPrefix(name, "tbl_"))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collections: %w", err)
	}
	return names, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates declared collections when the configured version
// exceeds the stored user_version, then stamps the new version.
func applySchema(db *sql.DB, cfg Config) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version >= cfg.Version {
		return nil
	}

	for _, table := range cfg.Tables {
		ident, err := collectionIdent(table)
		if err != nil {
			return err
		}
		ddl := fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id   TEXT PRIMARY KEY,
				data TEXT NOT NULL
			)
		`, ident)
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("create collection %q: %w", table, err)
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", cfg.Version)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// collectionIdent maps a logical collection name onto a quoted SQLite
// identifier. Names must not be empty; embedded quotes are escaped so
// an arbitrary logical name cannot break out of the identifier.
func collectionIdent(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty collection name")
	}
	if strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("invalid collection name %q", name)
	}
	return `"tbl_` + strings.ReplaceAll(name, `"`, `""`) + `"`, nil
}
