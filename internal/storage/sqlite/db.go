// ABOUTME: SQLite handle for the haiku journal on the pure-Go modernc driver
// ABOUTME: Resolves XDG paths and applies the schema, tracked by PRAGMA user_version
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite"
)

// AppName names the data directory under the XDG data home.
const AppName = "markov-haiku"

const memoryPath = ":memory:"

// DB is an open journal database. Queries go through the embedded *sql.DB.
type DB struct {
	*sql.DB
	path string
}

// DefaultDataDir is AppName under the XDG data home. XDG_DATA_HOME is
// read at call time so tests can redirect it.
func DefaultDataDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		base = xdg.DataHome
	}
	return filepath.Join(base, AppName)
}

// DefaultDBPath returns the journal file inside DefaultDataDir
func DefaultDBPath() string {
	return DBPath(DefaultDataDir())
}

// DBPath returns the journal file inside dataDir
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, "journal.db")
}

// Open opens the journal file at path, creating it and its directory
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}
	return open(path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path, 0)
}

// OpenInMemory opens a throwaway journal, mostly for tests
func OpenInMemory() (*DB, error) {
	// every pooled connection to :memory: would be a separate database
	return open(memoryPath, memoryPath, 1)
}

func open(dsn, path string, maxConns int) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	if maxConns > 0 {
		conn.SetMaxOpenConns(maxConns)
	}

	if err := migrate(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("preparing journal %s: %w", path, err)
	}
	return &DB{DB: conn, path: path}, nil
}

// migrate applies Schema and stamps SchemaVersion. A journal written by a
// newer release is refused rather than silently downgraded.
func migrate(conn *sql.DB) error {
	var version int
	if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	if version > SchemaVersion {
		return fmt.Errorf("schema version %d is newer than supported %d", version, SchemaVersion)
	}

	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	_, err := conn.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion))
	return err
}

// Path returns the journal file path, or ":memory:"
func (db *DB) Path() string {
	return db.path
}
