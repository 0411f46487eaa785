package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	// PostgreSQL driver for shared deployments.
	_ "github.com/lib/pq"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const kvTable = "kv_entries"

// Store is a KV backed by a single SQL table.
type Store struct {
	db      *sqlx.DB
	dialect string
}

var _ KV = (*Store)(nil)

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the table if needed.
func Open(dsn string) (*Store, error) {
	return OpenDriver("sqlite", dsn)
}

// OpenDriver creates a Store for driver "sqlite" or "postgres".
func OpenDriver(driver, dsn string) (*Store, error) {
	var d string
	switch driver {
	case "sqlite", "sqlite3":
		driver, d = "sqlite", dialect.SQLite
	case "postgres", "postgresql":
		driver, d = "postgres", dialect.Postgres
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if d == dialect.SQLite {
		// SQLite doesn't support multiple writers.
		db.SetMaxOpenConns(1)
		if err := applyPragmas(db.DB); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	s := &Store{db: db, dialect: d}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return s, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db.DB
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	valueType := "BLOB"
	if s.dialect == dialect.Postgres {
		valueType = "BYTEA"
	}
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		entry_key VARCHAR(255) PRIMARY KEY,
		entry_value %s NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`, kvTable, valueType))
	if err != nil {
		return fmt.Errorf("create %s: %w", kvTable, err)
	}
	return nil
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args := entsql.Dialect(s.dialect).
		Select("entry_value").
		From(entsql.Table(kvTable)).
		Where(entsql.EQ("entry_key", key)).
		Query()

	var value []byte
	if err := s.db.GetContext(ctx, &value, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	query, args := entsql.Dialect(s.dialect).
		Insert(kvTable).
		Columns("entry_key", "entry_value", "updated_at").
		Values(key, value, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("entry_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. RAINBOW_DB environment variable
// 2. $XDG_DATA_HOME/rainbow/rainbow.db
// 3. ~/.local/share/rainbow/rainbow.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("RAINBOW_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "rainbow", "rainbow.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
