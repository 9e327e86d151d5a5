package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store persists all site records: admin accounts, pages, testimonials,
// FAQ items, disclaimers, and consultation leads. It is backed by SQLite
// by default and can run against Postgres with the same query set.
type Store struct {
	db *sqlx.DB
}

// Open connects to the database identified by driver and dsn and runs the
// schema migrations. Supported drivers are "sqlite" and "postgres".
// For sqlite, pass an empty dsn to get an in-memory database.
func Open(driver, dsn string) (*Store, error) {
	var db *sqlx.DB
	var err error

	switch driver {
	case "", "sqlite":
		if dsn == "" {
			dsn = ":memory:"
		} else {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
			// modernc pragma syntax; WAL lets admin writes and public
			// reads overlap, busy_timeout covers the rest.
			dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		}
		db, err = sqlx.Connect("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes
	case "postgres":
		db, err = sqlx.Connect("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres database: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// q rebinds a query written with ? placeholders to the dialect of the
// connected database (no-op on sqlite, $N on postgres).
func (s *Store) q(query string) string {
	return s.db.Rebind(query)
}
