package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	domainErrors "github.com/thomas-vilte/branchmate/internal/errors"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store keeps global preferences and per-ticket attributes in SQLite.
type Store struct {
	conn *sql.DB
}

// Open creates the database file if needed and applies pending migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, domainErrors.ErrOpenStore.WithError(err).WithContext("path", path)
		}
		dsn = path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, domainErrors.ErrOpenStore.WithError(err).WithContext("path", path)
	}

	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, domainErrors.ErrOpenStore.WithError(err).WithContext("path", path)
	}

	s := &Store{conn: conn}
	if err := s.migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	fsys, err := fs.Sub(migrationFS, "migrations")
	if err != nil {
		return domainErrors.ErrMigrateStore.WithError(err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, s.conn, fsys)
	if err != nil {
		return domainErrors.ErrMigrateStore.WithError(err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return domainErrors.ErrMigrateStore.WithError(err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) GetPreference(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.conn.QueryRowContext(ctx, "SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, domainErrors.ErrReadPreference.WithError(err).WithContext("key", key)
	}
	return value, true, nil
}

func (s *Store) SetPreference(ctx context.Context, key, value string) error {
	_, err := s.conn.ExecContext(ctx, `INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = datetime('now')`, key, value)
	if err != nil {
		return domainErrors.ErrWritePreference.WithError(err).WithContext("key", key)
	}
	return nil
}

func (s *Store) GetAttribute(ctx context.Context, ticketKey, name string) (string, bool, error) {
	var value string
	err := s.conn.QueryRowContext(ctx,
		"SELECT value FROM ticket_attributes WHERE ticket_key = ? AND name = ?", ticketKey, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, domainErrors.ErrReadPreference.WithError(err).
			WithContext("ticket", ticketKey).WithContext("attribute", name)
	}
	return value, true, nil
}

func (s *Store) SetAttribute(ctx context.Context, ticketKey, name, value string) error {
	_, err := s.conn.ExecContext(ctx, `INSERT INTO ticket_attributes (ticket_key, name, value) VALUES (?, ?, ?)
		ON CONFLICT(ticket_key, name) DO UPDATE SET value = excluded.value, updated_at = datetime('now')`,
		ticketKey, name, value)
	if err != nil {
		return domainErrors.ErrWritePreference.WithError(err).
			WithContext("ticket", ticketKey).WithContext("attribute", name)
	}
	return nil
}
