package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id         TEXT PRIMARY KEY,
	user       TEXT NOT NULL,
	message    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_user ON messages(user);
`

// SQLiteMessages is a Messages implementation backed by a SQLite database
// file. SQLite allows only one writer at a time, so the connection pool is
// capped at a single connection; concurrent SaveMessage calls queue on it
// instead of failing with SQLITE_BUSY.
type SQLiteMessages struct {
	db *sql.DB
}

// NewSQLiteMessages opens (creating if needed) the database at path.
// Parent directories are created so the default data/users.db location
// works from a fresh checkout.
func NewSQLiteMessages(path string) (*SQLiteMessages, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteMessages{db: db}, nil
}

// SaveMessage appends one record. Each call inserts a fresh row keyed by a
// new uuid, so repeated identical messages produce separate records.
func (s *SQLiteMessages) SaveMessage(ctx context.Context, user, message string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, user, message, created_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), user, message, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// CountByUser returns the number of records stored for a user.
func (s *SQLiteMessages) CountByUser(ctx context.Context, user string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE user = ?`, user,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return count, nil
}

// Close closes the underlying database.
func (s *SQLiteMessages) Close() error {
	return s.db.Close()
}
