package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const createPreferencesTable = `CREATE TABLE IF NOT EXISTS timer_preferences (
	user_key   TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteBackend stores payloads in a single SQLite table.
type SQLiteBackend struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(createPreferencesTable); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create preferences table: %w", err)
	}
	return &SQLiteBackend{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the underlying database.
func (backend *SQLiteBackend) Close() error {
	if backend == nil || backend.sqlDB == nil {
		return nil
	}
	return backend.sqlDB.Close()
}

func (backend *SQLiteBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := backend.sqlDB.QueryRowContext(ctx,
		`SELECT payload FROM timer_preferences WHERE user_key = ?`, key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select preferences: %w", err)
	}
	return payload, true, nil
}

func (backend *SQLiteBackend) Put(ctx context.Context, key string, payload []byte) error {
	_, err := backend.sqlDB.ExecContext(ctx,
		`INSERT INTO timer_preferences (user_key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, payload, backend.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	return nil
}

func (backend *SQLiteBackend) Delete(ctx context.Context, key string) error {
	if _, err := backend.sqlDB.ExecContext(ctx, `DELETE FROM timer_preferences WHERE user_key = ?`, key); err != nil {
		return fmt.Errorf("delete preferences: %w", err)
	}
	return nil
}
