// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package configstore

import (
	"context"
	"fmt"
	"log/slog"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/ostara/kiosk/lib/sqlitepool"
)

const schema = `
CREATE TABLE IF NOT EXISTS kiosk_config (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
) WITHOUT ROWID;
`

// SQLiteStore is a config.Store backed by a SQLite database.
type SQLiteStore struct {
	pool *sqlitepool.Pool
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteStore, error) {
	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:   path,
		Logger: logger,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, schema, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("configstore: %w", err)
	}
	return &SQLiteStore{pool: pool}, nil
}

// Get returns the value for key.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return "", false, err
	}
	defer s.pool.Put(conn)

	var value string
	found := false
	err = sqlitex.Execute(conn, "SELECT value FROM kiosk_config WHERE key = ?", &sqlitex.ExecOptions{
		Args: []any{key},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			value = stmt.ColumnText(0)
			found = true
			return nil
		},
	})
	if err != nil {
		return "", false, fmt.Errorf("configstore: reading %s: %w", key, err)
	}
	return value, found, nil
}

// Set stores value under key.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn,
		"INSERT INTO kiosk_config (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		&sqlitex.ExecOptions{Args: []any{key, value}},
	)
	if err != nil {
		return fmt.Errorf("configstore: writing %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying pool.
func (s *SQLiteStore) Close() error {
	return s.pool.Close()
}
