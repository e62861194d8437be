// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package sqlitepool

import (
	"context"
	"fmt"
	"log/slog"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// defaultPoolSize covers the session's loader and the config editor
// holding connections at the same time.
const defaultPoolSize = 2

// Config holds the parameters for Open.
type Config struct {
	// Path is the database file. It is created if missing; the parent
	// directory must exist.
	Path string

	// PoolSize defaults to 2 when zero or negative.
	PoolSize int

	// Logger defaults to a discard logger.
	Logger *slog.Logger

	// OnConnect runs once per connection after the pragmas, typically
	// to create the schema.
	OnConnect func(conn *sqlite.Conn) error
}

// Pool is a fixed-size pool of prepared SQLite connections. Pool is
// safe for concurrent use; the connections it hands out are not.
type Pool struct {
	inner  *sqlitex.Pool
	logger *slog.Logger
	path   string
}

// Open creates the pool. Connections are opened lazily on first Take.
func Open(cfg Config) (*Pool, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlitepool: Path is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}

	inner, err := sqlitex.NewPool(cfg.Path, sqlitex.PoolOptions{
		PoolSize: poolSize,
		PrepareConn: func(conn *sqlite.Conn) error {
			return prepareConnection(conn, cfg.OnConnect)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sqlitepool: opening %s: %w", cfg.Path, err)
	}

	logger.Debug("sqlite pool opened", "path", cfg.Path, "pool_size", poolSize)
	return &Pool{inner: inner, logger: logger, path: cfg.Path}, nil
}

// Take borrows a connection, blocking until one is free or ctx ends.
// The caller must Put it back.
func (p *Pool) Take(ctx context.Context) (*sqlite.Conn, error) {
	conn, err := p.inner.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlitepool: take: %w", err)
	}
	return conn, nil
}

// Put returns a connection to the pool. Put(nil) is a no-op.
func (p *Pool) Put(conn *sqlite.Conn) {
	p.inner.Put(conn)
}

// Close closes every connection, waiting for borrowed ones to return.
func (p *Pool) Close() error {
	if err := p.inner.Close(); err != nil {
		p.logger.Error("sqlite pool close failed", "path", p.path, "error", err)
		return fmt.Errorf("sqlitepool: closing %s: %w", p.path, err)
	}
	p.logger.Debug("sqlite pool closed", "path", p.path)
	return nil
}

func prepareConnection(conn *sqlite.Conn, onConnect func(*sqlite.Conn) error) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=FULL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("sqlitepool: %s: %w", pragma, err)
		}
	}

	if onConnect != nil {
		if err := onConnect(conn); err != nil {
			return fmt.Errorf("sqlitepool: OnConnect: %w", err)
		}
	}
	return nil
}
