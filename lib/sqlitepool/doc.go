// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool opens the small SQLite connection pool behind the
// kiosk's SQLite config store.
//
// It wraps zombiezen.com/go/sqlite's sqlitex.Pool and applies the same
// pragmas to every connection:
//
//   - journal_mode=WAL so the config editor's write never blocks the
//     session's reads.
//   - synchronous=FULL: the store holds a handful of keys written
//     rarely, and a power cut on a kiosk must not lose a saved
//     endpoint.
//   - busy_timeout=5000.
//
// Callers Take a connection, use it, and Put it back. Connections are
// not safe for concurrent use.
package sqlitepool
