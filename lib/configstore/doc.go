// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

// Package configstore implements config.Store backends.
//
//   - [FileStore] keeps the keys in a YAML mapping on disk. Writes go
//     to a temporary file in the same directory and are renamed into
//     place, so a crash mid-write leaves the previous file intact. The
//     file is created with mode 0600 because it holds the shared
//     secret.
//   - [SQLiteStore] keeps the keys in a one-table SQLite database
//     opened through lib/sqlitepool.
//   - [MemoryStore] is an in-process map for tests and dry runs.
//
// [Open] picks a backend from config.Settings.
package configstore
