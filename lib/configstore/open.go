// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package configstore

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ostara/kiosk/lib/config"
)

// Store is a config.Store that may hold resources.
type Store interface {
	config.Store
	Close() error
}

// Open returns the store selected by settings. The caller must Close
// it.
func Open(settings config.Settings, logger *slog.Logger) (Store, error) {
	path, err := settings.ResolvedStorePath()
	if err != nil {
		return nil, err
	}

	switch settings.StoreBackend {
	case config.BackendYAML:
		return nopCloser{NewFileStore(path)}, nil
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("configstore: creating %s: %w", filepath.Dir(path), err)
		}
		return OpenSQLite(path, logger)
	default:
		return nil, fmt.Errorf("configstore: unknown backend %q", settings.StoreBackend)
	}
}

type nopCloser struct {
	*FileStore
}

func (nopCloser) Close() error { return nil }
