// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package configstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// fileMode keeps the shared secret readable by the kiosk user only.
const fileMode = 0o600

// FileStore is a config.Store backed by a YAML file of string keys
// and string values. The file is re-read on every Get so that edits
// made by "ostara-kiosk config set" are seen by a running terminal.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a FileStore at path. The file need not exist;
// its parent directory is created on first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Get returns the value for key. A missing file reads as empty.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", false, err
	}
	value, found := values[key]
	return value, found, nil
}

// Set stores value under key, rewriting the whole file atomically.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("configstore: reading %s: %w", s.path, err)
	}

	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("configstore: parsing %s: %w", s.path, err)
	}
	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("configstore: encoding %s: %w", s.path, err)
	}

	directory := filepath.Dir(s.path)
	if err := os.MkdirAll(directory, 0o700); err != nil {
		return fmt.Errorf("configstore: creating %s: %w", directory, err)
	}

	temporary, err := os.CreateTemp(directory, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("configstore: creating temporary file: %w", err)
	}
	temporaryPath := temporary.Name()
	defer os.Remove(temporaryPath)

	if err := temporary.Chmod(fileMode); err != nil {
		temporary.Close()
		return fmt.Errorf("configstore: chmod %s: %w", temporaryPath, err)
	}
	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		return fmt.Errorf("configstore: writing %s: %w", temporaryPath, err)
	}
	if err := temporary.Sync(); err != nil {
		temporary.Close()
		return fmt.Errorf("configstore: syncing %s: %w", temporaryPath, err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("configstore: closing %s: %w", temporaryPath, err)
	}
	if err := os.Rename(temporaryPath, s.path); err != nil {
		return fmt.Errorf("configstore: replacing %s: %w", s.path, err)
	}
	return nil
}
