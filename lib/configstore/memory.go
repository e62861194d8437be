// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package configstore

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore is a config.Store held in memory.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore returns a MemoryStore seeded with a copy of initial.
func NewMemoryStore(initial map[string]string) *MemoryStore {
	values := make(map[string]string, len(initial))
	maps.Copy(values, initial)
	return &MemoryStore{values: values}
}

// Get returns the value for key.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, found := s.values[key]
	return value, found, nil
}

// Set stores value under key.
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
