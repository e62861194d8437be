// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ostara/kiosk/lib/kioskerr"
)

// mapStore is a Store over a plain map.
type mapStore struct {
	values map[string]string
	err    error
}

func (s *mapStore) Get(_ context.Context, key string) (string, bool, error) {
	if s.err != nil {
		return "", false, s.err
	}
	value, found := s.values[key]
	return value, found, nil
}

func (s *mapStore) Set(_ context.Context, key, value string) error {
	if s.err != nil {
		return s.err
	}
	if s.values == nil {
		s.values = map[string]string{}
	}
	s.values[key] = value
	return nil
}

func completeStore() *mapStore {
	return &mapStore{values: map[string]string{
		KeyEndpointURL:  "https://ostara.example/api",
		KeyClientID:     "42",
		KeySharedSecret: "s3cret",
	}}
}

func TestLoad(t *testing.T) {
	cfg, err := Load(context.Background(), completeStore())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.EndpointURL != "https://ostara.example/api" {
		t.Errorf("EndpointURL = %q", cfg.EndpointURL)
	}
	if cfg.ClientID != 42 {
		t.Errorf("ClientID = %d, want 42", cfg.ClientID)
	}
	if string(cfg.SharedSecret) != "s3cret" {
		t.Errorf("SharedSecret = %q", cfg.SharedSecret)
	}
}

func TestLoadMissingKey(t *testing.T) {
	for _, key := range Keys {
		t.Run(key, func(t *testing.T) {
			store := completeStore()
			delete(store.values, key)

			_, err := Load(context.Background(), store)
			if !kioskerr.IsKind(err, kioskerr.KindConfig) {
				t.Fatalf("error = %v, want config error", err)
			}
			if !strings.Contains(err.Error(), key) {
				t.Errorf("error %q does not name %s", err, key)
			}
		})
	}
}

func TestLoadBlankValueIsMissing(t *testing.T) {
	store := completeStore()
	store.values[KeySharedSecret] = "   "
	_, err := Load(context.Background(), store)
	if !kioskerr.IsKind(err, kioskerr.KindConfig) {
		t.Fatalf("error = %v, want config error", err)
	}
}

func TestLoadKeepsSecretBytes(t *testing.T) {
	store := completeStore()
	store.values[KeyEndpointURL] = "  https://ostara.example/api\n"
	store.values[KeyClientID] = " 42 "
	store.values[KeySharedSecret] = " s3cret\n"
	cfg, err := Load(context.Background(), store)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(cfg.SharedSecret) != " s3cret\n" {
		t.Errorf("SharedSecret = %q, want %q", cfg.SharedSecret, " s3cret\n")
	}
	if cfg.EndpointURL != "https://ostara.example/api" {
		t.Errorf("EndpointURL = %q", cfg.EndpointURL)
	}
	if cfg.ClientID != 42 {
		t.Errorf("ClientID = %d, want 42", cfg.ClientID)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{KeyEndpointURL, "ftp://ostara.example"},
		{KeyEndpointURL, "ostara.example/api"},
		{KeyEndpointURL, "http://"},
		{KeyClientID, "forty-two"},
		{KeyClientID, "4.2"},
	}
	for _, test := range tests {
		store := completeStore()
		store.values[test.key] = test.value
		_, err := Load(context.Background(), store)
		if !kioskerr.IsKind(err, kioskerr.KindConfig) {
			t.Errorf("Load with %s=%q: error = %v, want config error", test.key, test.value, err)
		}
	}
}

func TestLoadStoreFailureIsNotConfigError(t *testing.T) {
	storeErr := errors.New("disk on fire")
	_, err := Load(context.Background(), &mapStore{err: storeErr})
	if !errors.Is(err, storeErr) {
		t.Fatalf("error = %v, want wrapped store error", err)
	}
	if kioskerr.IsKind(err, kioskerr.KindConfig) {
		t.Error("store failure should not be classified as a config error")
	}
}

func TestSaveThenLoad(t *testing.T) {
	store := &mapStore{}
	want := Config{EndpointURL: "http://10.0.0.5:8080/kiosk", ClientID: 3, SharedSecret: []byte("k")}
	if err := Save(context.Background(), store, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(context.Background(), store)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.EndpointURL != want.EndpointURL || got.ClientID != want.ClientID || string(got.SharedSecret) != "k" {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestConfigStringRedactsSecret(t *testing.T) {
	cfg := Config{EndpointURL: "https://x", ClientID: 1, SharedSecret: []byte("hunter2")}
	if strings.Contains(cfg.String(), "hunter2") {
		t.Errorf("String() leaks the secret: %s", cfg)
	}
}
