// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package configstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ostara/kiosk/lib/config"
	"github.com/ostara/kiosk/lib/kioskerr"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, store config.Store) {
	t.Helper()
	ctx := context.Background()

	if _, found, err := store.Get(ctx, config.KeyEndpointURL); err != nil || found {
		t.Fatalf("Get on empty store = found %v, err %v", found, err)
	}

	if _, err := config.Load(ctx, store); !kioskerr.IsKind(err, kioskerr.KindConfig) {
		t.Fatalf("Load on empty store error = %v, want config error", err)
	}

	want := config.Config{
		EndpointURL:  "https://ostara.example/kiosk?site=3",
		ClientID:     17,
		SharedSecret: []byte("p@ss: with yaml-ish chars #"),
	}
	if err := config.Save(ctx, store, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := config.Load(ctx, store)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.EndpointURL != want.EndpointURL || got.ClientID != want.ClientID || string(got.SharedSecret) != string(want.SharedSecret) {
		t.Errorf("Load = %+v, want %+v", got, want)
	}

	if err := store.Set(ctx, config.KeyClientID, "18"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	value, found, err := store.Get(ctx, config.KeyClientID)
	if err != nil || !found || value != "18" {
		t.Errorf("Get after overwrite = %q, %v, %v", value, found, err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(nil))
}

func TestMemoryStoreCopiesSeed(t *testing.T) {
	seed := map[string]string{config.KeyClientID: "1"}
	store := NewMemoryStore(seed)
	if err := store.Set(context.Background(), config.KeyClientID, "2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if seed[config.KeyClientID] != "1" {
		t.Error("MemoryStore modified its seed map")
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kiosk.yaml")
	store := NewFileStore(path)
	exerciseStore(t, store)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != fileMode {
		t.Errorf("file mode = %v, want %v", info.Mode().Perm(), os.FileMode(fileMode))
	}

	// A second store over the same file sees the first store's writes.
	value, found, err := NewFileStore(path).Get(context.Background(), config.KeyClientID)
	if err != nil || !found || value != "18" {
		t.Errorf("reopened Get = %q, %v, %v", value, found, err)
	}
}

func TestFileStoreReadsHandWrittenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kiosk.yaml")
	content := "API_URL: https://ostara.example/api\nCLIENT_ID: \"5\"\nSHARED_SECRET: abc\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := config.Load(context.Background(), NewFileStore(path))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ClientID != 5 || string(cfg.SharedSecret) != "abc" {
		t.Errorf("Load = %+v", cfg)
	}
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kiosk.yaml")
	if err := os.WriteFile(path, []byte("- not\n- a mapping\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, _, err := NewFileStore(path).Get(context.Background(), config.KeyEndpointURL)
	if err == nil {
		t.Fatal("Get on a corrupt file should fail")
	}
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "kiosk.db"), nil)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	exerciseStore(t, store)
}

func TestOpenSelectsBackend(t *testing.T) {
	directory := t.TempDir()

	yamlStore, err := Open(config.Settings{
		StoreBackend: config.BackendYAML,
		StorePath:    filepath.Join(directory, "kiosk.yaml"),
	}, nil)
	if err != nil {
		t.Fatalf("Open yaml: %v", err)
	}
	defer yamlStore.Close()
	if _, ok := yamlStore.(nopCloser); !ok {
		t.Errorf("yaml backend = %T, want file store", yamlStore)
	}

	sqliteStore, err := Open(config.Settings{
		StoreBackend: config.BackendSQLite,
		StorePath:    filepath.Join(directory, "db", "kiosk.db"),
	}, nil)
	if err != nil {
		t.Fatalf("Open sqlite: %v", err)
	}
	defer sqliteStore.Close()
	if _, ok := sqliteStore.(*SQLiteStore); !ok {
		t.Errorf("sqlite backend = %T, want *SQLiteStore", sqliteStore)
	}

	if _, err := Open(config.Settings{StoreBackend: "etcd", StorePath: "x"}, nil); err == nil {
		t.Error("Open with unknown backend should fail")
	}
}
