// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// StoreBackend selects the config store implementation.
type StoreBackend string

const (
	// BackendYAML keeps the keys in a YAML file.
	BackendYAML StoreBackend = "yaml"
	// BackendSQLite keeps the keys in a SQLite database.
	BackendSQLite StoreBackend = "sqlite"
)

// Settings are the terminal's runtime knobs.
type Settings struct {
	// StorePath is the config store location. Empty means the
	// backend's default under the user config directory.
	StorePath string `env:"OSTARA_KIOSK_STORE"`

	// StoreBackend is "yaml" or "sqlite".
	StoreBackend StoreBackend `env:"OSTARA_KIOSK_STORE_BACKEND" envDefault:"yaml"`

	// HTTPTimeout bounds each round-trip to the service.
	HTTPTimeout time.Duration `env:"OSTARA_KIOSK_HTTP_TIMEOUT" envDefault:"10s"`

	// VerifyResponses turns on HS512 verification of the service's
	// response tokens. Off by default: the deployed service is not
	// required to sign its responses with the terminal's secret.
	VerifyResponses bool `env:"OSTARA_KIOSK_VERIFY_RESPONSES" envDefault:"false"`

	// ResultDisplay is how long a submission result stays on screen.
	ResultDisplay time.Duration `env:"OSTARA_KIOSK_RESULT_DISPLAY" envDefault:"2s"`

	// ErrorDisplay is how long an error stays on screen.
	ErrorDisplay time.Duration `env:"OSTARA_KIOSK_ERROR_DISPLAY" envDefault:"3s"`

	// InactivityTimeout resets an abandoned PIN entry or action
	// selection. Zero disables it.
	InactivityTimeout time.Duration `env:"OSTARA_KIOSK_INACTIVITY_TIMEOUT" envDefault:"30s"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"OSTARA_KIOSK_LOG_LEVEL" envDefault:"info"`
}

// LoadSettings parses Settings from the process environment.
func LoadSettings() (Settings, error) {
	return ParseSettings(nil)
}

// ParseSettings parses Settings from environment, or from the process
// environment when environment is nil.
func ParseSettings(environment map[string]string) (Settings, error) {
	var settings Settings
	options := env.Options{}
	if environment != nil {
		options.Environment = environment
	}
	if err := env.ParseWithOptions(&settings, options); err != nil {
		return Settings{}, fmt.Errorf("parse kiosk settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Validate rejects settings the terminal cannot run with.
func (s Settings) Validate() error {
	switch s.StoreBackend {
	case BackendYAML, BackendSQLite:
	default:
		return fmt.Errorf("OSTARA_KIOSK_STORE_BACKEND must be %q or %q, got %q", BackendYAML, BackendSQLite, s.StoreBackend)
	}
	if s.HTTPTimeout <= 0 {
		return fmt.Errorf("OSTARA_KIOSK_HTTP_TIMEOUT must be positive, got %s", s.HTTPTimeout)
	}
	if s.ResultDisplay <= 0 || s.ErrorDisplay <= 0 {
		return fmt.Errorf("display durations must be positive (result %s, error %s)", s.ResultDisplay, s.ErrorDisplay)
	}
	if s.InactivityTimeout < 0 {
		return fmt.Errorf("OSTARA_KIOSK_INACTIVITY_TIMEOUT must not be negative, got %s", s.InactivityTimeout)
	}
	if _, err := s.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (s Settings) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s.LogLevel))); err != nil {
		return 0, fmt.Errorf("OSTARA_KIOSK_LOG_LEVEL: %w", err)
	}
	return level, nil
}

// ResolvedStorePath returns StorePath, or the backend's default file
// under the user config directory.
func (s Settings) ResolvedStorePath() (string, error) {
	if s.StorePath != "" {
		return s.StorePath, nil
	}
	directory, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	name := "kiosk.yaml"
	if s.StoreBackend == BackendSQLite {
		name = "kiosk.db"
	}
	return filepath.Join(directory, "ostara", name), nil
}
