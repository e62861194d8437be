// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"time"

	"github.com/ostara/kiosk/lib/config"
	"github.com/ostara/kiosk/lib/exchange"
)

// State is one screen of the kiosk.
type State string

const (
	StateIdle            State = "idle"
	StateCollectingPIN   State = "collecting_pin"
	StateAuthenticating  State = "authenticating"
	StateSelectingAction State = "selecting_action"
	StateSubmitting      State = "submitting"
	StateShowingResult   State = "showing_result"
	StateShowingError    State = "showing_error"
	StateConfigMissing   State = "config_missing"
	StateConfigEditing   State = "config_editing"
)

// Snapshot is the data needed to render the current state.
type Snapshot struct {
	State State

	// PINLength is the number of digits entered so far. The digits
	// themselves never leave the session.
	PINLength int

	// DisplayName and Actions are set from SelectingAction until the
	// next reset.
	DisplayName string
	Actions     []exchange.Action

	// Selected is the action being submitted or whose result is shown.
	Selected exchange.Action

	// Result is set in ShowingResult.
	Result exchange.Result

	// Error is the message shown in ShowingError.
	Error string

	// ConfigProblem explains ConfigMissing.
	ConfigProblem string

	// ResetAt is when the pending timer will reset the session, or
	// the zero time if none is pending.
	ResetAt time.Time
}

// Authenticator resolves a PIN to an identity. *exchange.Client
// implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, pin exchange.PIN, cfg config.Config) (exchange.Identity, error)
}

// Submitter submits an action. *exchange.Client implements it.
type Submitter interface {
	Submit(ctx context.Context, pin exchange.PIN, action exchange.Action, cfg config.Config) (exchange.Result, error)
}

// ConfigLoader produces the connection config. It is called at
// startup and whenever config editing finishes.
type ConfigLoader interface {
	LoadConfig(ctx context.Context) (config.Config, error)
}

// LoaderFunc adapts a function to ConfigLoader.
type LoaderFunc func(ctx context.Context) (config.Config, error)

// LoadConfig calls f.
func (f LoaderFunc) LoadConfig(ctx context.Context) (config.Config, error) { return f(ctx) }

// StoreLoader returns a ConfigLoader that reads store with config.Load.
func StoreLoader(store config.Store) ConfigLoader {
	return LoaderFunc(func(ctx context.Context) (config.Config, error) {
		return config.Load(ctx, store)
	})
}

// Observer receives a Snapshot after every transition.
type Observer interface {
	OnStateChange(Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Snapshot)

// OnStateChange calls f.
func (f ObserverFunc) OnStateChange(snapshot Snapshot) { f(snapshot) }
