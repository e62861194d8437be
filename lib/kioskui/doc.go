// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

// Package kioskui is the full-screen terminal front end for a kiosk
// session. Built on bubbletea, it renders [session.Snapshot] values
// and turns key presses into session input.
//
// The session never waits on the UI. A [Bridge] is registered as the
// session's observer and forwards only the most recent snapshot to the
// running program, so a slow terminal coalesces updates instead of
// stalling the state machine. Timeouts stay owned by the session; the
// model ticks only to redraw countdowns.
//
// While the session is in config editing the model shows an editor
// for the endpoint URL, client id, and shared secret. Saving writes
// the values to the config store and tells the session to reload.
package kioskui
