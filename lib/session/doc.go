// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

// Package session is the kiosk's state machine.
//
// A [Session] moves through these states:
//
//	Idle ──Start──▶ CollectingPin ──4th digit──▶ Authenticating
//	Authenticating ──ok──▶ SelectingAction ──SelectAction──▶ Submitting
//	Authenticating ──error──▶ ShowingError
//	Submitting ──ok──▶ ShowingResult   Submitting ──error──▶ ShowingError
//	ShowingResult ──2s──▶ Idle         ShowingError ──3s──▶ Idle
//
//	ConfigMissing ◀──load fails── (startup, FinishConfigEdit) ──load ok──▶ Idle
//	Idle, ConfigMissing ──EditConfig──▶ ConfigEditing
//
// CollectingPin and SelectingAction also return to Idle on Cancel, or
// when the inactivity timeout passes without input.
//
// # Event loop
//
// [Session.Run] owns all session state and processes one event at a
// time: a digit, a selection, an exchange result, a timer firing.
// Every exported method only posts an event, so they are safe to call
// from any goroutine (the terminal UI calls them from its own loop).
// Exchanges run in their own goroutine and post their outcome back;
// the state machine never has two in flight because Authenticating
// and Submitting accept no input.
//
// # Timers
//
// The session holds at most one pending timer: the display deadline
// in ShowingResult/ShowingError or the inactivity deadline in
// CollectingPin/SelectingAction. Arming a timer stops the previous
// one, and every reset stops it. Each timer carries a generation
// number so a firing that raced with a reset is recognised as stale
// and dropped.
//
// # Observation
//
// After every transition the session calls Observer.OnStateChange with
// a [Snapshot] of everything a screen needs. The observer runs on the
// session goroutine and must not block.
package session
