// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds shared test helpers.
//
// [RequireReceive] and [RequireClosed] wrap the select-with-timeout
// pattern so individual tests never call time.After themselves. They
// are the only place tests wait on the wall clock; everything that
// the kiosk schedules runs on lib/clock's fake clock instead.
//
// Helpers call t.Fatalf on failure.
package testutil
