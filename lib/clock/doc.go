// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides the injectable time source used by the kiosk
// session for its display deadlines and inactivity resets.
//
// Production code passes Real(). Tests pass Fake(start), which never
// moves on its own: deadlines fire only when the test calls Advance.
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	s, _ := session.New(session.Options{Clock: c, ...})
//	// ... drive the session into ShowingError ...
//	c.WaitForTimers(1)
//	c.Advance(3 * time.Second)
//
// WaitForTimers closes the race between the session goroutine arming
// its reset timer and the test advancing time.
package clock
