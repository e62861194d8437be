// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock is the subset of the time package the kiosk schedules work
// with. Components that arm deadlines hold a Clock instead of calling
// time.Now or time.AfterFunc directly.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc calls f once duration d has elapsed and returns a
	// Timer that can cancel the call. If d <= 0, f runs immediately:
	// in a new goroutine for Real, synchronously for Fake.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a pending AfterFunc call.
type Timer struct {
	stopFunc func() bool
}

// Stop cancels the pending call. It reports true if the call was
// still pending, false if it already ran or was already stopped.
// Stopping a nil Timer is a no-op.
func (t *Timer) Stop() bool {
	if t == nil || t.stopFunc == nil {
		return false
	}
	return t.stopFunc()
}
