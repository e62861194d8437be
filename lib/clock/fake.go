// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake returns a FakeClock that reads initial until Advance is called.
func Fake(initial time.Time) *FakeClock {
	clock := &FakeClock{current: initial}
	clock.changed = sync.NewCond(&clock.mu)
	return clock
}

// FakeClock is a deterministic Clock. Callbacks registered with
// AfterFunc run synchronously inside Advance, in deadline order.
// Do not call Advance from inside a callback.
//
// FakeClock is safe for concurrent use.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	pending []*fakeTimer
	changed *sync.Cond
}

type fakeTimer struct {
	deadline time.Time
	callback func()
	stopped  bool
	fired    bool
}

// Now returns the fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// AfterFunc registers f to run once the clock has advanced by d. If
// d <= 0, f runs before AfterFunc returns.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	if d <= 0 {
		f()
		return &Timer{stopFunc: func() bool { return false }}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	timer := &fakeTimer{deadline: c.current.Add(d), callback: f}
	c.pending = append(c.pending, timer)
	c.changed.Broadcast()

	return &Timer{stopFunc: func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if timer.stopped || timer.fired {
			return false
		}
		timer.stopped = true
		c.changed.Broadcast()
		return true
	}}
}

// Advance moves the clock forward by d and runs every callback whose
// deadline is at or before the new time.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	target := c.current
	c.mu.Unlock()

	for {
		due := c.takeDue(target)
		if len(due) == 0 {
			return
		}
		for _, timer := range due {
			timer.callback()
		}
	}
}

// takeDue removes and returns the timers due at target, sorted by
// deadline. Stopped timers are dropped.
func (c *FakeClock) takeDue(target time.Time) []*fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	var due, remaining []*fakeTimer
	for _, timer := range c.pending {
		switch {
		case timer.stopped:
		case !timer.deadline.After(target):
			timer.fired = true
			due = append(due, timer)
		default:
			remaining = append(remaining, timer)
		}
	}
	c.pending = remaining

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].deadline.Before(due[j].deadline)
	})
	return due
}

// WaitForTimers blocks until at least n timers are pending.
func (c *FakeClock) WaitForTimers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.pendingLocked() < n {
		c.changed.Wait()
	}
}

// PendingCount returns the number of timers that are neither stopped
// nor fired.
func (c *FakeClock) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingLocked()
}

func (c *FakeClock) pendingLocked() int {
	count := 0
	for _, timer := range c.pending {
		if !timer.stopped {
			count++
		}
	}
	return count
}
