// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package kioskui

import (
	"context"
	"sync"

	"github.com/ostara/kiosk/lib/session"
)

// snapshotMsg carries the session's latest snapshot into the model.
type snapshotMsg struct {
	snapshot session.Snapshot
}

// Bridge is a session.Observer that forwards snapshots to a program.
// OnStateChange never blocks: it replaces the pending snapshot and
// signals Forward, which delivers whatever is newest when it gets to
// run. Intermediate snapshots may be skipped; the final one never is.
type Bridge struct {
	mu      sync.Mutex
	latest  session.Snapshot
	pending bool
	signal  chan struct{}
}

// NewBridge returns a Bridge with nothing pending.
func NewBridge() *Bridge {
	return &Bridge{signal: make(chan struct{}, 1)}
}

// OnStateChange implements session.Observer.
func (b *Bridge) OnStateChange(snapshot session.Snapshot) {
	b.mu.Lock()
	b.latest = snapshot
	b.pending = true
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Forward delivers snapshots to sender until ctx is done.
func (b *Bridge) Forward(ctx context.Context, sender Sender) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-b.signal:
		}

		snapshot, ok := b.take()
		if ok {
			sender.Send(snapshotMsg{snapshot: snapshot})
		}
	}
}

func (b *Bridge) take() (session.Snapshot, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.pending {
		return session.Snapshot{}, false
	}
	b.pending = false
	return b.latest, true
}
