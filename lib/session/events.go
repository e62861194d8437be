// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package session

import "github.com/ostara/kiosk/lib/exchange"

// event is anything the Run loop processes.
type event any

type startEvent struct{}

type digitEvent struct{ digit int }

type deleteDigitEvent struct{}

type selectEvent struct{ id int }

type cancelEvent struct{}

type editConfigEvent struct{}

type finishConfigEditEvent struct{}

type authDoneEvent struct {
	generation uint64
	identity   exchange.Identity
	err        error
}

type submitDoneEvent struct {
	generation uint64
	result     exchange.Result
	err        error
}

type timerEvent struct{ generation uint64 }

type queryEvent struct{ reply chan Snapshot }
