// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package exchange

import (
	"fmt"
	"strconv"

	"github.com/ostara/kiosk/lib/kioskerr"
)

// PINLength is the number of digits in a kiosk PIN.
const PINLength = 4

// PIN is a complete kiosk PIN: exactly PINLength decimal digits.
type PIN string

// Validate checks the PIN's shape.
func (p PIN) Validate() error {
	if len(p) != PINLength {
		return kioskerr.Format("PIN must have %d digits, got %d", PINLength, len(p))
	}
	for _, digit := range []byte(p) {
		if digit < '0' || digit > '9' {
			return kioskerr.Format("PIN must contain only digits")
		}
	}
	return nil
}

// Number returns the PIN as the integer sent in the "token" field. A
// leading zero is not preserved: "0042" is sent as 42, which is what
// the service expects.
func (p PIN) Number() (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return strconv.ParseInt(string(p), 10, 64)
}

// Action is one permitted action for the authenticated user.
type Action struct {
	// ID is the action's 1-based position in the list the service
	// returned. IDs are positions, so duplicate names get distinct IDs.
	ID int

	// Label is the upper-cased event type name shown on screen.
	Label string
}

// String returns a log-friendly description of the action.
func (a Action) String() string {
	return fmt.Sprintf("%d:%s", a.ID, a.Label)
}

// Identity is the result of a successful authentication.
type Identity struct {
	DisplayName string
	Actions     []Action
}

// Result is the service's verdict on a submitted action.
type Result int

const (
	// ResultSuccess means the service answered "OK".
	ResultSuccess Result = iota + 1
	// ResultFailure means the service answered anything else.
	ResultFailure
)

func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultFailure:
		return "failure"
	default:
		return "unknown"
	}
}
