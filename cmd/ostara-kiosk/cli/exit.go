// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError exits with Code without printing a message. Commands
// return it after writing their own output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this method to tell
// a handled exit from an error to display.
func (e *ExitError) ExitCode() int {
	return e.Code
}
