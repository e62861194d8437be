// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package kioskui

import tea "github.com/charmbracelet/bubbletea"

// Sender delivers messages into a running program. *tea.Program
// implements it.
type Sender interface {
	Send(tea.Msg)
}
