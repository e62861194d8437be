// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package kioskui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the kiosk key bindings. Plain letters are never bound
// so a user at the keypad cannot quit the program by accident.
type KeyMap struct {
	// Digit matches 0-9: PIN entry, or the action number while
	// selecting.
	Digit key.Binding

	Delete  key.Binding
	Confirm key.Binding
	Cancel  key.Binding

	// Action list movement.
	Up   key.Binding
	Down key.Binding

	// Configure opens the config editor from Idle or ConfigMissing.
	Configure key.Binding

	// Editor field movement and save.
	NextField     key.Binding
	PreviousField key.Binding
	Save          key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in binding set.
var DefaultKeyMap = KeyMap{
	Digit: key.NewBinding(
		key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("0-9", "digit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("BS", "delete"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("Enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Configure: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("C-e", "configure"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next field"),
	),
	PreviousField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-Tab", "previous field"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "save"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}
