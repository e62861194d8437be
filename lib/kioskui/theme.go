// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package kioskui

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors used by the kiosk screens. All colors are
// ANSI 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Highlighted action row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Outcome colors.
	Success lipgloss.Color
	Failure lipgloss.Color
	Warning lipgloss.Color

	// PIN dots.
	DigitFilled lipgloss.Color
	DigitEmpty  lipgloss.Color
}

// DefaultTheme is the built-in scheme for dark terminals.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	Success: lipgloss.Color("114"), // green
	Failure: lipgloss.Color("196"), // red
	Warning: lipgloss.Color("220"), // amber

	DigitFilled: lipgloss.Color("75"),
	DigitEmpty:  lipgloss.Color("240"),
}
