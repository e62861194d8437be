// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package kioskui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/ostara/kiosk/lib/exchange"
	"github.com/ostara/kiosk/lib/session"
)

// inactivityWarning is how close to an inactivity reset the countdown
// starts showing during PIN entry and action selection.
const inactivityWarning = 10 * time.Second

// View implements tea.Model.
func (model Model) View() string {
	header := model.renderHeader()
	body := model.renderBody()
	footer := model.renderFooter()

	if model.width == 0 || model.height == 0 {
		return strings.Join([]string{header, "", body, "", footer}, "\n")
	}

	bodyHeight := max(model.height-2, 1)
	placed := lipgloss.Place(model.width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	return lipgloss.JoinVertical(lipgloss.Left, header, placed, footer)
}

func (model Model) renderHeader() string {
	style := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	return style.Render(" OSTARA KIOSK")
}

func (model Model) renderBody() string {
	snapshot := model.snapshot
	title := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	var lines []string
	switch snapshot.State {
	case session.StateIdle:
		lines = append(lines, title.Render("Welcome"), "", faint.Render("Press Enter or type your PIN to begin"))

	case session.StateCollectingPIN:
		lines = append(lines, title.Render("Enter your PIN"), "", model.renderPIN())

	case session.StateAuthenticating:
		lines = append(lines, title.Render("Checking PIN..."), "", model.renderPIN())

	case session.StateSelectingAction:
		greeting := "Hello"
		if snapshot.DisplayName != "" {
			greeting += ", " + model.truncate(snapshot.DisplayName, 8)
		}
		lines = append(lines, title.Render(greeting), "", faint.Render("Choose an action"), "")
		lines = append(lines, model.renderActions()...)

	case session.StateSubmitting:
		lines = append(lines, title.Render("Submitting "+model.truncate(snapshot.Selected.Label, 12)+"..."))

	case session.StateShowingResult:
		lines = append(lines, model.renderResult())

	case session.StateShowingError:
		style := lipgloss.NewStyle().Bold(true).Foreground(model.theme.Failure)
		lines = append(lines, style.Render("Something went wrong"), "",
			lipgloss.NewStyle().Foreground(model.theme.NormalText).Render(snapshot.Error))

	case session.StateConfigMissing:
		style := lipgloss.NewStyle().Bold(true).Foreground(model.theme.Warning)
		lines = append(lines, style.Render("This kiosk is not configured"))
		if snapshot.ConfigProblem != "" {
			lines = append(lines, "", faint.Render(snapshot.ConfigProblem))
		}
		lines = append(lines, "", faint.Render("Press "+model.keys.Configure.Help().Key+" to configure"))

	case session.StateConfigEditing:
		if model.editor != nil {
			lines = append(lines, model.editor.view(model.theme))
		}
	}

	if countdown := model.renderCountdown(); countdown != "" {
		lines = append(lines, "", faint.Render(countdown))
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderPIN() string {
	filled := lipgloss.NewStyle().Foreground(model.theme.DigitFilled)
	empty := lipgloss.NewStyle().Foreground(model.theme.DigitEmpty)
	dots := make([]string, exchange.PINLength)
	for index := range dots {
		if index < model.snapshot.PINLength {
			dots[index] = filled.Render("●")
		} else {
			dots[index] = empty.Render("○")
		}
	}
	return strings.Join(dots, " ")
}

func (model Model) renderActions() []string {
	normal := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	selected := lipgloss.NewStyle().
		Foreground(model.theme.SelectedForeground).
		Background(model.theme.SelectedBackground).
		Bold(true)

	lines := make([]string, 0, len(model.snapshot.Actions))
	for index, action := range model.snapshot.Actions {
		marker := "  "
		style := normal
		if index == model.cursor {
			marker = "> "
			style = selected
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s%d  %s", marker, action.ID, model.truncate(action.Label, 10))))
	}
	return lines
}

func (model Model) renderResult() string {
	label := model.truncate(model.snapshot.Selected.Label, 16)
	if model.snapshot.Result == exchange.ResultSuccess {
		style := lipgloss.NewStyle().Bold(true).Foreground(model.theme.Success)
		return style.Render("✓ " + label + " recorded")
	}
	style := lipgloss.NewStyle().Bold(true).Foreground(model.theme.Failure)
	return style.Render("✗ " + label + " was not accepted")
}

// renderCountdown describes the pending reset. Inactivity deadlines
// only show once they are close.
func (model Model) renderCountdown() string {
	resetAt := model.snapshot.ResetAt
	if resetAt.IsZero() {
		return ""
	}
	remaining := max(resetAt.Sub(model.now), 0)

	switch model.snapshot.State {
	case session.StateShowingResult, session.StateShowingError:
		return fmt.Sprintf("Returning in %ds", ceilSeconds(remaining))
	case session.StateCollectingPIN, session.StateSelectingAction:
		if remaining <= inactivityWarning {
			return fmt.Sprintf("Resetting in %ds", ceilSeconds(remaining))
		}
	}
	return ""
}

func (model Model) renderFooter() string {
	if model.logSummary != "" {
		color := model.theme.Warning
		if model.logLevel >= slog.LevelError {
			color = model.theme.Failure
		}
		return model.truncate(lipgloss.NewStyle().Foreground(color).Render(" "+model.logSummary), 0)
	}

	var bindings []key.Binding
	switch model.snapshot.State {
	case session.StateIdle:
		bindings = []key.Binding{model.keys.Confirm, model.keys.Configure}
	case session.StateConfigMissing:
		bindings = []key.Binding{model.keys.Configure}
	case session.StateCollectingPIN:
		bindings = []key.Binding{model.keys.Digit, model.keys.Delete, model.keys.Cancel}
	case session.StateSelectingAction:
		bindings = []key.Binding{model.keys.Up, model.keys.Down, model.keys.Confirm, model.keys.Cancel}
	case session.StateConfigEditing:
		bindings = []key.Binding{model.keys.NextField, model.keys.Save, model.keys.Cancel}
	}
	bindings = append(bindings, model.keys.Quit)

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	return model.truncate(style.Render(" "+strings.Join(parts, "  ")), 0)
}

// truncate shortens text to the terminal width less margin. Before the
// first WindowSizeMsg the width is unknown and text is left alone.
func (model Model) truncate(text string, margin int) string {
	limit := model.width - margin
	if model.width == 0 || limit <= 0 || ansi.StringWidth(text) <= limit {
		return text
	}
	return ansi.Truncate(text, limit, "…")
}

func ceilSeconds(d time.Duration) int {
	return int((d + time.Second - 1) / time.Second)
}
