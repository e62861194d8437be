// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package kioskui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ostara/kiosk/lib/clock"
	"github.com/ostara/kiosk/lib/config"
	"github.com/ostara/kiosk/lib/session"
)

// Controller is the session input the model drives. *session.Session
// implements it.
type Controller interface {
	Start()
	AppendDigit(digit int)
	DeleteDigit()
	SelectAction(id int)
	Cancel()
	EditConfig()
	FinishConfigEdit()
}

// tickInterval is how often countdowns are redrawn.
const tickInterval = 250 * time.Millisecond

type tickMsg struct{}

// Model is the bubbletea model for the kiosk screen. It holds the last
// snapshot it was sent and renders from that alone.
type Model struct {
	controller Controller
	store      config.Store
	clock      clock.Clock
	theme      Theme
	keys       KeyMap

	snapshot session.Snapshot
	now      time.Time

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int

	// cursor is the highlighted row in SelectingAction.
	cursor int

	// editor is non-nil while the session is in ConfigEditing.
	editor *configEditor

	// Status line log record.
	logSummary    string
	logLevel      slog.Level
	logGeneration int
}

// NewModel creates a Model that sends input to controller and edits
// config in store. A nil clock uses the real one.
func NewModel(controller Controller, store config.Store, clk clock.Clock) Model {
	if clk == nil {
		clk = clock.Real()
	}
	return Model{
		controller: controller,
		store:      store,
		clock:      clk,
		theme:      DefaultTheme,
		keys:       DefaultKeyMap,
		snapshot:   session.Snapshot{State: session.StateIdle},
		now:        clk.Now(),
	}
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return scheduleTick()
}

func scheduleTick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if key.Matches(message, model.keys.Quit) {
			return model, tea.Quit
		}
		if model.editor != nil {
			return model.handleEditorKeys(message)
		}
		model.handleSessionKeys(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height

	case snapshotMsg:
		return model.handleSnapshot(message.snapshot)

	case tickMsg:
		model.now = model.clock.Now()
		return model, scheduleTick()

	case editorLoadedMsg:
		if model.editor == nil {
			break
		}
		if message.err != nil {
			model.editor.problem = "reading config store: " + message.err.Error()
			break
		}
		model.editor.load(message.values)

	case configSavedMsg:
		if model.editor == nil {
			break
		}
		model.editor.saving = false
		if message.err != nil {
			model.editor.problem = message.err.Error()
			break
		}
		model.controller.FinishConfigEdit()

	case logRecordMsg:
		model.logSummary = message.Summary
		model.logLevel = message.Level
		model.logGeneration++
		return model, scheduleLogFade(model.logGeneration)

	case logRecordFadeMsg:
		if message.generation == model.logGeneration {
			model.logSummary = ""
		}

	default:
		// Cursor blink and other input-internal messages.
		if model.editor != nil {
			var command tea.Cmd
			focus := model.editor.focus
			model.editor.inputs[focus], command = model.editor.inputs[focus].Update(message)
			return model, command
		}
	}
	return model, nil
}

func (model Model) handleSnapshot(snapshot session.Snapshot) (tea.Model, tea.Cmd) {
	previous := model.snapshot.State
	model.snapshot = snapshot
	model.now = model.clock.Now()

	if snapshot.State == session.StateSelectingAction && previous != session.StateSelectingAction {
		model.cursor = 0
	}
	if snapshot.State != session.StateConfigEditing {
		model.editor = nil
		return model, nil
	}
	if model.editor == nil {
		model.editor = newConfigEditor()
		return model, tea.Batch(textinput.Blink, loadEditorValues(model.store))
	}
	return model, nil
}

// handleSessionKeys maps a key press to session input for the state
// on screen. The session drops input that no longer fits its state,
// so a stale screen is harmless.
func (model *Model) handleSessionKeys(message tea.KeyMsg) {
	keys := model.keys
	switch model.snapshot.State {
	case session.StateIdle:
		switch {
		case key.Matches(message, keys.Confirm):
			model.controller.Start()
		case key.Matches(message, keys.Digit):
			model.controller.Start()
			model.controller.AppendDigit(digitOf(message))
		case key.Matches(message, keys.Configure):
			model.controller.EditConfig()
		}

	case session.StateConfigMissing:
		if key.Matches(message, keys.Configure) {
			model.controller.EditConfig()
		}

	case session.StateCollectingPIN:
		switch {
		case key.Matches(message, keys.Digit):
			model.controller.AppendDigit(digitOf(message))
		case key.Matches(message, keys.Delete):
			model.controller.DeleteDigit()
		case key.Matches(message, keys.Cancel):
			model.controller.Cancel()
		}

	case session.StateSelectingAction:
		actions := model.snapshot.Actions
		switch {
		case key.Matches(message, keys.Up):
			if model.cursor > 0 {
				model.cursor--
			}
		case key.Matches(message, keys.Down):
			if model.cursor < len(actions)-1 {
				model.cursor++
			}
		case key.Matches(message, keys.Confirm):
			if model.cursor < len(actions) {
				model.controller.SelectAction(actions[model.cursor].ID)
			}
		case key.Matches(message, keys.Digit):
			model.controller.SelectAction(digitOf(message))
		case key.Matches(message, keys.Cancel):
			model.controller.Cancel()
		}
	}
}

func (model Model) handleEditorKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	command, save, cancel := model.editor.update(message, model.keys)
	switch {
	case cancel:
		model.controller.FinishConfigEdit()
	case save != nil:
		return model, saveConfig(model.store, *save)
	}
	return model, command
}

// digitOf returns the digit for a key matched by KeyMap.Digit.
func digitOf(message tea.KeyMsg) int {
	text := message.String()
	if len(text) != 1 || text[0] < '0' || text[0] > '9' {
		return -1
	}
	return int(text[0] - '0')
}
