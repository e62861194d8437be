// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package kioskui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ostara/kiosk/lib/config"
	"github.com/ostara/kiosk/lib/kioskerr"
)

// storeTimeout bounds each editor read or write against the store.
const storeTimeout = 5 * time.Second

const (
	fieldEndpoint = iota
	fieldClientID
	fieldSecret
	fieldCount
)

// editorLoadedMsg carries the stored values into a freshly opened
// editor.
type editorLoadedMsg struct {
	values map[string]string
	err    error
}

// configSavedMsg reports the outcome of writing the editor's values.
type configSavedMsg struct {
	err error
}

// configEditor edits the three connection keys. The shared secret is
// masked and never pre-filled; leaving it blank keeps the stored one.
type configEditor struct {
	inputs         [fieldCount]textinput.Model
	focus          int
	existingSecret string
	problem        string
	saving         bool
}

func newConfigEditor() *configEditor {
	editor := &configEditor{}

	endpoint := textinput.New()
	endpoint.Prompt = ""
	endpoint.Placeholder = "https://example.org/kiosk"
	endpoint.CharLimit = 2048

	clientID := textinput.New()
	clientID.Prompt = ""
	clientID.Placeholder = "42"
	clientID.CharLimit = 19

	secret := textinput.New()
	secret.Prompt = ""
	secret.EchoMode = textinput.EchoPassword
	secret.EchoCharacter = '•'
	secret.CharLimit = 512

	editor.inputs = [fieldCount]textinput.Model{endpoint, clientID, secret}
	editor.inputs[fieldEndpoint].Focus()
	return editor
}

// load fills the fields from stored values.
func (editor *configEditor) load(values map[string]string) {
	editor.inputs[fieldEndpoint].SetValue(values[config.KeyEndpointURL])
	editor.inputs[fieldClientID].SetValue(values[config.KeyClientID])
	editor.existingSecret = values[config.KeySharedSecret]
	if editor.existingSecret != "" {
		editor.inputs[fieldSecret].Placeholder = "unchanged"
	}
}

func (editor *configEditor) setFocus(field int) tea.Cmd {
	editor.inputs[editor.focus].Blur()
	editor.focus = (field + fieldCount) % fieldCount
	return editor.inputs[editor.focus].Focus()
}

// result validates the fields and returns the config to save.
func (editor *configEditor) result() (config.Config, error) {
	endpoint, err := config.ValidateEndpointURL(editor.inputs[fieldEndpoint].Value())
	if err != nil {
		return config.Config{}, err
	}
	clientID, err := config.ParseClientID(editor.inputs[fieldClientID].Value())
	if err != nil {
		return config.Config{}, err
	}
	secret := editor.inputs[fieldSecret].Value()
	if secret == "" {
		secret = editor.existingSecret
	}
	if secret == "" {
		return config.Config{}, kioskerr.Config("%s must not be empty", config.KeySharedSecret)
	}
	return config.Config{EndpointURL: endpoint, ClientID: clientID, SharedSecret: []byte(secret)}, nil
}

// update handles a key press. save is non-nil when the user asked to
// save and the values are valid; cancel is true on Esc.
func (editor *configEditor) update(message tea.KeyMsg, keys KeyMap) (command tea.Cmd, save *config.Config, cancel bool) {
	if editor.saving {
		return nil, nil, false
	}
	switch {
	case key.Matches(message, keys.Cancel):
		return nil, nil, true

	case key.Matches(message, keys.NextField), key.Matches(message, keys.Down):
		return editor.setFocus(editor.focus + 1), nil, false

	case key.Matches(message, keys.PreviousField), key.Matches(message, keys.Up):
		return editor.setFocus(editor.focus - 1), nil, false

	case message.Type == tea.KeyEnter && editor.focus < fieldCount-1:
		return editor.setFocus(editor.focus + 1), nil, false

	case message.Type == tea.KeyEnter, key.Matches(message, keys.Save):
		cfg, err := editor.result()
		if err != nil {
			editor.problem = err.Error()
			return nil, nil, false
		}
		editor.problem = ""
		editor.saving = true
		return nil, &cfg, false
	}

	editor.inputs[editor.focus], command = editor.inputs[editor.focus].Update(message)
	return command, nil, false
}

func (editor *configEditor) view(theme Theme) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText).Width(16)
	focusedLabel := labelStyle.Foreground(theme.HeaderForeground).Bold(true)
	labels := [fieldCount]string{"Endpoint URL", "Client ID", "Shared secret"}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Render("Kiosk configuration"), "")
	for field := range fieldCount {
		style := labelStyle
		if field == editor.focus {
			style = focusedLabel
		}
		lines = append(lines, style.Render(labels[field])+editor.inputs[field].View())
	}
	lines = append(lines, "")
	switch {
	case editor.saving:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.FaintText).Render("Saving..."))
	case editor.problem != "":
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Failure).Render(editor.problem))
	}
	return strings.Join(lines, "\n")
}

// loadEditorValues reads the connection keys from store.
func loadEditorValues(store config.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		values := make(map[string]string, len(config.Keys))
		for _, name := range config.Keys {
			value, ok, err := store.Get(ctx, name)
			if err != nil {
				return editorLoadedMsg{err: err}
			}
			if ok {
				values[name] = value
			}
		}
		return editorLoadedMsg{values: values}
	}
}

// saveConfig writes cfg to store.
func saveConfig(store config.Store, cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return configSavedMsg{err: config.Save(ctx, store, cfg)}
	}
}
