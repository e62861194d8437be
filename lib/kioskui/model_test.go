// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package kioskui

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ostara/kiosk/lib/clock"
	"github.com/ostara/kiosk/lib/config"
	"github.com/ostara/kiosk/lib/configstore"
	"github.com/ostara/kiosk/lib/exchange"
	"github.com/ostara/kiosk/lib/session"
)

var epoch = time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)

// recordingController records session input as readable strings.
type recordingController struct {
	calls []string
}

func (c *recordingController) Start()              { c.calls = append(c.calls, "start") }
func (c *recordingController) AppendDigit(d int)   { c.calls = append(c.calls, "digit "+string(rune('0'+d))) }
func (c *recordingController) DeleteDigit()        { c.calls = append(c.calls, "delete") }
func (c *recordingController) SelectAction(id int) { c.calls = append(c.calls, "select "+string(rune('0'+id))) }
func (c *recordingController) Cancel()             { c.calls = append(c.calls, "cancel") }
func (c *recordingController) EditConfig()         { c.calls = append(c.calls, "edit config") }
func (c *recordingController) FinishConfigEdit()   { c.calls = append(c.calls, "finish config edit") }

func (c *recordingController) take() []string {
	calls := c.calls
	c.calls = nil
	return calls
}

func testModel(t *testing.T, store config.Store) (Model, *recordingController, *clock.FakeClock) {
	t.Helper()
	if store == nil {
		store = configstore.NewMemoryStore(nil)
	}
	controller := &recordingController{}
	fake := clock.Fake(epoch)
	return NewModel(controller, store, fake), controller, fake
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, model Model, message tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, command := model.Update(message)
	result, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return result, command
}

func typeText(t *testing.T, model Model, text string) Model {
	t.Helper()
	for _, r := range text {
		model, _ = update(t, model, runeKey(r))
	}
	return model
}

// runCommand executes command and any batch it expands to, returning
// the messages produced. Tick commands are not run.
func runCommand(command tea.Cmd) []tea.Msg {
	if command == nil {
		return nil
	}
	message := command()
	batch, ok := message.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{message}
	}
	var messages []tea.Msg
	for _, inner := range batch {
		messages = append(messages, runCommand(inner)...)
	}
	return messages
}

func expectCalls(t *testing.T, controller *recordingController, want ...string) {
	t.Helper()
	got := controller.take()
	if len(want) == 0 && len(got) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("controller calls = %q, want %q", got, want)
	}
}

func expectView(t *testing.T, model Model, fragments ...string) {
	t.Helper()
	view := model.View()
	for _, fragment := range fragments {
		if !strings.Contains(view, fragment) {
			t.Errorf("view missing %q:\n%s", fragment, view)
		}
	}
}

var anaActions = []exchange.Action{{ID: 1, Label: "FEED"}, {ID: 2, Label: "WALK"}}

func TestIdleKeys(t *testing.T) {
	model, controller, _ := testModel(t, nil)
	expectView(t, model, "Welcome", "Enter confirm")

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	expectCalls(t, controller, "start")

	model, _ = update(t, model, runeKey('7'))
	expectCalls(t, controller, "start", "digit 7")

	update(t, model, tea.KeyMsg{Type: tea.KeyCtrlE})
	expectCalls(t, controller, "edit config")
}

func TestLettersAreIgnored(t *testing.T) {
	model, controller, _ := testModel(t, nil)
	for _, r := range "qxa" {
		var command tea.Cmd
		model, command = update(t, model, runeKey(r))
		if command != nil {
			t.Errorf("key %q returned a command", r)
		}
	}
	expectCalls(t, controller)
}

func TestQuit(t *testing.T) {
	model, _, _ := testModel(t, nil)
	_, command := update(t, model, tea.KeyMsg{Type: tea.KeyCtrlC})
	if command == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, isQuit := command().(tea.QuitMsg); !isQuit {
		t.Errorf("expected QuitMsg")
	}
}

func TestCollectingPIN(t *testing.T) {
	model, controller, _ := testModel(t, nil)
	model, _ = update(t, model, snapshotMsg{snapshot: session.Snapshot{State: session.StateCollectingPIN, PINLength: 2}})
	expectView(t, model, "Enter your PIN", "● ● ○ ○")

	model, _ = update(t, model, runeKey('3'))
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyBackspace})
	update(t, model, tea.KeyMsg{Type: tea.KeyEsc})
	expectCalls(t, controller, "digit 3", "delete", "cancel")
}

func TestAuthenticatingView(t *testing.T) {
	model, controller, _ := testModel(t, nil)
	model, _ = update(t, model, snapshotMsg{snapshot: session.Snapshot{State: session.StateAuthenticating, PINLength: 4}})
	expectView(t, model, "Checking PIN", "● ● ● ●")

	model, _ = update(t, model, runeKey('1'))
	update(t, model, tea.KeyMsg{Type: tea.KeyEsc})
	expectCalls(t, controller)
}

func TestSelectingAction(t *testing.T) {
	model, controller, _ := testModel(t, nil)
	model, _ = update(t, model, snapshotMsg{snapshot: session.Snapshot{
		State:       session.StateSelectingAction,
		DisplayName: "Ana",
		Actions:     anaActions,
	}})
	expectView(t, model, "Hello, Ana", "> 1  FEED", "2  WALK")

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	expectView(t, model, "> 2  WALK")
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	expectCalls(t, controller, "select 2")

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyUp})
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyUp})
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	expectCalls(t, controller, "select 1")

	model, _ = update(t, model, runeKey('2'))
	update(t, model, tea.KeyMsg{Type: tea.KeyEsc})
	expectCalls(t, controller, "select 2", "cancel")
}

func TestCursorResetsForNewIdentity(t *testing.T) {
	model, _, _ := testModel(t, nil)
	selecting := session.Snapshot{State: session.StateSelectingAction, DisplayName: "Ana", Actions: anaActions}
	model, _ = update(t, model, snapshotMsg{snapshot: selecting})
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyDown})

	model, _ = update(t, model, snapshotMsg{snapshot: session.Snapshot{State: session.StateIdle}})
	model, _ = update(t, model, snapshotMsg{snapshot: selecting})
	expectView(t, model, "> 1  FEED")
}

func TestShowingResultCountdown(t *testing.T) {
	model, controller, fake := testModel(t, nil)
	model, _ = update(t, model, snapshotMsg{snapshot: session.Snapshot{
		State:    session.StateShowingResult,
		Selected: exchange.Action{ID: 1, Label: "FEED"},
		Result:   exchange.ResultSuccess,
		ResetAt:  epoch.Add(2 * time.Second),
	}})
	expectView(t, model, "✓ FEED recorded", "Returning in 2s")

	fake.Advance(1500 * time.Millisecond)
	model, command := update(t, model, tickMsg{})
	if command == nil {
		t.Error("tick should schedule the next tick")
	}
	expectView(t, model, "Returning in 1s")

	model, _ = update(t, model, runeKey('1'))
	update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	expectCalls(t, controller)
}

func TestShowingFailureResult(t *testing.T) {
	model, _, _ := testModel(t, nil)
	model, _ = update(t, model, snapshotMsg{snapshot: session.Snapshot{
		State:    session.StateShowingResult,
		Selected: exchange.Action{ID: 2, Label: "WALK"},
		Result:   exchange.ResultFailure,
		ResetAt:  epoch.Add(2 * time.Second),
	}})
	expectView(t, model, "✗ WALK was not accepted")
}

func TestShowingError(t *testing.T) {
	model, controller, _ := testModel(t, nil)
	model, _ = update(t, model, snapshotMsg{snapshot: session.Snapshot{
		State:   session.StateShowingError,
		Error:   "request timed out",
		ResetAt: epoch.Add(3 * time.Second),
	}})
	expectView(t, model, "Something went wrong", "request timed out", "Returning in 3s")

	update(t, model, runeKey('4'))
	expectCalls(t, controller)
}

func TestInactivityCountdownOnlyNearDeadline(t *testing.T) {
	model, _, fake := testModel(t, nil)
	model, _ = update(t, model, snapshotMsg{snapshot: session.Snapshot{
		State:   session.StateCollectingPIN,
		ResetAt: epoch.Add(30 * time.Second),
	}})
	if strings.Contains(model.View(), "Resetting") {
		t.Error("countdown shown 30s before the deadline")
	}

	fake.Advance(25 * time.Second)
	model, _ = update(t, model, tickMsg{})
	expectView(t, model, "Resetting in 5s")
}

func TestConfigMissing(t *testing.T) {
	model, controller, _ := testModel(t, nil)
	model, _ = update(t, model, snapshotMsg{snapshot: session.Snapshot{
		State:         session.StateConfigMissing,
		ConfigProblem: "API_URL is not configured",
	}})
	expectView(t, model, "not configured", "API_URL is not configured", "C-e")

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	model, _ = update(t, model, runeKey('1'))
	update(t, model, tea.KeyMsg{Type: tea.KeyCtrlE})
	expectCalls(t, controller, "edit config")
}

// openEditor moves the model into ConfigEditing and delivers the
// stored values.
func openEditor(t *testing.T, model Model) Model {
	t.Helper()
	model, command := update(t, model, snapshotMsg{snapshot: session.Snapshot{State: session.StateConfigEditing}})
	if model.editor == nil {
		t.Fatal("editor not opened")
	}
	loaded := false
	for _, message := range runCommand(command) {
		if _, ok := message.(editorLoadedMsg); ok {
			loaded = true
		}
		model, _ = update(t, model, message)
	}
	if !loaded {
		t.Fatal("opening the editor did not load stored values")
	}
	return model
}

func TestConfigEditorSaves(t *testing.T) {
	store := configstore.NewMemoryStore(map[string]string{
		config.KeyEndpointURL:  "https://ostara.example/api",
		config.KeyClientID:     "12",
		config.KeySharedSecret: "stored-secret",
	})
	model, controller, _ := testModel(t, store)
	model = openEditor(t, model)
	expectView(t, model, "Kiosk configuration", "https://ostara.example/api", "Client ID")
	if strings.Contains(model.View(), "stored-secret") {
		t.Fatal("editor renders the stored secret")
	}

	// Replace the client id and keep the secret.
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyTab})
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyBackspace})
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyBackspace})
	model = typeText(t, model, "99")
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	model, command := update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if command == nil {
		t.Fatal("Enter on the last field should save")
	}
	expectCalls(t, controller)

	for _, message := range runCommand(command) {
		model, _ = update(t, model, message)
	}
	expectCalls(t, controller, "finish config edit")

	loaded, err := config.Load(context.Background(), store)
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	if loaded.ClientID != 99 || loaded.EndpointURL != "https://ostara.example/api" || string(loaded.SharedSecret) != "stored-secret" {
		t.Errorf("saved config = %v", loaded)
	}

	model, _ = update(t, model, snapshotMsg{snapshot: session.Snapshot{State: session.StateIdle}})
	if model.editor != nil {
		t.Error("editor still open after leaving ConfigEditing")
	}
}

func TestConfigEditorRejectsInvalidValues(t *testing.T) {
	store := configstore.NewMemoryStore(nil)
	model, controller, _ := testModel(t, store)
	model = openEditor(t, model)

	model = typeText(t, model, "ftp://ostara.example")
	model, command := update(t, model, tea.KeyMsg{Type: tea.KeyCtrlS})
	if command != nil {
		t.Fatal("invalid config should not be saved")
	}
	expectView(t, model, "must be an http or https URL")

	for range len("ftp://ostara.example") {
		model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	model = typeText(t, model, "https://ostara.example")
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyTab})
	model = typeText(t, model, "7")
	model, command = update(t, model, tea.KeyMsg{Type: tea.KeyCtrlS})
	if command != nil {
		t.Fatal("saved without a shared secret")
	}
	expectView(t, model, "SHARED_SECRET must not be empty")

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyTab})
	model = typeText(t, model, "s3cret")
	expectView(t, model, "••••••")
	if strings.Contains(model.View(), "s3cret") {
		t.Error("secret echoed in clear text")
	}
	_, command = update(t, model, tea.KeyMsg{Type: tea.KeyCtrlS})
	if command == nil {
		t.Fatal("valid config should be saved")
	}
	expectCalls(t, controller)
}

func TestConfigEditorCancel(t *testing.T) {
	model, controller, _ := testModel(t, nil)
	model = openEditor(t, model)
	model = typeText(t, model, "12")
	update(t, model, tea.KeyMsg{Type: tea.KeyEsc})
	expectCalls(t, controller, "finish config edit")
}

func TestLogRecordShownAndFades(t *testing.T) {
	model, _, _ := testModel(t, nil)
	model, command := update(t, model, logRecordMsg{Summary: "exchange failed (error=boom)"})
	if command == nil {
		t.Fatal("log record should schedule a fade")
	}
	expectView(t, model, "exchange failed (error=boom)")

	// A fade for an older record leaves the newer one in place.
	model, _ = update(t, model, logRecordMsg{Summary: "second"})
	model, _ = update(t, model, logRecordFadeMsg{generation: 1})
	expectView(t, model, "second")

	model, _ = update(t, model, logRecordFadeMsg{generation: 2})
	if strings.Contains(model.View(), "second") {
		t.Error("log record not cleared by its fade")
	}
	expectView(t, model, "C-c quit")
}

func TestViewFitsWindow(t *testing.T) {
	model, _, _ := testModel(t, nil)
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 40, Height: 12})
	model, _ = update(t, model, snapshotMsg{snapshot: session.Snapshot{
		State:       session.StateSelectingAction,
		DisplayName: strings.Repeat("A", 80),
		Actions:     anaActions,
	}})

	lines := strings.Split(model.View(), "\n")
	if len(lines) != 12 {
		t.Errorf("view has %d lines, want 12", len(lines))
	}
	for index, line := range lines {
		if width := len([]rune(line)); width > 40 {
			t.Errorf("line %d is %d columns wide", index, width)
		}
	}
}
