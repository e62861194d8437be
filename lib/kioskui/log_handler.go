// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package kioskui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the model for display in
// the status line.
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// logRecordFadeMsg clears the status line once the record has been
// shown for logRecordFadeDelay. Fades for older records are ignored.
type logRecordFadeMsg struct {
	generation int
}

const logRecordFadeDelay = 5 * time.Second

// TUILogHandler is a slog.Handler that routes records into the
// program's status line while the TUI owns the terminal. Records
// below the configured level are dropped, as are records that arrive
// before SetSender is called.
//
// Handlers derived via WithAttrs and WithGroup share the sender, so
// one SetSender call reaches all of them.
type TUILogHandler struct {
	level  slog.Level
	sender *atomic.Pointer[Sender]
	attrs  []slog.Attr
	groups []string
}

// NewTUILogHandler creates a handler for records at or above level.
func NewTUILogHandler(level slog.Level) *TUILogHandler {
	return &TUILogHandler{
		level:  level,
		sender: &atomic.Pointer[Sender]{},
	}
}

// SetSender sets the program that receives records. Safe to call from
// any goroutine.
func (handler *TUILogHandler) SetSender(sender Sender) {
	handler.sender.Store(&sender)
}

// Enabled implements slog.Handler.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record as "message (key=value, ...)" and sends
// it to the program.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	sender := handler.sender.Load()
	if sender == nil {
		return nil
	}

	prefix := ""
	if len(handler.groups) > 0 {
		prefix = strings.Join(handler.groups, ".") + "."
	}

	var parts []string
	for _, attr := range handler.attrs {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s%s=%s", prefix, attr.Key, attr.Value))
		return true
	})

	summary := record.Message
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}

	(*sender).Send(logRecordMsg{Summary: summary, Level: record.Level})
	return nil
}

// WithAttrs implements slog.Handler.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefix := ""
	if len(handler.groups) > 0 {
		prefix = strings.Join(handler.groups, ".") + "."
	}
	derived := slices.Clone(handler.attrs)
	for _, attr := range attrs {
		derived = append(derived, slog.Attr{Key: prefix + attr.Key, Value: attr.Value})
	}
	return &TUILogHandler{
		level:  handler.level,
		sender: handler.sender,
		attrs:  derived,
		groups: slices.Clone(handler.groups),
	}
}

// WithGroup implements slog.Handler.
func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	return &TUILogHandler{
		level:  handler.level,
		sender: handler.sender,
		attrs:  slices.Clone(handler.attrs),
		groups: append(slices.Clone(handler.groups), name),
	}
}

func scheduleLogFade(generation int) tea.Cmd {
	return tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
		return logRecordFadeMsg{generation: generation}
	})
}
