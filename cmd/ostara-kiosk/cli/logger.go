// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a logger for command output on stderr:
// slog.TextHandler when stderr is a terminal, slog.JSONHandler when it
// is piped or redirected.
func NewCommandLogger(level slog.Level) *slog.Logger {
	return slog.New(newStreamHandler(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), level))
}

func newStreamHandler(w io.Writer, terminal bool, level slog.Level) slog.Handler {
	options := &slog.HandlerOptions{Level: level}
	if terminal {
		return slog.NewTextHandler(w, options)
	}
	return slog.NewJSONHandler(w, options)
}

// OpenFileLogHandler creates a JSON handler writing to path, which is
// created or truncated. The returned function closes the file.
func OpenFileLogHandler(path string, level slog.Level) (slog.Handler, func() error, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level}), file.Close, nil
}

// FanoutHandler sends each record to every handler enabled for its
// level.
type FanoutHandler []slog.Handler

func (handlers FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers FanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(FanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers FanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(FanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
