// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/ostara/kiosk/cmd/ostara-kiosk/cli"
	"github.com/ostara/kiosk/lib/config"
	"github.com/ostara/kiosk/lib/exchange"
	"github.com/ostara/kiosk/lib/kioskui"
	"github.com/ostara/kiosk/lib/session"
	"github.com/ostara/kiosk/lib/version"
)

func runCommand(environment *Environment) *cli.Command {
	var logOutput string

	return &cli.Command{
		Name:    "run",
		Summary: "Run the kiosk screen (the default)",
		Description: `Run the full-screen kiosk.

The terminal owns the screen while running. Warnings and errors are
shown in the status line; use --log-output to keep a JSON log of
every record at OSTARA_KIOSK_LOG_LEVEL and above.`,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("run", pflag.ContinueOnError)
			flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file")
			return flagSet
		},
		Examples: []cli.Example{
			{Description: "Run against a SQLite config store", Command: "OSTARA_KIOSK_STORE_BACKEND=sqlite ostara-kiosk run"},
			{Description: "Keep a debug log", Command: "OSTARA_KIOSK_LOG_LEVEL=debug ostara-kiosk run --log-output /var/log/ostara-kiosk.json"},
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			settings, err := environment.loadSettings()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runKiosk(ctx, settings, logOutput)
		},
	}
}

// runKiosk wires the store, exchange client, session, and TUI, and
// blocks until the program exits or ctx is cancelled.
func runKiosk(ctx context.Context, settings config.Settings, logOutput string) error {
	level, err := settings.Level()
	if err != nil {
		return cli.Validation("%w", err)
	}

	// Writing to stderr would corrupt the alt screen, so records go to
	// the status line and optionally a file.
	tuiHandler := kioskui.NewTUILogHandler(slog.LevelWarn)
	var handler slog.Handler = tuiHandler
	if logOutput != "" {
		fileHandler, closeFile, err := cli.OpenFileLogHandler(logOutput, level)
		if err != nil {
			return cli.Validation("cannot open log file %s: %w", logOutput, err)
		}
		defer closeFile()
		handler = cli.FanoutHandler{tuiHandler, fileHandler}
	}
	logger := slog.New(handler)

	store, err := openStore(settings, logger.With("component", "configstore"))
	if err != nil {
		return err
	}
	defer store.Close()

	client := exchange.NewClient(exchange.Options{
		HTTPClient:      &http.Client{Timeout: settings.HTTPTimeout},
		Logger:          logger.With("component", "exchange"),
		VerifyResponses: settings.VerifyResponses,
	})

	bridge := kioskui.NewBridge()
	kiosk, err := session.New(session.Options{
		Authenticator:     client,
		Submitter:         client,
		Loader:            session.StoreLoader(store),
		Observer:          bridge,
		Logger:            logger.With("component", "session"),
		ResultDisplay:     settings.ResultDisplay,
		ErrorDisplay:      settings.ErrorDisplay,
		InactivityTimeout: settings.InactivityTimeout,
	})
	if err != nil {
		return cli.Internal("creating session: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(kioskui.NewModel(kiosk, store, nil), tea.WithAltScreen(), tea.WithContext(ctx))
	tuiHandler.SetSender(program)

	sessionDone := make(chan error, 1)
	go func() { sessionDone <- kiosk.Run(ctx) }()
	go bridge.Forward(ctx, program)

	logger.Info("kiosk started",
		"version", version.Info(),
		"store_backend", settings.StoreBackend,
		"verify_responses", settings.VerifyResponses,
	)

	_, runErr := program.Run()
	cancel()
	if err := <-sessionDone; err != nil {
		return cli.Internal("session: %w", err)
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return cli.Internal("terminal UI: %w", runErr)
	}
	return nil
}
