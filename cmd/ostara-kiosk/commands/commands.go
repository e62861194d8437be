// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the ostara-kiosk command tree.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ostara/kiosk/cmd/ostara-kiosk/cli"
	"github.com/ostara/kiosk/lib/config"
	"github.com/ostara/kiosk/lib/configstore"
	"github.com/ostara/kiosk/lib/version"
)

// Environment is what commands read from and write to. Tests replace
// the streams and the variables.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Variables overrides the process environment for settings. Nil
	// means the process environment.
	Variables map[string]string
}

// ProcessEnvironment returns the Environment of the running process.
func ProcessEnvironment() *Environment {
	return &Environment{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Root builds the command tree. With no subcommand it runs the kiosk.
func Root(environment *Environment) *cli.Command {
	run := runCommand(environment)
	return &cli.Command{
		Name: "ostara-kiosk",
		Description: `Ostara kiosk: PIN-authenticated attendance terminal.

Settings come from OSTARA_KIOSK_* environment variables. The service
connection (API_URL, CLIENT_ID, SHARED_SECRET) lives in the config
store and can be edited with "config set" or from the kiosk screen.`,
		HelpOutput: environment.Stderr,
		Flags:      run.Flags,
		Run:        run.Run,
		Subcommands: []*cli.Command{
			run,
			configCommand(environment),
			tokenCommand(environment),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					if len(args) > 0 {
						return cli.Validation("unexpected argument: %s", args[0])
					}
					fmt.Fprintf(environment.Stdout, "ostara-kiosk %s\n", version.Full())
					return nil
				},
			},
		},
	}
}

// loadSettings parses the runtime settings from the environment.
func (environment *Environment) loadSettings() (config.Settings, error) {
	settings, err := config.ParseSettings(environment.Variables)
	if err != nil {
		return config.Settings{}, cli.Validation("%w", err).
			WithHint("Check the OSTARA_KIOSK_* environment variables.")
	}
	return settings, nil
}

// openStore opens the config store selected by settings.
func openStore(settings config.Settings, logger *slog.Logger) (configstore.Store, error) {
	store, err := configstore.Open(settings, logger)
	if err != nil {
		return nil, cli.Internal("opening config store: %w", err)
	}
	return store, nil
}
