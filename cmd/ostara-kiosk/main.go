// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

// ostara-kiosk is the Ostara attendance terminal. With no arguments it
// runs the full-screen kiosk: a user enters a four-digit PIN, picks
// one of the actions the service offers them, and sees the result.
// Subcommands manage the stored connection config and decode tokens
// for diagnostics.
package main

import (
	"fmt"
	"os"

	"github.com/ostara/kiosk/cmd/ostara-kiosk/commands"
)

func main() {
	if err := run(); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return commands.Root(commands.ProcessEnvironment()).Execute(os.Args[1:])
}
