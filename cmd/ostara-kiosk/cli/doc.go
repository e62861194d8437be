// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for ostara-kiosk.
//
// [Command] is a named node with optional [Command.Subcommands], a
// [pflag.FlagSet] factory, and a Run function. [Command.Execute] routes
// args through the tree, parses flags, and prints help. Unknown
// commands and flags get a did-you-mean suggestion when one is within
// edit distance 3.
//
// Commands return [ToolError] values built with [Validation] or
// [Internal], optionally carrying a hint for the operator. [ExitError]
// exits non-zero without printing anything further.
package cli
