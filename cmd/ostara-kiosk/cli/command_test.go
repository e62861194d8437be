// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string
	root := &Command{
		Name: "ostara-kiosk",
		Subcommands: []*Command{
			{Name: "version", Run: func([]string) error { called = "version"; return nil }},
			{Name: "run", Run: func([]string) error { called = "run"; return nil }},
		},
	}

	if err := root.Execute([]string{"run"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "run" {
		t.Errorf("dispatched to %q, want run", called)
	}
}

func TestCommand_Execute_NestedSubcommandsWithFlags(t *testing.T) {
	var url string
	var clientID int64
	var received []string

	root := &Command{
		Name: "ostara-kiosk",
		Subcommands: []*Command{{
			Name: "config",
			Subcommands: []*Command{{
				Name: "set",
				Flags: func() *pflag.FlagSet {
					flagSet := pflag.NewFlagSet("set", pflag.ContinueOnError)
					flagSet.StringVar(&url, "url", "", "endpoint")
					flagSet.Int64Var(&clientID, "client", 0, "client id")
					return flagSet
				},
				Run: func(args []string) error {
					received = args
					return nil
				},
			}},
		}},
	}

	err := root.Execute([]string{"config", "set", "--url", "https://ostara.example", "--client=7", "extra"})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if url != "https://ostara.example" || clientID != 7 {
		t.Errorf("flags = (%q, %d)", url, clientID)
	}
	if len(received) != 1 || received[0] != "extra" {
		t.Errorf("args = %v, want [extra]", received)
	}
}

func TestCommand_Execute_UnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name:        "ostara-kiosk",
		Subcommands: []*Command{{Name: "config", Run: func([]string) error { return nil }}},
	}

	err := root.Execute([]string{"confg"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "config"`) {
		t.Errorf("error %q lacks suggestion", err)
	}
	var toolErr *ToolError
	if !errors.As(err, &toolErr) || toolErr.Category != CategoryValidation {
		t.Errorf("error %v is not a validation ToolError", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggests(t *testing.T) {
	command := &Command{
		Name: "set",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("set", pflag.ContinueOnError)
			flagSet.String("client", "", "client id")
			return flagSet
		},
		Run: func([]string) error { return nil },
	}

	err := command.Execute([]string{"--clinet", "4"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --client?") {
		t.Errorf("error %q lacks suggestion", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name:        "ostara-kiosk",
		HelpOutput:  &help,
		Subcommands: []*Command{{Name: "config", Summary: "Manage the stored config"}},
	}
	if err := root.Execute(nil); err == nil {
		t.Fatal("expected error without a subcommand")
	}
	if !strings.Contains(help.String(), "Manage the stored config") {
		t.Errorf("help not printed:\n%s", help.String())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	var help bytes.Buffer
	ran := false
	root := &Command{
		Name:       "ostara-kiosk",
		HelpOutput: &help,
		Subcommands: []*Command{{
			Name:    "token",
			Summary: "Token diagnostics",
			Flags: func() *pflag.FlagSet {
				return pflag.NewFlagSet("token", pflag.ContinueOnError)
			},
			Run: func([]string) error { ran = true; return nil },
		}},
	}

	if err := root.Execute([]string{"token", "arg", "--help"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if ran {
		t.Error("--help should not run the command")
	}
	if !strings.Contains(help.String(), "ostara-kiosk token [flags]") {
		t.Errorf("help output:\n%s", help.String())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "set",
		Description: "Write the connection config.",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("set", pflag.ContinueOnError)
			flagSet.String("url", "", "endpoint URL")
			return flagSet
		},
		Examples: []Example{{Description: "Point at staging", Command: "ostara-kiosk config set --url https://staging.example"}},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()
	for _, want := range []string{"Write the connection config.", "--url string", "endpoint URL", "# Point at staging"} {
		if !strings.Contains(output, want) {
			t.Errorf("help missing %q:\n%s", want, output)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "run", 3},
		{"run", "run", 0},
		{"confg", "config", 1},
		{"token", "tokne", 2},
		{"version", "run", 5},
	}
	for _, test := range cases {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}
