// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is a CLI command or subcommand.
type Command struct {
	// Name is the command name as typed (e.g., "config", "set").
	Name string

	// Summary is the one-line description in the parent's listing.
	Summary string

	// Description is the longer text in the command's own help.
	Description string

	// Usage overrides the synthesized usage line.
	Usage string

	Examples []Example

	// Flags returns a fresh *pflag.FlagSet for this command. If nil,
	// the command accepts no flags.
	Flags func() *pflag.FlagSet

	// Subcommands are dispatched by the first positional arg.
	Subcommands []*Command

	// Run executes the command with the args left after flag parsing.
	// If Subcommands is also set, Run handles the no-subcommand case.
	Run func(args []string) error

	// HelpOutput receives help text. Defaults to os.Stderr; children
	// inherit the parent's.
	HelpOutput io.Writer

	parent *Command
}

// Example is a usage example shown in help output.
type Example struct {
	Description string
	Command     string
}

// Execute parses args and dispatches to the matching subcommand or
// Run.
func (c *Command) Execute(args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(c.helpOutput())
		return nil
	}

	if len(c.Subcommands) > 0 && len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name := args[0]
		for _, sub := range c.Subcommands {
			if sub.Name == name {
				sub.parent = c
				return sub.Execute(args[1:])
			}
		}

		if suggestion := suggestCommand(name, c.Subcommands); suggestion != "" {
			return Validation("unknown command %q (did you mean %q?)", name, suggestion).
				WithHint(fmt.Sprintf("Run '%s --help' for usage.", c.fullName()))
		}
		return Validation("unknown command %q", name).
			WithHint(fmt.Sprintf("Run '%s --help' for usage.", c.fullName()))
	}

	if len(c.Subcommands) > 0 && c.Run == nil {
		c.PrintHelp(c.helpOutput())
		if len(args) == 0 {
			return Validation("subcommand required")
		}
		return Validation("subcommand required (got flag %q)", args[0])
	}

	if c.Flags != nil {
		flagSet := c.Flags()
		flagSet.SetOutput(io.Discard)

		if err := flagSet.Parse(args); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				c.PrintHelp(c.helpOutput())
				return nil
			}
			hint := fmt.Sprintf("Run '%s --help' for usage.", c.fullName())
			if strings.Contains(err.Error(), "unknown flag") || strings.Contains(err.Error(), "unknown shorthand flag") {
				if suggestion := suggestFlag(args, c.Flags()); suggestion != "" {
					return Validation("%s (did you mean %s?)", err, suggestion).WithHint(hint)
				}
			}
			return Validation("%s", err).WithHint(hint)
		}
		args = flagSet.Args()
	}

	if c.Run != nil {
		return c.Run(args)
	}

	c.PrintHelp(c.helpOutput())
	return Internal("no action defined for %q", c.fullName())
}

// PrintHelp writes structured help output to w.
func (c *Command) PrintHelp(w io.Writer) {
	name := c.fullName()

	if c.Description != "" {
		fmt.Fprintf(w, "%s\n\n", c.Description)
	} else if c.Summary != "" {
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}

	switch {
	case c.Usage != "":
		fmt.Fprintf(w, "Usage:\n  %s\n", c.Usage)
	case len(c.Subcommands) > 0:
		fmt.Fprintf(w, "Usage:\n  %s <command> [flags]\n", name)
	default:
		fmt.Fprintf(w, "Usage:\n  %s [flags]\n", name)
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		tw.Flush()
	}

	if c.Flags != nil {
		usages := c.Flags().FlagUsages()
		if usages != "" {
			fmt.Fprintf(w, "\nFlags:\n%s", usages)
		}
	}

	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for _, example := range c.Examples {
			if example.Description != "" {
				fmt.Fprintf(w, "  # %s\n", example.Description)
			}
			fmt.Fprintf(w, "  %s\n", example.Command)
			if example.Description != "" {
				fmt.Fprintln(w)
			}
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
}

func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

func (c *Command) helpOutput() io.Writer {
	for command := c; command != nil; command = command.parent {
		if command.HelpOutput != nil {
			return command.HelpOutput
		}
	}
	return os.Stderr
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
