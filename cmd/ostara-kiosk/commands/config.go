// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/ostara/kiosk/cmd/ostara-kiosk/cli"
	"github.com/ostara/kiosk/lib/config"
)

// storeTimeout bounds a command's work against the config store.
const storeTimeout = 10 * time.Second

func configCommand(environment *Environment) *cli.Command {
	return &cli.Command{
		Name:    "config",
		Summary: "Show or change the service connection",
		Subcommands: []*cli.Command{
			configShowCommand(environment),
			configSetCommand(environment),
		},
	}
}

func configShowCommand(environment *Environment) *cli.Command {
	return &cli.Command{
		Name:    "show",
		Summary: "Print the stored connection config",
		Description: `Print the stored connection config. The shared secret is never
printed. Exits 1 when the config is incomplete or invalid.`,
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			settings, err := environment.loadSettings()
			if err != nil {
				return err
			}
			store, err := openStore(settings, commandLogger(settings))
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
			defer cancel()

			path, err := settings.ResolvedStorePath()
			if err != nil {
				return cli.Internal("%w", err)
			}
			out := environment.Stdout
			fmt.Fprintf(out, "store: %s (%s)\n", path, settings.StoreBackend)
			for _, name := range config.Keys {
				value, found, err := store.Get(ctx, name)
				if err != nil {
					return cli.Internal("reading %s: %w", name, err)
				}
				switch {
				case !found:
					value = "(not set)"
				case name == config.KeySharedSecret:
					value = "(set)"
				}
				fmt.Fprintf(out, "%s: %s\n", name, value)
			}

			if _, err := config.Load(ctx, store); err != nil {
				fmt.Fprintf(out, "status: %v\n", err)
				return &cli.ExitError{Code: 1}
			}
			fmt.Fprintln(out, "status: ok")
			return nil
		},
	}
}

func configSetCommand(environment *Environment) *cli.Command {
	var (
		endpointURL string
		clientID    string
		secretStdin bool
	)

	return &cli.Command{
		Name:    "set",
		Summary: "Write connection keys to the config store",
		Description: `Write connection keys to the config store. Only the keys named by
flags are changed.

With --secret-stdin the shared secret is read from standard input:
one line when piped, or a prompt without echo on a terminal.`,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("set", pflag.ContinueOnError)
			flagSet.StringVar(&endpointURL, "url", "", "service endpoint URL (API_URL)")
			flagSet.StringVar(&clientID, "client", "", "terminal client id (CLIENT_ID)")
			flagSet.BoolVar(&secretStdin, "secret-stdin", false, "read the shared secret (SHARED_SECRET) from stdin")
			return flagSet
		},
		Examples: []cli.Example{
			{Description: "Configure a new terminal", Command: "ostara-kiosk config set --url https://ostara.example/api --client 12 --secret-stdin"},
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if endpointURL == "" && clientID == "" && !secretStdin {
				return cli.Validation("nothing to set").
					WithHint("Pass --url, --client, or --secret-stdin.")
			}

			var entries [][2]string
			if endpointURL != "" {
				validated, err := config.ValidateEndpointURL(endpointURL)
				if err != nil {
					return cli.Validation("%w", err)
				}
				entries = append(entries, [2]string{config.KeyEndpointURL, validated})
			}
			if clientID != "" {
				parsed, err := config.ParseClientID(clientID)
				if err != nil {
					return cli.Validation("%w", err)
				}
				entries = append(entries, [2]string{config.KeyClientID, fmt.Sprint(parsed)})
			}
			if secretStdin {
				secret, err := readSecret(environment)
				if err != nil {
					return err
				}
				entries = append(entries, [2]string{config.KeySharedSecret, secret})
			}

			settings, err := environment.loadSettings()
			if err != nil {
				return err
			}
			logger := commandLogger(settings)
			store, err := openStore(settings, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
			defer cancel()
			for _, entry := range entries {
				if err := store.Set(ctx, entry[0], entry[1]); err != nil {
					return cli.Internal("writing %s: %w", entry[0], err)
				}
				logger.Info("stored config key", "key", entry[0])
			}
			return nil
		},
	}
}

// readSecret reads the shared secret from stdin, prompting without
// echo when stdin is a terminal.
func readSecret(environment *Environment) (string, error) {
	if file, ok := environment.Stdin.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		fmt.Fprint(environment.Stderr, "Shared secret: ")
		secret, err := term.ReadPassword(int(file.Fd()))
		fmt.Fprintln(environment.Stderr)
		if err != nil {
			return "", cli.Internal("reading shared secret: %w", err)
		}
		if len(secret) == 0 {
			return "", cli.Validation("shared secret must not be empty")
		}
		return string(secret), nil
	}

	line, err := bufio.NewReader(environment.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", cli.Internal("reading shared secret: %w", err)
	}
	secret := strings.TrimRight(line, "\r\n")
	if secret == "" {
		return "", cli.Validation("shared secret must not be empty").
			WithHint("Pipe the secret on stdin, e.g. 'ostara-kiosk config set --secret-stdin < secret.txt'.")
	}
	return secret, nil
}

// commandLogger logs to the command's stderr at the configured level.
func commandLogger(settings config.Settings) *slog.Logger {
	level, err := settings.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	return cli.NewCommandLogger(level)
}
