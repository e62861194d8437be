// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/ostara/kiosk/cmd/ostara-kiosk/cli"
	"github.com/ostara/kiosk/lib/config"
	"github.com/ostara/kiosk/lib/token"
)

func tokenCommand(environment *Environment) *cli.Command {
	return &cli.Command{
		Name:        "token",
		Summary:     "Inspect service tokens",
		Subcommands: []*cli.Command{tokenDecodeCommand(environment)},
	}
}

func tokenDecodeCommand(environment *Environment) *cli.Command {
	var verify bool

	return &cli.Command{
		Name:    "decode",
		Summary: "Print a token's payload as JSON",
		Description: `Print a token's payload as JSON. The signature is not checked unless
--verify is given, in which case it must be a valid HS512 signature
under the stored SHARED_SECRET.`,
		Usage: "ostara-kiosk token decode [--verify] <token>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flagSet.BoolVar(&verify, "verify", false, "check the signature against the stored shared secret")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one token, got %d arguments", len(args))
			}

			var payload token.Payload
			var err error
			if verify {
				secret, loadErr := storedSecret(environment)
				if loadErr != nil {
					return loadErr
				}
				payload, err = token.DecodeVerified(args[0], secret)
			} else {
				payload, err = token.DecodePayload(args[0])
			}
			if err != nil {
				return cli.Validation("%w", err)
			}

			data, err := json.MarshalIndent(payload, "", "  ")
			if err != nil {
				return cli.Internal("encoding payload: %w", err)
			}
			fmt.Fprintln(environment.Stdout, string(data))
			return nil
		},
	}
}

func storedSecret(environment *Environment) ([]byte, error) {
	settings, err := environment.loadSettings()
	if err != nil {
		return nil, err
	}
	store, err := openStore(settings, commandLogger(settings))
	if err != nil {
		return nil, err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	cfg, err := config.Load(ctx, store)
	if err != nil {
		return nil, cli.Validation("%w", err).
			WithHint("Run 'ostara-kiosk config set --secret-stdin' to store the shared secret.")
	}
	return cfg.SharedSecret, nil
}
