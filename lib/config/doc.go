// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the kiosk's connection configuration and its
// runtime settings.
//
// Connection configuration ([Config]) lives in a key-value [Store]
// under three keys: [KeyEndpointURL], [KeyClientID], and
// [KeySharedSecret]. [Load] reads all three and fails with a
// kioskerr config error if any is absent or unusable; the session
// treats that as the ConfigMissing screen, not as a crash. A loaded
// Config is a value: reloading produces a new one, nothing mutates it
// in place. Store backends live in lib/configstore.
//
// Runtime settings ([Settings]) control the terminal itself (where the
// store lives, HTTP timeout, display and inactivity durations, log
// level). They come from OSTARA_KIOSK_* environment variables, parsed
// with github.com/caarlos0/env, and command-line flags override them.
package config
