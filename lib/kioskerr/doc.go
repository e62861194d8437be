// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

// Package kioskerr classifies the failures the kiosk core can raise.
//
// Every error that leaves lib/token, lib/config, or lib/exchange is a
// [*Error] carrying one of four kinds:
//
//   - [KindConfig]: required configuration is absent or unusable. The
//     session routes to ConfigMissing.
//   - [KindFormat]: a token has the wrong shape or an undecodable
//     payload.
//   - [KindProtocol]: a well-formed response that lacks the expected
//     fields.
//   - [KindNetwork]: the HTTP round-trip itself failed.
//
// The session collapses format, protocol, and network failures into a
// single message shown on the error screen. Nothing is retried.
//
// This package has no Ostara-internal dependencies.
package kioskerr
