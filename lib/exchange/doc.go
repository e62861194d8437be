// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

// Package exchange performs the kiosk's network exchanges with the
// Ostara service.
//
// Every round-trip has the same shape: build a signed token (see
// lib/token), send GET <endpoint>?token=<token>, read the response body
// as text. There are no other verbs, headers, or endpoints.
//
// [Client.Authenticate] turns a PIN into an [Identity] with two
// strictly sequential round-trips: "getEventTypes" resolves the
// permitted actions, then "getName" resolves the display name. The
// second is never sent if the first fails, and the caller never sees
// a partial identity.
//
// [Client.Submit] sends one "addEvent" round-trip for the chosen
// action. A response of exactly "OK" (after trimming whitespace) is
// [ResultSuccess]; any other body is [ResultFailure]. A failure to
// complete the round-trip at all is an error, which is a different
// thing from a ResultFailure.
//
// All errors are *kioskerr.Error values whose message is suitable for
// the kiosk's error screen.
package exchange
