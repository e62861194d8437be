// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

// Package token builds and reads the compact signed tokens the kiosk
// exchanges with the Ostara service.
//
// # Wire format
//
// A token is three URL-safe, unpadded base64 segments joined by dots:
//
//	base64url(header) "." base64url(payload) "." base64url(signature)
//
// The header is always {"alg":"HS512","typ":"JWT"}. The payload is a
// JSON object of scalars and arrays. The signature is HMAC-SHA-512
// over the ASCII bytes of the first two segments and their dot, keyed
// by the terminal's shared secret. This is a JWS compact
// serialization, so the codec is built on github.com/golang-jwt/jwt/v5.
//
// # Trust on receive
//
// The service answers with tokens of the same shape. [DecodePayload]
// reads the payload without checking the signature, which is what the
// deployed service expects clients to do. This is an authentication
// gap: the terminal believes whatever identity and entitlements the
// network returns. [DecodeVerified] checks the signature against the
// shared secret and is used when the operator enables response
// verification.
//
// Every error returned by this package is a *kioskerr.Error of kind
// config (missing secret) or format (anything wrong with the token).
package token
