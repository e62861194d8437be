// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ostara/kiosk/lib/kioskerr"
)

// Payload is the decoded body of a token. Values are string, bool,
// int64, float64, nil, []any, or map[string]any.
type Payload map[string]any

// segmentCount is the number of dot-separated segments in a token.
const segmentCount = 3

// segmentParser decodes base64url segments. Padding is tolerated on
// input so that servers which pad their output still interoperate.
var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// Encode signs payload with secret and returns the compact token.
// The payload map is copied; the caller's map is not modified.
func Encode(payload Payload, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", kioskerr.Config("shared secret is not configured")
	}

	claims := make(jwt.MapClaims, len(payload))
	for key, value := range payload {
		claims[key] = value
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(secret)
	if err != nil {
		return "", kioskerr.Format("signing token: %w", err)
	}
	return signed, nil
}

// DecodePayload returns the payload of token without verifying its
// signature. See the package documentation for why.
func DecodePayload(token string) (Payload, error) {
	segments, err := split(token)
	if err != nil {
		return nil, err
	}

	raw, err := segmentParser.DecodeSegment(segments[1])
	if err != nil {
		return nil, kioskerr.Format("decoding token payload: %w", err)
	}
	return parsePayload(raw)
}

// DecodeVerified returns the payload of token after checking that its
// signature is a valid HS512 MAC under secret.
func DecodeVerified(token string, secret []byte) (Payload, error) {
	if len(secret) == 0 {
		return nil, kioskerr.Config("shared secret is not configured")
	}
	if _, err := split(token); err != nil {
		return nil, err
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithoutClaimsValidation(),
		jwt.WithPaddingAllowed(),
		jwt.WithJSONNumber(),
	)
	_, err := parser.ParseWithClaims(token, jwt.MapClaims{}, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		return nil, mapJWTError(err)
	}

	// jwt stops reading claims after the first JSON value; the strict
	// parse rejects trailing data the same way the unverified path does.
	return DecodePayload(token)
}

// split checks that token has exactly three non-empty segments.
func split(token string) ([]string, error) {
	segments := strings.Split(token, ".")
	if len(segments) != segmentCount {
		return nil, kioskerr.Format("token has %d segments, want %d", len(segments), segmentCount)
	}
	for index, segment := range segments {
		if segment == "" {
			return nil, kioskerr.Format("token segment %d is empty", index+1)
		}
	}
	return segments, nil
}

func parsePayload(raw []byte) (Payload, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var object map[string]any
	if err := decoder.Decode(&object); err != nil {
		return nil, kioskerr.Format("parsing token payload: %w", err)
	}
	if object == nil {
		return nil, kioskerr.Format("token payload is not a JSON object")
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, kioskerr.Format("token payload has trailing data")
	}

	payload := make(Payload, len(object))
	for key, value := range object {
		payload[key] = normalize(value)
	}
	return payload, nil
}

// normalize converts json.Number leaves to int64 when integral and
// float64 otherwise.
func normalize(value any) any {
	switch typed := value.(type) {
	case json.Number:
		if integer, err := typed.Int64(); err == nil {
			return integer
		}
		if float, err := typed.Float64(); err == nil {
			return float
		}
		return typed.String()
	case []any:
		for index := range typed {
			typed[index] = normalize(typed[index])
		}
		return typed
	case map[string]any:
		for key := range typed {
			typed[key] = normalize(typed[key])
		}
		return typed
	default:
		return value
	}
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return kioskerr.Format("token signature is invalid: %w", err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return kioskerr.Format("token uses an unexpected signing method: %w", err)
	default:
		return kioskerr.Format("token is malformed: %w", err)
	}
}
