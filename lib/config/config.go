// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ostara/kiosk/lib/kioskerr"
)

// Store keys for the connection configuration.
const (
	KeyEndpointURL  = "API_URL"
	KeyClientID     = "CLIENT_ID"
	KeySharedSecret = "SHARED_SECRET"
)

// Keys lists the store keys in display order.
var Keys = []string{KeyEndpointURL, KeyClientID, KeySharedSecret}

// Store is an opaque string key-value store. Get reports found=false
// for a key that has never been set; err is reserved for failures of
// the store itself.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Config is the connection configuration of one terminal.
type Config struct {
	// EndpointURL is the single HTTP endpoint every exchange calls.
	EndpointURL string

	// ClientID identifies this terminal to the service. It is sent as
	// a JSON number in every token.
	ClientID int64

	// SharedSecret keys the HS512 signature on outgoing tokens.
	SharedSecret []byte
}

// String redacts the shared secret.
func (c Config) String() string {
	return fmt.Sprintf("endpoint=%s client=%d secret=<%d bytes>", c.EndpointURL, c.ClientID, len(c.SharedSecret))
}

// Load reads the three connection keys from store and validates them.
// The endpoint and client id are trimmed; the shared secret is kept
// byte for byte since it keys the HMAC.
// A missing, empty, or malformed key yields a kioskerr config error
// naming the key. Store failures are returned wrapped, unclassified.
func Load(ctx context.Context, store Store) (Config, error) {
	values := make(map[string]string, len(Keys))
	for _, key := range Keys {
		value, found, err := store.Get(ctx, key)
		if err != nil {
			return Config{}, fmt.Errorf("reading %s from config store: %w", key, err)
		}
		if !found || strings.TrimSpace(value) == "" {
			return Config{}, kioskerr.Config("%s is not configured", key)
		}
		values[key] = value
	}

	endpoint, err := ValidateEndpointURL(values[KeyEndpointURL])
	if err != nil {
		return Config{}, err
	}
	clientID, err := ParseClientID(values[KeyClientID])
	if err != nil {
		return Config{}, err
	}

	return Config{
		EndpointURL:  endpoint,
		ClientID:     clientID,
		SharedSecret: []byte(values[KeySharedSecret]),
	}, nil
}

// Save writes cfg's three keys to store.
func Save(ctx context.Context, store Store, cfg Config) error {
	entries := [][2]string{
		{KeyEndpointURL, cfg.EndpointURL},
		{KeyClientID, strconv.FormatInt(cfg.ClientID, 10)},
		{KeySharedSecret, string(cfg.SharedSecret)},
	}
	for _, entry := range entries {
		if err := store.Set(ctx, entry[0], entry[1]); err != nil {
			return fmt.Errorf("writing %s to config store: %w", entry[0], err)
		}
	}
	return nil
}

// ValidateEndpointURL checks that raw is an absolute http or https
// URL and returns it trimmed.
func ValidateEndpointURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", kioskerr.Config("%s is not a valid URL: %w", KeyEndpointURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", kioskerr.Config("%s must be an http or https URL, got %q", KeyEndpointURL, raw)
	}
	if parsed.Host == "" {
		return "", kioskerr.Config("%s has no host: %q", KeyEndpointURL, raw)
	}
	return raw, nil
}

// ParseClientID parses the decimal client identifier.
func ParseClientID(raw string) (int64, error) {
	clientID, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, kioskerr.Config("%s must be an integer, got %q", KeyClientID, raw)
	}
	return clientID, nil
}
