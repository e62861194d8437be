// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package exchange

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ostara/kiosk/lib/config"
	"github.com/ostara/kiosk/lib/kioskerr"
	"github.com/ostara/kiosk/lib/token"
)

// Token payload values fixed by the service protocol.
const (
	issuer = "Ostara"

	actionGetEventTypes = "getEventTypes"
	actionGetName       = "getName"
	actionAddEvent      = "addEvent"

	// submitOK is the exact response body of a successful addEvent.
	submitOK = "OK"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// Options configures a Client.
type Options struct {
	// HTTPClient performs the round-trips. Defaults to a client with
	// a 10 second timeout.
	HTTPClient *http.Client

	// Logger defaults to a discard logger.
	Logger *slog.Logger

	// VerifyResponses makes the client check the HS512 signature on
	// response tokens against the terminal's shared secret. When
	// false, response payloads are trusted as received.
	VerifyResponses bool
}

// Client runs exchanges against the Ostara service. Only 2xx
// responses have their body read: any other status is a network error
// whatever the body says, so a 503 answering "OK" fails the submission.
// A Client is safe for concurrent use, though the session never has
// more than one exchange in flight.
type Client struct {
	httpClient      *http.Client
	logger          *slog.Logger
	verifyResponses bool
}

// NewClient returns a Client.
func NewClient(options Options) *Client {
	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		httpClient:      httpClient,
		logger:          logger,
		verifyResponses: options.VerifyResponses,
	}
}

// Authenticate resolves pin to the user's identity and permitted
// actions.
func (c *Client) Authenticate(ctx context.Context, pin PIN, cfg config.Config) (Identity, error) {
	logger := c.logger.With("exchange", "authenticate", "exchange_id", uuid.NewString())
	started := time.Now()

	pinNumber, err := pin.Number()
	if err != nil {
		return Identity{}, err
	}

	eventTypes, err := c.roundTrip(ctx, logger, cfg, token.Payload{
		"iss":    issuer,
		"client": cfg.ClientID,
		"action": actionGetEventTypes,
		"token":  pinNumber,
	})
	if err != nil {
		logger.Warn("event type lookup failed", "error", err)
		return Identity{}, err
	}
	names, ok := stringSlice(eventTypes["eventTypeNames"])
	if !ok {
		logger.Warn("event type response missing eventTypeNames")
		return Identity{}, kioskerr.Protocol("Invalid response for event types")
	}

	user, err := c.roundTrip(ctx, logger, cfg, token.Payload{
		"iss":    issuer,
		"client": cfg.ClientID,
		"action": actionGetName,
		"token":  pinNumber,
	})
	if err != nil {
		logger.Warn("user name lookup failed", "error", err)
		return Identity{}, err
	}
	name, ok := user["name"].(string)
	if !ok {
		logger.Warn("user name response missing name")
		return Identity{}, kioskerr.Protocol("Invalid response for user name")
	}

	// Casers are stateful, so each exchange gets its own.
	upper := cases.Upper(language.Und)
	actions := make([]Action, len(names))
	for index, eventType := range names {
		actions[index] = Action{ID: index + 1, Label: upper.String(eventType)}
	}

	logger.Info("authenticated",
		"actions", len(actions),
		"duration", time.Since(started),
	)
	return Identity{DisplayName: name, Actions: actions}, nil
}

// Submit records action for the user identified by pin.
func (c *Client) Submit(ctx context.Context, pin PIN, action Action, cfg config.Config) (Result, error) {
	eventType := cases.Lower(language.Und).String(action.Label)
	logger := c.logger.With("exchange", "submit", "exchange_id", uuid.NewString(), "event_type", eventType)
	started := time.Now()

	pinNumber, err := pin.Number()
	if err != nil {
		return 0, err
	}

	signed, err := token.Encode(token.Payload{
		"iss":       issuer,
		"action":    actionAddEvent,
		"token":     pinNumber,
		"client":    cfg.ClientID,
		"eventType": eventType,
	}, cfg.SharedSecret)
	if err != nil {
		return 0, err
	}

	body, err := c.get(ctx, cfg.EndpointURL, signed)
	if err != nil {
		logger.Warn("submit failed", "error", err)
		return 0, err
	}

	result := ResultFailure
	if strings.TrimSpace(body) == submitOK {
		result = ResultSuccess
	}
	logger.Info("submitted", "result", result.String(), "duration", time.Since(started))
	return result, nil
}

// roundTrip signs payload, sends it, and decodes the response token.
func (c *Client) roundTrip(ctx context.Context, logger *slog.Logger, cfg config.Config, payload token.Payload) (token.Payload, error) {
	signed, err := token.Encode(payload, cfg.SharedSecret)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, cfg.EndpointURL, signed)
	if err != nil {
		return nil, err
	}
	logger.Debug("response received", "action", payload["action"], "bytes", len(body))

	response := strings.TrimSpace(body)
	if c.verifyResponses {
		return token.DecodeVerified(response, cfg.SharedSecret)
	}
	return token.DecodePayload(response)
}

// get issues GET endpoint?token=signed and returns the body as text.
func (c *Client) get(ctx context.Context, endpoint, signed string) (string, error) {
	target, err := url.Parse(endpoint)
	if err != nil {
		return "", kioskerr.Config("invalid endpoint URL: %w", err)
	}
	query := target.Query()
	query.Set("token", signed)
	target.RawQuery = query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return "", kioskerr.Network("building request: %w", err)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", kioskerr.Network("%s", transportMessage(err))
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", kioskerr.Network("server responded %s", response.Status)
	}

	data, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return "", kioskerr.Network("reading response: %w", err)
	}
	return string(data), nil
}

// transportMessage strips the method and URL that *url.Error adds, so
// the signed token never reaches the screen or the logs.
func transportMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return "request timed out"
		}
		return urlErr.Err.Error()
	}
	return err.Error()
}

// stringSlice reports whether value is a JSON array of strings.
func stringSlice(value any) ([]string, bool) {
	items, ok := value.([]any)
	if !ok {
		return nil, false
	}
	result := make([]string, len(items))
	for index, item := range items {
		text, ok := item.(string)
		if !ok {
			return nil, false
		}
		result[index] = text
	}
	return result, true
}
