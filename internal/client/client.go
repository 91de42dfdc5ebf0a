// Package client is the typed REST client for the remote ordering backend.
// It owns request construction, bearer auth, and error mapping; domain
// packages never see HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"golang.org/x/sync/singleflight"
)

// TokenSource supplies bearer tokens for authenticated endpoints. Token
// acquisition (login, refresh, caching) belongs to the identity integration,
// outside this package.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource returning a fixed token. Useful for CLIs and
// tests.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.StatusCode, e.Message)
}

// Config holds client construction parameters.
type Config struct {
	// BaseURL is the backend root, e.g. https://api.example.com.
	BaseURL string
	// Tokens supplies bearer tokens; required for authenticated calls only.
	Tokens TokenSource
	// HTTPClient overrides the default client (10s timeout) when set.
	HTTPClient *http.Client
}

// Client talks to the ordering backend.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource

	// searchGroup collapses identical concurrent search requests into one
	// backend round trip.
	searchGroup singleflight.Group
}

// New creates a Client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		tokens:  cfg.Tokens,
	}, nil
}

// do issues a request and decodes a JSON response into out (when non-nil).
// Authenticated requests get a bearer token from the TokenSource.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, auth bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth {
		if c.tokens == nil {
			return errors.New("token source is required for authenticated calls")
		}
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return errors.Wrap(err, "acquire token")
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s %s response", method, path)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, auth bool, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", auth, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "encode request body")
	}
	return c.do(ctx, method, path, bytes.NewReader(payload), "application/json", true, out)
}

// decodeAPIError extracts an error message from a failed response. The
// backend usually sends {"message": "..."}; anything else falls back to the
// raw body or status text.
func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))

	var payload struct {
		Message string `json:"message"`
	}
	msg := ""
	if err := json.Unmarshal(raw, &payload); err == nil {
		msg = payload.Message
	}
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
