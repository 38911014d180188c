// Package apiclient is the single configured client for the portal REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/careerhub/frontdesk/internal/apperror"
	"github.com/careerhub/frontdesk/internal/logging"
	"github.com/google/uuid"
)

const (
	// TokenCookie is the cookie the portal sets at login.
	TokenCookie = "token"

	maxErrorBody = 4096
)

// Config configures a Client.
type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logging.Logger
}

// Client issues authenticated JSON calls against the portal API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logging.Logger
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:      strings.TrimSpace(cfg.Token),
		httpClient: httpClient,
		log:        log,
	}
}

// WithToken returns a copy of the client that authenticates as token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = strings.TrimSpace(token)
	return &clone
}

// HasToken reports whether the client carries session credentials.
func (c *Client) HasToken() bool {
	return c.token != ""
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, body, out)
}

// Do sends one request. A nil out discards the response body. Non-2xx
// responses become *apperror.Error carrying the server's message.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("create %s %s: %w", method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: c.token})
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("api request failed", "method", method, "path", path, "request_id", requestID, "err", err)
		return apperror.New(apperror.KindNetwork, "network error", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.log.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return apperror.FromStatus(resp.StatusCode, errorMessage(payload))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return apperror.New(apperror.KindNetwork, "invalid response from server", err)
	}
	return nil
}

func errorMessage(payload []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(parsed.Error); msg != "" {
		return msg
	}
	return strings.TrimSpace(parsed.Message)
}
