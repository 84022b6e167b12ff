// Package client is the operator console's REST client for the admin API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/vinodtana/ai-tools-admin-web/internal/httpclient"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/retry"
)

// ErrUnauthorized means the session token is missing, invalid or expired.
var ErrUnauthorized = errors.New("unauthorized")

const maxErrorBody = 64 << 10

// APIError is a non-2xx answer. It unwraps to the matching models sentinel.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return models.ErrNotFound
	case http.StatusConflict:
		return models.ErrAlreadyExists
	case http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return nil
	}
}

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	retry   retry.Config
	log     logger.Logger

	mu    sync.RWMutex
	token string
}

// New targets baseURL (".../api/v1"). A nil httpc gets a pooled default client.
func New(baseURL string, httpc *http.Client, log logger.Logger) *Client {
	if httpc == nil {
		httpc = httpclient.New(nil)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpc,
		retry:   retry.DefaultConfig(),
		log:     log,
	}
}

// WithRetry replaces the backoff used for GET requests.
func (c *Client) WithRetry(cfg retry.Config) *Client {
	c.retry = cfg
	return c
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do sends one request and decodes the JSON answer into out. GETs are
// retried on transport errors and 5xx answers; writes are sent once.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		if raw, ok := body.(json.RawMessage); ok {
			payload = raw
		} else {
			var err error
			if payload, err = json.Marshal(body); err != nil {
				return fmt.Errorf("encode request: %w", err)
			}
		}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	attempt := func() error {
		return c.send(ctx, method, target, payload, out)
	}
	if method != http.MethodGet {
		return attempt()
	}
	return retry.Do(ctx, c.retry, attempt)
}

func (c *Client) send(ctx context.Context, method, target string, payload []byte, out any) error {
	var reader io.Reader = http.NoBody
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return retry.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := decodeError(resp)
		c.log.Debug("API request failed",
			logger.String("method", method),
			logger.String("url", target),
			logger.Int("status", resp.StatusCode),
		)
		if resp.StatusCode >= http.StatusInternalServerError {
			return retry.Retryable(apiErr)
		}
		return retry.Permanent(apiErr)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return retry.Permanent(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func decodeError(resp *http.Response) *APIError {
	var body struct {
		Error   string          `json:"error"`
		Details json.RawMessage `json:"details"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Status: resp.StatusCode}
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Message = body.Error
		if len(body.Details) > 0 && string(body.Details) != "null" {
			apiErr.Message += ": " + detailText(body.Details)
		}
	}
	return apiErr
}

func detailText(raw json.RawMessage) string {
	var fields models.ValidationErrors
	if json.Unmarshal(raw, &fields) == nil && len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			parts = append(parts, f.Field+" "+f.Message)
		}
		return strings.Join(parts, ", ")
	}
	var text string
	if json.Unmarshal(raw, &text) == nil {
		return text
	}
	return string(raw)
}

// Signin exchanges credentials for a token and keeps it for later calls.
func (c *Client) Signin(ctx context.Context, req models.SigninRequest) (*models.SigninResponse, error) {
	var out struct {
		Data models.SigninResponse `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/signin", nil, req, &out); err != nil {
		return nil, unwrapRetry(err)
	}
	c.SetToken(out.Data.Token)
	return &out.Data, nil
}

func (c *Client) Me(ctx context.Context) (*models.SessionUser, error) {
	var out struct {
		Data models.SessionUser `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, unwrapRetry(err)
	}
	return &out.Data, nil
}

func (c *Client) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var out struct {
		Data models.Dashboard `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, nil, &out); err != nil {
		return nil, unwrapRetry(err)
	}
	return &out.Data, nil
}

// unwrapRetry drops the retry wrappers so callers see the API error text.
func unwrapRetry(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && !errors.Is(err, retry.ErrMaxAttemptsExceeded) {
		return apiErr
	}
	return err
}
