// Package api is the JSON-over-HTTP plumbing shared by the completion and
// embedding providers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandevgo/aitalk/pkg/retry"
)

const DefaultTimeout = 60 * time.Second

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Code, e.Body)
}

// Retryable reports whether another attempt could succeed: throttling, server
// errors and transport failures, never caller cancellation.
func Retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= http.StatusInternalServerError
	}
	return true
}

type Config struct {
	BaseURL    string
	AuthHeader string // e.g., "Authorization"
	AuthPrefix string // e.g., "Bearer "
	APIKey     string
	Headers    map[string]string
	Timeout    time.Duration
	MaxRetries int
}

type Client struct {
	http    *http.Client
	baseURL string
	headers map[string]string
	timeout time.Duration
	retrier *retry.Retrier
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	headers := make(map[string]string, len(cfg.Headers)+1)
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	if cfg.AuthHeader != "" && cfg.APIKey != "" {
		headers[cfg.AuthHeader] = cfg.AuthPrefix + cfg.APIKey
	}

	rc := retry.WithMaxRetries(cfg.MaxRetries)
	rc.Retryable = Retryable

	return &Client{
		http:    &http.Client{},
		baseURL: cfg.BaseURL,
		headers: headers,
		timeout: timeout,
		retrier: retry.NewRetrier(rc),
	}
}

// PostJSON sends body and decodes a 200 response into out. Each attempt gets its
// own timeout.
func (c *Client) PostJSON(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	return c.retrier.Do(ctx, func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		for k, v := range c.headers {
			req.Header.Set(k, v)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("request: %w", err)
		}
		defer resp.Body.Close()

		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return &StatusError{Code: resp.StatusCode, Body: string(payload)}
		}
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		return nil
	})
}

func (c *Client) BaseURL() string {
	return c.baseURL
}
