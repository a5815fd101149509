package brainapi

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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client is the single point of contact with the brain API. Every dashboard
// page talks to the backend exclusively through it.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *zap.Logger
}

// New builds the client wrapper. baseURL is the fixed API origin.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the configured API origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do issues one request and normalizes the outcome: transport failures become
// *NetworkError, non-2xx responses become *APIError with the server detail,
// and a 204 or empty body yields a nil byte slice without touching the JSON
// decoder.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("brainapi: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Warn("brain api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(data, &payload) == nil {
			apiErr.Detail = payload.Detail
		}
		c.logger.Warn("brain api returned non-success",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return nil, apiErr
	}

	if resp.StatusCode == http.StatusNoContent || len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	return decode[T](c.do(ctx, http.MethodGet, path, query, nil))
}

func postJSON[T any](ctx context.Context, c *Client, path string, body interface{}) (T, error) {
	return decode[T](c.do(ctx, http.MethodPost, path, nil, body))
}

func patchJSON[T any](ctx context.Context, c *Client, path string, body interface{}) (T, error) {
	return decode[T](c.do(ctx, http.MethodPatch, path, nil, body))
}

func decode[T any](data []byte, err error) (T, error) {
	var out T
	if err != nil {
		return out, err
	}
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("brainapi: decode response: %w", err)
	}
	return out, nil
}
