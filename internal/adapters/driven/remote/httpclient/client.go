// Package httpclient provides a RemoteStore adapter backed by the
// annotation HTTP API.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/redlinehq/redline/internal/core/domain"
	"github.com/redlinehq/redline/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.RemoteStore = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:8335"
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the annotation API client.
type Config struct {
	// BaseURL is the API base URL (default: http://localhost:8335).
	BaseURL string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// RateLimit bounds the request rate. Zero values use DefaultRateLimit.
	RateLimit RateLimitConfig
}

// Client talks to the annotation HTTP API. Responses with status 404
// map to domain.ErrNotFound; transport failures and 5xx responses wrap
// domain.ErrRemoteUnavailable so callers can treat them uniformly.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *RateLimiter
}

// errorResponse is the API error payload.
type errorResponse struct {
	Error string `json:"error"`
}

// NewClient creates a new annotation API client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		limiter: NewRateLimiter(cfg.RateLimit),
	}
}

// Fetch returns all annotations for a document.
func (c *Client) Fetch(ctx context.Context, documentID string) ([]domain.Annotation, error) {
	endpoint := c.baseURL + "/api/annotations"
	if documentID != "" {
		endpoint += "?documentId=" + url.QueryEscape(documentID)
	}

	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}

	var annotations []domain.Annotation
	if err := json.NewDecoder(resp.Body).Decode(&annotations); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return annotations, nil
}

// Create persists a draft and returns the created record.
func (c *Client) Create(ctx context.Context, draft *domain.Annotation) (*domain.Annotation, error) {
	resp, err := c.do(ctx, http.MethodPost, c.baseURL+"/api/annotations", draft)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, http.StatusCreated); err != nil {
		return nil, err
	}

	var created domain.Annotation
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &created, nil
}

// Update applies a partial patch and returns the full updated record.
func (c *Client) Update(ctx context.Context, id string, patch *domain.AnnotationPatch) (*domain.Annotation, error) {
	endpoint := c.baseURL + "/api/annotations/" + url.PathEscape(id)
	resp, err := c.do(ctx, http.MethodPut, endpoint, patch)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}

	var updated domain.Annotation
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &updated, nil
}

// Delete removes the annotation with the given ID.
func (c *Client) Delete(ctx context.Context, id string) error {
	endpoint := c.baseURL + "/api/annotations/" + url.PathEscape(id)
	resp, err := c.do(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.checkStatus(resp, http.StatusNoContent)
}

// do sends one rate-limited request with an optional JSON body.
func (c *Client) do(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	return resp, nil
}

// checkStatus maps non-success statuses to domain errors. The caller
// still owns the body.
func (c *Client) checkStatus(resp *http.Response, want int) error {
	if resp.StatusCode == want {
		return nil
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		c.limiter.RecordRateLimitError(retryAfter)
		return fmt.Errorf("%w: rate limited (status 429)", domain.ErrRemoteUnavailable)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: server error (status %d)", domain.ErrRemoteUnavailable, resp.StatusCode)
	}

	var apiErr errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
		return fmt.Errorf("%w: %s (status %d)", domain.ErrInvalidInput, apiErr.Error, resp.StatusCode)
	}
	return fmt.Errorf("%w: unexpected status %d", domain.ErrInvalidInput, resp.StatusCode)
}
