// Package scrape provides the article extraction boundary: a client for the
// extraction service, a built-in implementation of that service, and the
// HTML-to-text extraction behind it.
package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/ppiankov/truthscope/internal/cache"
)

// Article is the extraction service payload: preprocessed head and body
// text, or an error reported by the service itself.
type Article struct {
	Head  string `json:"head"`
	Body  string `json:"body,omitempty"`
	Error string `json:"error,omitempty"`
}

// Client talks to the article extraction service over HTTP.
type Client struct {
	endpoint     string
	httpClient   *http.Client
	policy       RetryPolicy
	cache        cache.Cache
	cacheTTL     time.Duration
	probeTimeout time.Duration
	logger       *zap.Logger
}

// ClientConfig holds the extraction client settings.
type ClientConfig struct {
	Endpoint     string
	Policy       RetryPolicy
	Cache        cache.Cache
	CacheTTL     time.Duration
	ProbeTimeout time.Duration
	Logger       *zap.Logger
}

// NewClient creates an extraction client.
func NewClient(cfg ClientConfig) *Client {
	policy := cfg.Policy
	if policy.MaxAttempts == 0 {
		policy = DefaultRetryPolicy()
	}
	timeout := policy.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	probeTimeout := cfg.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = 2 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:     cfg.Endpoint,
		httpClient:   &http.Client{Timeout: timeout},
		policy:       policy,
		cache:        cfg.Cache,
		cacheTTL:     cfg.CacheTTL,
		probeTimeout: probeTimeout,
		logger:       logger,
	}
}

// Extract asks the service for the article at rawURL. Responses are cached
// by URL so repeated analyses do not re-fetch the same page.
func (c *Client) Extract(ctx context.Context, rawURL string) (*Article, error) {
	if c.cache != nil {
		if data, found := c.cache.Get(cache.Key(rawURL)); found {
			var art Article
			if err := json.Unmarshal(data, &art); err == nil {
				return &art, nil
			}
		}
	}

	payload, err := json.Marshal(map[string]string{"url": rawURL})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var art Article
	err = c.policy.Do(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("scraper request: %w", err))
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("scraper returned %d", resp.StatusCode))
		}
		if resp.StatusCode >= 400 {
			return fmt.Errorf("scraper returned %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("read response: %w", err))
		}
		if err := json.Unmarshal(body, &art); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if art.Error != "" {
		return nil, fmt.Errorf("scraper: %s", art.Error)
	}

	if c.cache != nil {
		if data, err := json.Marshal(&art); err == nil {
			_ = c.cache.Set(cache.Key(rawURL), data, c.cacheTTL)
		}
	}
	return &art, nil
}

// Probe reports whether the extraction service is reachable. Any HTTP
// response counts as alive, even an error status; only transport failures
// mean the service is down. The check uses a short timeout so a dead
// service fails the whole batch quickly instead of once per URL.
func (c *Client) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	payload := []byte(`{"url":"https://example.com"}`)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("scraper service unavailable", zap.String("endpoint", c.endpoint), zap.Error(err))
		return false
	}
	_ = resp.Body.Close()
	return true
}
