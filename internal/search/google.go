// Package search finds candidate sources for a claim via web search.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/ppiankov/truthscope/internal/scrape"
)

const googleEndpoint = "https://www.googleapis.com/customsearch/v1"

// maxAPIResults is the per-request cap imposed by the Custom Search API.
const maxAPIResults = 10

// Item is one search result.
type Item struct {
	URL   string
	Title string
}

// GoogleClient queries the Google Custom Search API.
type GoogleClient struct {
	apiKey     string
	engineID   string
	baseURL    string
	httpClient *http.Client
	policy     scrape.RetryPolicy
	logger     *zap.Logger
}

// GoogleConfig holds the search client settings.
type GoogleConfig struct {
	APIKey   string
	EngineID string
	BaseURL  string // overrides the Google endpoint, for tests
	Policy   scrape.RetryPolicy
	Logger   *zap.Logger
}

// NewGoogleClient creates a search client.
func NewGoogleClient(cfg GoogleConfig) (*GoogleClient, error) {
	if cfg.APIKey == "" || cfg.EngineID == "" {
		return nil, fmt.Errorf("search API key and engine ID are required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = googleEndpoint
	}
	policy := cfg.Policy
	if policy.MaxAttempts == 0 {
		policy = scrape.DefaultRetryPolicy()
	}
	timeout := policy.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoogleClient{
		apiKey:     cfg.APIKey,
		engineID:   cfg.EngineID,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		policy:     policy,
		logger:     logger,
	}, nil
}

type searchResponse struct {
	Items []struct {
		Link  string `json:"link"`
		Title string `json:"title"`
	} `json:"items"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Search runs the query and returns up to n results. The API caps a single
// request at 10 results, so n is clamped.
func (c *GoogleClient) Search(ctx context.Context, query string, n int) ([]Item, error) {
	if n <= 0 {
		n = 2
	}
	if n > maxAPIResults {
		n = maxAPIResults
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(n))
	reqURL := c.baseURL + "?" + params.Encode()

	var parsed searchResponse
	err := c.policy.Do(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("search request: %w", err))
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("search API returned %d", resp.StatusCode))
		}

		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return fmt.Errorf("decode search response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	if parsed.Error != nil {
		msg := parsed.Error.Message
		if msg == "" {
			msg = "an error occurred"
		}
		return nil, fmt.Errorf("search API error: %s", msg)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		items = append(items, Item{URL: it.Link, Title: it.Title})
	}
	c.logger.Debug("search completed", zap.String("query", query), zap.Int("results", len(items)))
	return items, nil
}
