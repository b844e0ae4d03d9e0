// Package embed provides the embedding capability behind the semantic
// similarity strategy.
package embed

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Client is an embedding provider using the OpenAI-compatible API
type Client struct {
	client *openai.Client
	model  openai.EmbeddingModel
	logger *zap.Logger
}

// Config holds the embedding provider settings
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewClient creates an embedding client
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embedding API key is required")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  openai.EmbeddingModel(model),
		logger: logger,
	}, nil
}

// Embed returns the embedding vector for a text
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:          []string{text},
		Model:          c.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}
	return resp.Data[0].Embedding, nil
}

// Available checks that the embedding API is reachable. The result decides
// the similarity strategy for the whole process, once at startup.
func (c *Client) Available(ctx context.Context) bool {
	if _, err := c.client.ListModels(ctx); err != nil {
		c.logger.Warn("embedding API check failed", zap.Error(err))
		return false
	}
	return true
}
