package keywords

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIExtractor derives keyphrases with a chat model. It is capability
// gated: the caller probes Available once at startup and falls back to the
// statistical extractor when the API is not reachable.
type OpenAIExtractor struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// OpenAIConfig holds the LLM extractor settings
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewOpenAIExtractor creates an LLM-backed keyphrase extractor
func NewOpenAIExtractor(cfg OpenAIConfig) (*OpenAIExtractor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAIExtractor{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger,
	}, nil
}

// Available checks that the API is reachable (lightweight ListModels call)
func (e *OpenAIExtractor) Available(ctx context.Context) bool {
	if _, err := e.client.ListModels(ctx); err != nil {
		e.logger.Warn("OpenAI API check failed", zap.Error(err))
		return false
	}
	return true
}

// Extract asks the model for salient keyphrases, one per line
func (e *OpenAIExtractor) Extract(ctx context.Context, text string, topN, maxWords int) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	prompt := fmt.Sprintf(
		"Extract up to %d salient keyphrases from the following text. "+
			"Each keyphrase must be at most %d words, taken verbatim from the text. "+
			"Return one keyphrase per line with no numbering or punctuation.\n\nText: %s",
		topN, maxWords, text)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   200,
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("keyphrase extraction: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("keyphrase extraction: empty response")
	}

	var phrases []string
	for _, line := range strings.Split(resp.Choices[0].Message.Content, "\n") {
		phrase := strings.TrimSpace(strings.TrimLeft(line, "-*• \t"))
		if phrase == "" {
			continue
		}
		if words := strings.Fields(phrase); len(words) > maxWords {
			phrase = strings.Join(words[:maxWords], " ")
		}
		phrases = append(phrases, phrase)
		if len(phrases) == topN {
			break
		}
	}
	return phrases, nil
}
