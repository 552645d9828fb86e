package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"prompt-insights/pkg/config"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

var ErrEmptyCompletion = errors.New("model returned no choices")

// OpenAIClient talks to any OpenAI-compatible /chat/completions endpoint.
type OpenAIClient struct {
	client     *openai.Client
	httpClient *http.Client
	model      string
	logger     *zap.Logger
}

func NewOpenAIClient(cfg *config.LLMConfig, logger *zap.Logger) *OpenAIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if base := strings.TrimRight(cfg.BaseURL, "/"); base != "" {
		clientCfg.BaseURL = base
	}
	clientCfg.HTTPClient = httpClient

	return &OpenAIClient{
		client:     openai.NewClientWithConfig(clientCfg),
		httpClient: httpClient,
		model:      cfg.Model,
		logger:     logger,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: requestTemperature(opts.Temperature),
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			c.logger.Warn("Chat completion returned error status",
				zap.Int("status", apiErr.HTTPStatusCode),
				zap.String("message", truncate(apiErr.Message, 500)),
			)
		}
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	c.logger.Debug("Chat completion finished",
		zap.String("model", c.model),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.Duration("took", time.Since(start)),
	)

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *OpenAIClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// requestTemperature keeps a zero temperature on the wire. The request field
// is omitted when empty and the server default would apply instead.
func requestTemperature(t float64) float32 {
	if t <= 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}

// truncate cuts s to at most n bytes without splitting a character.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
