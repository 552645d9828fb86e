package llm

import (
	"context"
	"fmt"
	"strings"

	"prompt-insights/pkg/config"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client    *genai.Client
	modelName string
	logger    *zap.Logger
}

func NewGeminiClient(ctx context.Context, cfg *config.GeminiConfig, logger *zap.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	logger.Info("Gemini client initialized", zap.String("model", cfg.Model))

	return &GeminiClient{
		client:    client,
		modelName: cfg.Model,
		logger:    logger,
	}, nil
}

func (c *GeminiClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	model := c.client.GenerativeModel(c.modelName)
	model.SetTemperature(float32(opts.Temperature))
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini generate failed: %w", err)
	}

	text := geminiText(resp)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return strings.TrimSpace(sb.String())
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}
