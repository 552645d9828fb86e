package llm

import (
	"context"
	"fmt"
	"strings"

	"prompt-insights/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

const gigaChatSystemInstruction = "You are a careful data analyst who writes MySQL and explains query results for business users. Answer only with what is asked."

type GigaChatClient struct {
	client    *gigago.Client
	modelName string
	logger    *zap.Logger
}

func NewGigaChatClient(ctx context.Context, cfg *config.GigaChatConfig, logger *zap.Logger) (*GigaChatClient, error) {
	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	logger.Info("GigaChat client initialized", zap.String("model", cfg.Model))

	return &GigaChatClient{
		client:    client,
		modelName: cfg.Model,
		logger:    logger,
	}, nil
}

func (c *GigaChatClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	// a model per call keeps temperature changes off shared state
	model := c.client.GenerativeModel(c.modelName)
	configureGigaChatModel(model, opts)

	resp, err := model.Generate(ctx, []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	})
	if err != nil {
		return "", fmt.Errorf("GigaChat generate failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// configureGigaChatModel applies the per-call options. Without a ceiling the
// model keeps gigago's own token default.
func configureGigaChatModel(model *gigago.GenerativeModel, opts Options) {
	model.SystemInstruction = gigaChatSystemInstruction
	model.Temperature = opts.Temperature
	if opts.MaxTokens > 0 {
		model.MaxTokens = int32(opts.MaxTokens)
	}
}

func (c *GigaChatClient) Close() error {
	if c.client != nil {
		c.client.Close()
	}
	return nil
}
