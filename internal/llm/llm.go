// Package llm hides the chat-completion providers behind a single prompt-in,
// text-out interface.
package llm

import (
	"context"
	"fmt"

	"prompt-insights/pkg/config"

	"go.uber.org/zap"
)

// Options tunes a single completion.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Completer sends one prompt and returns the model's text.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}

// Client is a Completer that owns network resources.
type Client interface {
	Completer
	Close() error
}

// New returns the provider selected by cfg.LLM.Provider.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Client, error) {
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI, "":
		return NewOpenAIClient(&cfg.LLM, logger), nil
	case config.ProviderGigaChat:
		return NewGigaChatClient(ctx, &cfg.GigaChat, logger)
	case config.ProviderGemini:
		return NewGeminiClient(ctx, &cfg.Gemini, logger)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}
