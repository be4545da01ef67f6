package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/aitalk/internal/config"
	"github.com/sandevgo/aitalk/internal/core"
	"github.com/sandevgo/aitalk/pkg/log"
)

// NewProvider creates the Completer selected by configuration.
func NewProvider(ctx context.Context, cfg *config.AppConfig) (core.Completer, error) {
	log.FromCtx(ctx).Debug().
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Msg("starting llm provider")

	requireKey := func(key, name string) error {
		if key == "" {
			return fmt.Errorf("%s is not set for llm provider %q", name, cfg.Provider)
		}
		return nil
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		if err := requireKey(cfg.OpenAIAPIKey, "OPENAI_API_KEY"); err != nil {
			return nil, err
		}
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.Model, cfg.Timeout, cfg.MaxRetries), nil
	case config.ProviderAnthropic:
		if err := requireKey(cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY"); err != nil {
			return nil, err
		}
		return NewAnthropic(AnthropicConfig{
			APIKey:     cfg.AnthropicAPIKey,
			Model:      cfg.Model,
			MaxTokens:  cfg.MaxTokens,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
		}), nil
	case config.ProviderOpenRouter:
		if err := requireKey(cfg.OpenRouterAPIKey, "OPENROUTER_API_KEY"); err != nil {
			return nil, err
		}
		return NewOpenRouter(cfg.OpenRouterAPIKey, cfg.Model, cfg.Timeout, cfg.MaxRetries), nil
	case config.ProviderOllama:
		return NewOllama(cfg.OllamaBaseURL, cfg.OllamaAPIKey, cfg.Model, cfg.Timeout, cfg.MaxRetries), nil
	case config.ProviderCustom:
		if cfg.CustomOpenAIBaseURL == "" {
			return nil, fmt.Errorf("CUSTOM_OPENAI_BASE_URL is not set for llm provider %q", cfg.Provider)
		}
		return NewCustomOpenAI(cfg.CustomOpenAIBaseURL, cfg.CustomOpenAIAPIKey, cfg.Model, cfg.Timeout, cfg.MaxRetries), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
