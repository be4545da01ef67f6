package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/aitalk/internal/config"
	"github.com/sandevgo/aitalk/pkg/log"
)

const openAIBaseURL = "https://api.openai.com"

// NewEmbedder creates the guarded Embedder selected by configuration.
func NewEmbedder(ctx context.Context, cfg *config.EmbeddingConfig) (*Embedder, error) {
	log.FromCtx(ctx).Debug().
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Msg("starting embedding provider")

	pc := OpenAICompatibleConfig{
		Name:       cfg.Provider,
		APIKey:     cfg.GetAPIKey(),
		Model:      cfg.Model,
		Dimensions: cfg.Dimensions,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		if pc.APIKey == "" {
			return nil, fmt.Errorf("EMBEDDING_API_KEY or OPENAI_API_KEY is not set")
		}
		pc.BaseURL = firstNonEmpty(cfg.BaseURL, openAIBaseURL)
	case config.ProviderOllama:
		pc.BaseURL = firstNonEmpty(cfg.BaseURL, cfg.OllamaBaseURL)
	case config.ProviderCustom:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("EMBEDDING_BASE_URL is not set for embedding provider %q", cfg.Provider)
		}
		pc.BaseURL = cfg.BaseURL
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
	pc.BaseURL = strings.TrimRight(pc.BaseURL, "/")

	return New(
		NewOpenAICompatible(pc),
		WithMaxInputTokens(cfg.MaxInputTokens),
		WithDimensions(cfg.Dimensions),
	), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
