package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	IndexBackendMemory = "memory"
	IndexBackendSQLite = "sqlite"
)

type EmbeddingConfig struct {
	Provider       string        `env:"EMBEDDING_PROVIDER" envDefault:"openai"`
	Model          string        `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	BaseURL        string        `env:"EMBEDDING_BASE_URL"`
	APIKey         string        `env:"EMBEDDING_API_KEY" secret:"true"`
	Dimensions     int           `env:"EMBEDDING_DIMENSIONS" envDefault:"0"`
	MaxInputTokens int           `env:"EMBEDDING_MAX_INPUT_TOKENS" envDefault:"8191"`
	Workers        int           `env:"EMBEDDING_WORKERS" envDefault:"1"`
	Timeout        time.Duration `env:"EMBEDDING_TIMEOUT" envDefault:"30s"`
	MaxRetries     int           `env:"EMBEDDING_MAX_RETRIES" envDefault:"0"`

	IndexBackend string `env:"INDEX_BACKEND" envDefault:"memory"`

	// Shared with the completion side when no dedicated key is set.
	OpenAIAPIKey  string `env:"OPENAI_API_KEY" secret:"true"`
	OllamaBaseURL string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
}

func NewEmbeddingConfig() (*EmbeddingConfig, error) {
	cfg, err := env.ParseAs[EmbeddingConfig]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c EmbeddingConfig) Validate() error {
	switch c.IndexBackend {
	case IndexBackendMemory, IndexBackendSQLite:
	default:
		return fmt.Errorf("unknown index backend: %s", c.IndexBackend)
	}
	if c.Workers < 1 {
		return fmt.Errorf("EMBEDDING_WORKERS must be at least 1, got %d", c.Workers)
	}
	if c.Dimensions < 0 {
		return fmt.Errorf("EMBEDDING_DIMENSIONS must not be negative, got %d", c.Dimensions)
	}
	return nil
}

func (c EmbeddingConfig) GetAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return c.OpenAIAPIKey
}
