package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v9"
)

const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
	ProviderCustom     = "custom"
)

type AppConfig struct {
	RuntimePath string `env:"AITALK_RUNTIME_PATH" envDefault:".aitalk"`

	// Completion provider
	Provider   string        `env:"LLM_PROVIDER" envDefault:"openai"`
	Model      string        `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	Timeout    time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
	MaxRetries int           `env:"LLM_MAX_RETRIES" envDefault:"0"`
	MaxTokens  int           `env:"LLM_MAX_TOKENS" envDefault:"1024"`

	OpenAIAPIKey        string `env:"OPENAI_API_KEY" secret:"true"`
	AnthropicAPIKey     string `env:"ANTHROPIC_API_KEY" secret:"true"`
	OpenRouterAPIKey    string `env:"OPENROUTER_API_KEY" secret:"true"`
	OllamaBaseURL       string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey        string `env:"OLLAMA_API_KEY" secret:"true"`
	CustomOpenAIBaseURL string `env:"CUSTOM_OPENAI_BASE_URL"`
	CustomOpenAIAPIKey  string `env:"CUSTOM_OPENAI_API_KEY" secret:"true"`

	// Presentation
	RenderMarkdown bool   `env:"AITALK_RENDER_MARKDOWN" envDefault:"true"`
	DemoPath       string `env:"AITALK_DEMO_PATH"`
}

func NewAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("failed to parse app config: %w", err)
	}
	return c, nil
}

func (c AppConfig) GetRuntimePath() string {
	return resolveRuntimePath(c.RuntimePath)
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.GetRuntimePath(), ".env")
}
