package llm

import (
	"time"

	"github.com/sandevgo/aitalk/internal/core"
)

const (
	openAIBaseURL     = "https://api.openai.com"
	openRouterBaseURL = "https://openrouter.ai/api"
)

func NewOpenAI(apiKey, model string, timeout time.Duration, maxRetries int) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Name:       "openai",
		BaseURL:    openAIBaseURL,
		APIKey:     apiKey,
		Model:      model,
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
		Timeout:    timeout,
		MaxRetries: maxRetries,
	})
}

func NewOpenRouter(apiKey, model string, timeout time.Duration, maxRetries int) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Name:       "openrouter",
		BaseURL:    openRouterBaseURL,
		APIKey:     apiKey,
		Model:      model,
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
		ExtraHeaders: map[string]string{
			"HTTP-Referer": core.AppRepositoryURL,
			"X-Title":      core.AppName,
		},
		Timeout:    timeout,
		MaxRetries: maxRetries,
	})
}

// NewOllama talks to the OpenAI compatible endpoint Ollama serves under /v1.
func NewOllama(baseURL, apiKey, model string, timeout time.Duration, maxRetries int) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Name:       "ollama",
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      model,
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
		Timeout:    timeout,
		MaxRetries: maxRetries,
	})
}

func NewCustomOpenAI(baseURL, apiKey, model string, timeout time.Duration, maxRetries int) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Name:       "custom",
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      model,
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
		Timeout:    timeout,
		MaxRetries: maxRetries,
	})
}
