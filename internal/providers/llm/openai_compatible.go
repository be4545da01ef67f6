package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/aitalk/internal/core"
	"github.com/sandevgo/aitalk/internal/providers/api"
)

type OpenAICompatible struct {
	name   string
	model  string
	client *api.Client
}

type OpenAICompatibleConfig struct {
	Name         string
	BaseURL      string
	APIKey       string
	Model        string
	AuthHeader   string // e.g., "Authorization"
	AuthPrefix   string // e.g., "Bearer "
	ExtraHeaders map[string]string
	Timeout      time.Duration
	MaxRetries   int
}

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	return &OpenAICompatible{
		name:  cfg.Name,
		model: cfg.Model,
		client: api.NewClient(api.Config{
			BaseURL:    cfg.BaseURL,
			AuthHeader: cfg.AuthHeader,
			AuthPrefix: cfg.AuthPrefix,
			APIKey:     cfg.APIKey,
			Headers:    cfg.ExtraHeaders,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
		}),
	}
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []core.Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message core.Message `json:"message"`
	} `json:"choices"`
}

// Complete sends the messages in the given order and returns the first choice.
func (o *OpenAICompatible) Complete(ctx context.Context, messages []core.Message) (string, error) {
	if err := core.ValidateMessages(messages); err != nil {
		return "", err
	}

	var result chatResponse
	err := o.client.PostJSON(ctx, "/v1/chat/completions", chatRequest{Model: o.model, Messages: messages}, &result)
	if err != nil {
		return "", core.NewProviderError(o.name, "complete", err)
	}
	if len(result.Choices) == 0 {
		return "", core.NewProviderError(o.name, "complete", fmt.Errorf("empty choices"))
	}
	return result.Choices[0].Message.Content, nil
}
