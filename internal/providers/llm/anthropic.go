package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sandevgo/aitalk/internal/core"
	"github.com/sandevgo/aitalk/internal/providers/api"
)

type Anthropic struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
}

type AnthropicConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	MaxTokens  int
	Timeout    time.Duration
	MaxRetries int
}

func NewAnthropic(cfg AnthropicConfig) *Anthropic {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = api.DefaultTimeout
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
		option.WithRequestTimeout(timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	c := anthropic.NewClient(opts...)
	return &Anthropic{
		client:    &c,
		model:     cfg.Model,
		maxTokens: int64(maxTokens),
	}
}

// Complete maps system messages to the system parameter; user and assistant
// turns keep their relative order.
func (a *Anthropic) Complete(ctx context.Context, messages []core.Message) (string, error) {
	if err := core.ValidateMessages(messages); err != nil {
		return "", err
	}

	var system []anthropic.TextBlockParam
	var turns []anthropic.MessageParam
	for _, m := range messages {
		switch m.Role {
		case core.RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: m.Content})
		case core.RoleUser:
			turns = append(turns, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case core.RoleAssistant:
			turns = append(turns, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	if len(turns) == 0 {
		return "", fmt.Errorf("%w: anthropic needs at least one user message", core.ErrInvalidArgument)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: a.maxTokens,
		Messages:  turns,
	}
	if len(system) > 0 {
		params.System = system
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", core.NewProviderError("anthropic", "complete", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(tb.Text)
		}
	}
	if sb.Len() == 0 {
		return "", core.NewProviderError("anthropic", "complete", fmt.Errorf("no text in response"))
	}
	return sb.String(), nil
}
