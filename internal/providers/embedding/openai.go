package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/aitalk/internal/core"
	"github.com/sandevgo/aitalk/internal/providers/api"
)

// OpenAICompatible calls POST /v1/embeddings. OpenAI, Ollama and most
// self-hosted gateways speak this dialect.
type OpenAICompatible struct {
	name       string
	model      string
	dimensions int
	client     *api.Client
}

type OpenAICompatibleConfig struct {
	Name       string
	BaseURL    string
	APIKey     string
	Model      string
	Dimensions int
	Timeout    time.Duration
	MaxRetries int
}

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	return &OpenAICompatible{
		name:       cfg.Name,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
		client: api.NewClient(api.Config{
			BaseURL:    cfg.BaseURL,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
			APIKey:     cfg.APIKey,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
		}),
	}
}

type embeddingRequest struct {
	Model      string `json:"model"`
	Input      string `json:"input"`
	Dimensions int    `json:"dimensions,omitempty"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (o *OpenAICompatible) Name() string {
	return o.name
}

func (o *OpenAICompatible) Embed(ctx context.Context, text string) ([]float32, error) {
	req := embeddingRequest{Model: o.model, Input: text, Dimensions: o.dimensions}

	var result embeddingResponse
	if err := o.client.PostJSON(ctx, "/v1/embeddings", req, &result); err != nil {
		return nil, core.NewProviderError(o.name, "embed", err)
	}
	if len(result.Data) == 0 || len(result.Data[0].Embedding) == 0 {
		return nil, core.NewProviderError(o.name, "embed", fmt.Errorf("empty embedding in response"))
	}
	return result.Data[0].Embedding, nil
}
