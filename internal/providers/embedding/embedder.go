package embedding

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sandevgo/aitalk/internal/core"
	"github.com/sandevgo/aitalk/pkg/log"
)

// Provider is a raw embedding backend.
type Provider interface {
	Name() string
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Embedder guards a Provider: it rejects unusable input before the network call
// and pins the vector dimensionality for the lifetime of the instance.
type Embedder struct {
	provider  Provider
	tokens    TokenCounter
	maxTokens int

	mu   sync.Mutex
	dims int
}

type Option func(*Embedder)

// WithMaxInputTokens enables the input-size guard. 0 disables it.
func WithMaxInputTokens(n int) Option {
	return func(e *Embedder) { e.maxTokens = n }
}

// WithTokenCounter replaces the default tiktoken counter.
func WithTokenCounter(tc TokenCounter) Option {
	return func(e *Embedder) { e.tokens = tc }
}

// WithDimensions pins the expected dimensionality up front.
func WithDimensions(n int) Option {
	return func(e *Embedder) { e.dims = n }
}

func New(provider Provider, opts ...Option) *Embedder {
	e := &Embedder{provider: provider}
	for _, opt := range opts {
		opt(e)
	}
	if e.maxTokens > 0 && e.tokens == nil {
		e.tokens = newTiktokenCounter()
	}
	return e
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text", core.ErrInvalidArgument)
	}
	if err := e.checkTokens(ctx, text); err != nil {
		return nil, err
	}

	vec, err := e.provider.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := e.checkDims(len(vec)); err != nil {
		return nil, err
	}
	return vec, nil
}

// Dimensions returns the pinned dimensionality, 0 until the first vector.
func (e *Embedder) Dimensions() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dims
}

func (e *Embedder) checkTokens(ctx context.Context, text string) error {
	if e.maxTokens <= 0 {
		return nil
	}

	n, err := e.tokens.Count(text)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("token guard skipped")
		return nil
	}
	if n > e.maxTokens {
		return fmt.Errorf("%w: text has %d tokens, limit is %d", core.ErrInvalidArgument, n, e.maxTokens)
	}
	return nil
}

func (e *Embedder) checkDims(n int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dims == 0 {
		e.dims = n
		return nil
	}
	if n != e.dims {
		return core.NewProviderError(e.provider.Name(), "embed",
			fmt.Errorf("dimension mismatch: got %d, expected %d", n, e.dims))
	}
	return nil
}
