// Package index is an exhaustive cosine-similarity index over short texts.
package index

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/sandevgo/aitalk/internal/core"
	"github.com/sandevgo/aitalk/pkg/log"
)

type Index struct {
	embedder core.Embedder
	store    Store

	mu   sync.RWMutex
	dims int
}

type options struct {
	store   Store
	workers int
}

type Option func(*options)

// WithStore replaces the default in-memory store. The store must be empty.
func WithStore(s Store) Option {
	return func(o *options) { o.store = s }
}

// WithWorkers sets how many entries Build embeds concurrently.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

func buildOptions(opts []Option) options {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.store == nil {
		o.store = NewMemoryStore()
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o
}

func New(embedder core.Embedder, opts ...Option) *Index {
	o := buildOptions(opts)
	return &Index{embedder: embedder, store: o.store}
}

// Insert embeds text and appends it. On error the index is unchanged.
func (x *Index) Insert(ctx context.Context, text string) (int64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("%w: empty text", core.ErrInvalidArgument)
	}

	vec, err := x.embedder.Embed(ctx, text)
	if err != nil {
		return 0, err
	}
	return x.add(ctx, text, vec)
}

func (x *Index) add(ctx context.Context, text string, vec []float32) (int64, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.dims != 0 && len(vec) != x.dims {
		return 0, core.NewProviderError("index", "insert",
			fmt.Errorf("dimension mismatch: got %d, index holds %d", len(vec), x.dims))
	}

	id, err := x.store.Add(ctx, text, vec)
	if err != nil {
		return 0, fmt.Errorf("store item: %w", err)
	}
	if x.dims == 0 {
		x.dims = len(vec)
	}
	return id, nil
}

// Search returns the k items most similar to query, best first. Equal scores keep
// insertion order. Searching an empty index fails with core.ErrEmptyIndex.
func (x *Index) Search(ctx context.Context, query string, k int) ([]core.QueryResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", core.ErrInvalidArgument, k)
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", core.ErrInvalidArgument)
	}

	n, err := x.Len(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, core.ErrEmptyIndex
	}

	qvec, err := x.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	if len(qvec) != x.dims {
		return nil, core.NewProviderError("index", "search",
			fmt.Errorf("dimension mismatch: query has %d, index holds %d", len(qvec), x.dims))
	}

	items, err := x.store.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}

	results := make([]core.QueryResult, 0, len(items))
	for _, item := range items {
		score, err := CosineSimilarity(qvec, item.Vector)
		if err != nil {
			return nil, fmt.Errorf("score item %d: %w", item.ID, err)
		}
		results = append(results, core.QueryResult{ID: item.ID, Text: item.Text, Score: score})
	}

	slices.SortStableFunc(results, func(a, b core.QueryResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})

	log.FromCtx(ctx).Debug().
		Int("items", len(items)).
		Int("k", k).
		Msg("index searched")

	return results[:min(k, len(results))], nil
}

func (x *Index) Len(ctx context.Context) (int, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	n, err := x.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// Dimensions is 0 until the first item is inserted.
func (x *Index) Dimensions() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.dims
}
