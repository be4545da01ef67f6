package index

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/aitalk/internal/core"
	"github.com/sandevgo/aitalk/pkg/log"
	"golang.org/x/sync/errgroup"
)

// Build embeds every text and returns an index holding all of them, or nil and
// the first error. Ids follow the order of texts whatever the worker count.
func Build(ctx context.Context, embedder core.Embedder, texts []string, opts ...Option) (*Index, error) {
	o := buildOptions(opts)
	logger := log.FromCtx(ctx)

	vectors := make([][]float32, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for i, text := range texts {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("%w: entry %d is empty", core.ErrInvalidArgument, i+1)
			}
			vec, err := embedder.Embed(gctx, text)
			if err != nil {
				return fmt.Errorf("embed entry %d: %w", i+1, err)
			}
			vectors[i] = vec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Int("entries", len(texts)).Msg("index build failed")
		return nil, err
	}

	x := &Index{embedder: embedder, store: o.store}
	for i, text := range texts {
		if _, err := x.add(ctx, text, vectors[i]); err != nil {
			return nil, fmt.Errorf("add entry %d: %w", i+1, err)
		}
	}

	logger.Debug().
		Int("entries", len(texts)).
		Int("dims", x.dims).
		Int("workers", o.workers).
		Msg("index built")

	return x, nil
}
