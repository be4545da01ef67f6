package demo

import (
	"context"
	"fmt"

	"github.com/sandevgo/aitalk/configs"
	"github.com/sandevgo/aitalk/internal/core"
	"github.com/sandevgo/aitalk/internal/index"
	"github.com/sandevgo/aitalk/internal/service/memory"
	"github.com/sandevgo/aitalk/pkg/log"
)

type MemoryDeps struct {
	Embedder  func(ctx context.Context) (core.Embedder, error)
	Completer CompleterFunc
	// NewStore returns a fresh index store and its release func. Nil keeps items
	// in process memory.
	NewStore func(ctx context.Context) (index.Store, func() error, error)
	Workers  int
}

// NewMemorySuite shows retrieval over a small corpus supplying context to an
// otherwise stateless completion. Every step builds its own index.
func NewMemorySuite(def configs.MemoryDemo, deps MemoryDeps, p *Printer) *Suite {
	s := &Suite{Name: "memory", Title: def.Title}
	for _, step := range def.Steps {
		s.Steps = append(s.Steps, Step{
			ID:    step.ID,
			Title: step.Title,
			Help:  step.Help,
			Run: func(ctx context.Context) error {
				return runMemory(ctx, def, step, deps, p)
			},
		})
	}
	return s
}

func runMemory(ctx context.Context, def configs.MemoryDemo, step configs.MemoryStep, deps MemoryDeps, p *Printer) error {
	p.Header(step.ID, step.Title)

	if step.Action == configs.ActionCorpus {
		pl := memory.NewPipeline(nil, nil)
		if err := pl.LoadCorpus(def.Corpus); err != nil {
			return err
		}
		p.Corpus(pl.Corpus())
		p.End()
		return nil
	}

	pl, release, err := newPipeline(ctx, def, step, deps)
	if err != nil {
		return err
	}
	defer func() {
		if err := release(); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("failed to release index store")
		}
	}()

	if err := pl.LoadCorpus(def.Corpus); err != nil {
		return err
	}
	if err := pl.BuildIndex(ctx); err != nil {
		return err
	}
	results, err := pl.Query(ctx, step.Query, def.K(step))
	if err != nil {
		return err
	}

	switch step.Action {
	case configs.ActionSearch:
		p.Query(step.Query)
		p.Results(results)
	case configs.ActionAnswer:
		answer, err := pl.Complete(ctx)
		if err != nil {
			return err
		}
		p.Query(step.Query)
		p.Context(pl.Context())
		p.Reply("📥 LLMの応答:", answer)
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
	p.End()
	return nil
}

func newPipeline(ctx context.Context, def configs.MemoryDemo, step configs.MemoryStep, deps MemoryDeps) (*memory.Pipeline, func() error, error) {
	emb, err := deps.Embedder(ctx)
	if err != nil {
		return nil, nil, err
	}

	var completer core.Completer
	if step.Action == configs.ActionAnswer {
		if completer, err = deps.Completer(ctx); err != nil {
			return nil, nil, err
		}
	}

	opts := []index.Option{index.WithWorkers(deps.Workers)}
	release := func() error { return nil }
	if deps.NewStore != nil {
		store, closeStore, err := deps.NewStore(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("open index store: %w", err)
		}
		opts = append(opts, index.WithStore(store))
		release = closeStore
	}

	pl := memory.NewPipeline(emb, completer,
		memory.WithPromptTemplate(def.PromptTemplate),
		memory.WithIndexOptions(opts...),
	)
	log.FromCtx(ctx).Debug().Str("run_id", pl.RunID()).Str("action", step.Action).Msg("pipeline created")
	return pl, release, nil
}
