// Package memory drives retrieval-augmented completion: load a corpus, index it,
// retrieve the entries closest to a query and answer with them as context.
package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sandevgo/aitalk/internal/core"
	"github.com/sandevgo/aitalk/internal/index"
	"github.com/sandevgo/aitalk/pkg/log"
)

// Pipeline walks Idle → CorpusLoaded → Indexed → Queried → Completed. A failed
// step leaves the state unchanged. A Pipeline is not safe for concurrent use.
type Pipeline struct {
	embedder  core.Embedder
	completer core.Completer
	template  string
	indexOpts []index.Option
	runID     string

	state   State
	corpus  []string
	index   *index.Index
	query   string
	results []core.QueryResult
	context string
	answer  string
}

type Option func(*Pipeline)

// WithPromptTemplate sets the system prompt; see ContextPlaceholder.
func WithPromptTemplate(t string) Option {
	return func(p *Pipeline) { p.template = t }
}

// WithIndexOptions configures the index BuildIndex creates.
func WithIndexOptions(opts ...index.Option) Option {
	return func(p *Pipeline) { p.indexOpts = append(p.indexOpts, opts...) }
}

// NewPipeline creates an idle pipeline. The completer may be nil when Complete is
// never called.
func NewPipeline(embedder core.Embedder, completer core.Completer, opts ...Option) *Pipeline {
	p := &Pipeline{
		embedder:  embedder,
		completer: completer,
		template:  DefaultPromptTemplate,
		runID:     uuid.NewString(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) logger(ctx context.Context) *zerolog.Logger {
	l := log.FromCtx(ctx).With().Str("run_id", p.runID).Logger()
	return &l
}

func (p *Pipeline) expect(want ...State) error {
	for _, s := range want {
		if p.state == s {
			return nil
		}
	}
	return fmt.Errorf("%w: pipeline is %s", ErrInvalidState, p.state)
}

func (p *Pipeline) LoadCorpus(texts []string) error {
	if err := p.expect(StateIdle); err != nil {
		return err
	}
	p.corpus = append([]string(nil), texts...)
	p.state = StateCorpusLoaded
	return nil
}

// BuildIndex embeds the whole corpus into a fresh index. Any failed entry fails
// the build and no index is kept.
func (p *Pipeline) BuildIndex(ctx context.Context) error {
	if err := p.expect(StateCorpusLoaded); err != nil {
		return err
	}
	if p.embedder == nil {
		return fmt.Errorf("%w: no embedding provider configured", ErrInvalidState)
	}

	idx, err := index.Build(ctx, p.embedder, p.corpus, p.indexOpts...)
	if err != nil {
		p.logger(ctx).Error().Err(err).Msg("index build failed")
		return fmt.Errorf("build index: %w", err)
	}

	p.index = idx
	p.state = StateIndexed
	p.logger(ctx).Debug().Int("entries", len(p.corpus)).Msg("corpus indexed")
	return nil
}

// Query retrieves the k entries closest to query. It may be repeated; a new query
// discards the previous results and answer.
func (p *Pipeline) Query(ctx context.Context, query string, k int) ([]core.QueryResult, error) {
	if err := p.expect(StateIndexed, StateQueried, StateCompleted); err != nil {
		return nil, err
	}

	results, err := p.index.Search(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	p.query = query
	p.results = results
	p.context = ""
	p.answer = ""
	p.state = StateQueried

	p.logger(ctx).Debug().Str("query", query).Int("k", k).Int("hits", len(results)).Msg("query answered")
	return results, nil
}

// Complete sends the assembled context as a system message followed by the query
// as a user message.
func (p *Pipeline) Complete(ctx context.Context) (string, error) {
	if err := p.expect(StateQueried); err != nil {
		return "", err
	}
	if p.completer == nil {
		return "", fmt.Errorf("%w: no completion provider configured", ErrInvalidState)
	}

	assembled := Assemble(p.results)
	messages := []core.Message{
		{Role: core.RoleSystem, Content: SystemPrompt(p.template, assembled)},
		{Role: core.RoleUser, Content: p.query},
	}

	answer, err := p.completer.Complete(ctx, messages)
	if err != nil {
		p.logger(ctx).Error().Err(err).Msg("completion failed")
		return "", fmt.Errorf("complete: %w", err)
	}

	p.context = assembled
	p.answer = answer
	p.state = StateCompleted
	return answer, nil
}

func (p *Pipeline) RunID() string { return p.runID }

func (p *Pipeline) State() State { return p.state }

func (p *Pipeline) Corpus() []string { return append([]string(nil), p.corpus...) }

func (p *Pipeline) Results() []core.QueryResult { return append([]core.QueryResult(nil), p.results...) }

// Context is the text passed to the model by the last Complete.
func (p *Pipeline) Context() string { return p.context }

func (p *Pipeline) Answer() string { return p.answer }
