package demo

import (
	"context"
	"fmt"

	"github.com/sandevgo/aitalk/configs"
	"github.com/sandevgo/aitalk/internal/core"
)

// CompleterFunc resolves the completion provider when a step first needs it.
type CompleterFunc func(ctx context.Context) (core.Completer, error)

// NewStatelessSuite shows that separate completion calls share no memory unless
// the history is sent again.
func NewStatelessSuite(def configs.StatelessDemo, completer CompleterFunc, p *Printer) *Suite {
	s := &Suite{Name: "stateless", Title: def.Title}
	for _, step := range def.Steps {
		s.Steps = append(s.Steps, Step{
			ID:    step.ID,
			Title: step.Title,
			Help:  step.Help,
			Run: func(ctx context.Context) error {
				return runStateless(ctx, step, completer, p)
			},
		})
	}
	return s
}

func runStateless(ctx context.Context, step configs.StatelessStep, completer CompleterFunc, p *Printer) error {
	p.Header(step.ID, step.Title)

	c, err := completer(ctx)
	if err != nil {
		return err
	}

	answer, err := c.Complete(ctx, step.Messages)
	if err != nil {
		return fmt.Errorf("complete: %w", err)
	}

	display := step.Display
	if display == "" && len(step.Messages) > 0 {
		display = step.Messages[len(step.Messages)-1].Content
	}
	p.Sent(display)
	p.Reply("📥 応答:", answer)
	p.End()
	return nil
}
