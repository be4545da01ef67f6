// Package demo runs the stateless and memory demonstrations step by step.
package demo

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/sandevgo/aitalk/pkg/log"
)

// AllSteps runs every step of a suite in order.
const AllSteps = "all"

var ErrUnknownStep = errors.New("unknown demo step")

type Step struct {
	ID    string
	Title string
	Help  string
	Run   func(ctx context.Context) error
}

type Suite struct {
	Name  string
	Title string
	Steps []Step
}

func (s *Suite) IDs() []string {
	return lo.Map(s.Steps, func(st Step, _ int) string { return st.ID })
}

// Has reports whether id names a step or AllSteps.
func (s *Suite) Has(id string) bool {
	return id == AllSteps || lo.ContainsBy(s.Steps, func(st Step) bool { return st.ID == id })
}

// Run executes one step, or all of them for AllSteps, stopping at the first failure.
func (s *Suite) Run(ctx context.Context, id string) error {
	if id == AllSteps {
		for _, st := range s.Steps {
			if err := s.runStep(ctx, st); err != nil {
				return err
			}
		}
		return nil
	}

	st, ok := lo.Find(s.Steps, func(st Step) bool { return st.ID == id })
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStep, id)
	}
	return s.runStep(ctx, st)
}

func (s *Suite) runStep(ctx context.Context, st Step) error {
	logger := log.FromCtx(ctx).With().Str("suite", s.Name).Str("step", st.ID).Logger()
	logger.Debug().Msg("running demo step")

	if err := st.Run(logger.WithContext(ctx)); err != nil {
		return fmt.Errorf("demo %s: %w", st.ID, err)
	}
	return nil
}
