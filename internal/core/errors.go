package core

import (
	"errors"
	"fmt"
)

var (
	ErrProvider        = errors.New("provider error")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrEmptyIndex      = errors.New("empty index")
)

// ProviderError wraps any failure talking to an embedding or completion backend:
// transport, auth, status, payload decoding, timeouts and dimensionality drift.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func NewProviderError(provider, op string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Op: op, Err: err}
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}
