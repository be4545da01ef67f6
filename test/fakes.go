// Package test holds deterministic provider fakes shared by package tests.
package test

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sandevgo/aitalk/internal/core"
)

// MemoryCorpus is the developer profile used by the memory demo.
var MemoryCorpus = []string{
	"ユーザーはJavaとSpring Bootでバックエンド開発をしている",
	"最近はマイクロサービスアーキテクチャに関心がある",
	"DockerとWSL2の環境で開発している",
	"Kafkaを使ったイベント駆動設計を勉強中",
	"フロントエンドはReactとTypeScriptを使用",
}

const (
	DockerQuery   = "Dockerの開発環境を最適化したい"
	FrontendQuery = "フロントエンドの技術スタックについて教えて"
)

// DefaultKeywords span the vocabulary of MemoryCorpus.
var DefaultKeywords = []string{
	"docker", "wsl2", "開発", "環境",
	"java", "spring", "バックエンド",
	"マイクロサービス", "アーキテクチャ",
	"kafka", "イベント",
	"フロントエンド", "react", "typescript", "技術",
}

// KeywordEmbedder maps text to a bag-of-keywords vector: component i is 1 when
// keyword i occurs in the text (case-insensitive).
type KeywordEmbedder struct {
	Keywords []string

	mu    sync.Mutex
	calls []string
}

func NewKeywordEmbedder() *KeywordEmbedder {
	return &KeywordEmbedder{Keywords: DefaultKeywords}
}

func (e *KeywordEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.calls = append(e.calls, text)
	e.mu.Unlock()

	lower := strings.ToLower(text)
	vec := make([]float32, len(e.Keywords))
	for i, kw := range e.Keywords {
		if strings.Contains(lower, kw) {
			vec[i] = 1
		}
	}
	return vec, nil
}

// Calls returns the texts embedded so far.
func (e *KeywordEmbedder) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

// FailingEmbedder delegates to Next and fails the FailOn-th call (1-based) with a
// provider error.
type FailingEmbedder struct {
	Next   core.Embedder
	FailOn int

	mu    sync.Mutex
	count int
}

var ErrInjected = errors.New("injected embedding failure")

func (e *FailingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.count++
	n := e.count
	e.mu.Unlock()

	if n == e.FailOn {
		return nil, core.NewProviderError("fake", "embed", ErrInjected)
	}
	return e.Next.Embed(ctx, text)
}

func (e *FailingEmbedder) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.count
}

// RecordingCompleter returns Reply (or Err) and keeps every request.
type RecordingCompleter struct {
	Reply string
	Err   error

	mu       sync.Mutex
	requests [][]core.Message
}

func (c *RecordingCompleter) Complete(_ context.Context, messages []core.Message) (string, error) {
	c.mu.Lock()
	c.requests = append(c.requests, append([]core.Message(nil), messages...))
	c.mu.Unlock()

	if c.Err != nil {
		return "", c.Err
	}
	return c.Reply, nil
}

func (c *RecordingCompleter) Requests() [][]core.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]core.Message(nil), c.requests...)
}
