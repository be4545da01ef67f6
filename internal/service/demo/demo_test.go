package demo

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sandevgo/aitalk/configs"
	"github.com/sandevgo/aitalk/internal/core"
	"github.com/sandevgo/aitalk/internal/index"
	"github.com/sandevgo/aitalk/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDemos(t *testing.T) *configs.Demos {
	t.Helper()
	d, err := configs.LoadDemos("")
	require.NoError(t, err)
	return d
}

func completerOf(c core.Completer) CompleterFunc {
	return func(context.Context) (core.Completer, error) { return c, nil }
}

func embedderOf(e core.Embedder) func(context.Context) (core.Embedder, error) {
	return func(context.Context) (core.Embedder, error) { return e, nil }
}

func TestStatelessSuite(t *testing.T) {
	d := loadDemos(t)
	completer := &test.RecordingCompleter{Reply: "良さんです。"}
	var out bytes.Buffer

	s := NewStatelessSuite(d.Stateless, completerOf(completer), NewPrinter(&out, false))
	require.NoError(t, s.Run(context.Background(), AllSteps))

	reqs := completer.Requests()
	require.Len(t, reqs, 3)
	assert.Len(t, reqs[0], 1)
	assert.Len(t, reqs[1], 1)
	assert.Equal(t, []core.Role{core.RoleUser, core.RoleAssistant, core.RoleUser},
		[]core.Role{reqs[2][0].Role, reqs[2][1].Role, reqs[2][2].Role})

	text := out.String()
	assert.Contains(t, text, "【デモ1-1】名前を伝える")
	assert.Contains(t, text, "📤 送信: 私の名前は良です。覚えておいてください。")
	assert.Contains(t, text, "📤 送信: さきほど覚えて頂いた者ですが、私の名前を言えますよね？")
	assert.Contains(t, text, "📤 送信: 過去の会話履歴 + 新しい質問")
	assert.Equal(t, 3, strings.Count(text, "良さんです。"))
}

func TestStatelessSuite_ProviderFailure(t *testing.T) {
	d := loadDemos(t)
	cause := core.NewProviderError("openai", "complete", errors.New("http 401"))
	var out bytes.Buffer

	s := NewStatelessSuite(d.Stateless, completerOf(&test.RecordingCompleter{Err: cause}), NewPrinter(&out, false))
	err := s.Run(context.Background(), "1-1")

	assert.ErrorIs(t, err, core.ErrProvider)
	assert.NotContains(t, out.String(), "📥")
}

func TestStatelessSuite_NoProviderConfigured(t *testing.T) {
	d := loadDemos(t)
	missing := func(context.Context) (core.Completer, error) { return nil, errors.New("OPENAI_API_KEY is not set") }

	s := NewStatelessSuite(d.Stateless, missing, NewPrinter(&bytes.Buffer{}, false))
	err := s.Run(context.Background(), "1-2")
	assert.ErrorContains(t, err, "OPENAI_API_KEY")
}

func TestMemorySuite_CorpusNeedsNoProvider(t *testing.T) {
	d := loadDemos(t)
	var out bytes.Buffer
	deps := MemoryDeps{
		Embedder: func(context.Context) (core.Embedder, error) {
			t.Fatal("embedder must not be resolved")
			return nil, nil
		},
	}

	s := NewMemorySuite(d.Memory, deps, NewPrinter(&out, false))
	require.NoError(t, s.Run(context.Background(), "2-1"))

	text := out.String()
	for _, entry := range test.MemoryCorpus {
		assert.Contains(t, text, entry)
	}
	assert.Contains(t, text, "✅ ベクトルDBに保存完了")
}

func TestMemorySuite_Search(t *testing.T) {
	d := loadDemos(t)
	var out bytes.Buffer
	deps := MemoryDeps{Embedder: embedderOf(test.NewKeywordEmbedder()), Workers: 2}

	s := NewMemorySuite(d.Memory, deps, NewPrinter(&out, false))
	require.NoError(t, s.Run(context.Background(), "2-2"))

	text := out.String()
	assert.Contains(t, text, "🔍 質問: "+test.DockerQuery)
	docker := strings.Index(text, "DockerとWSL2の環境で開発している")
	require.NotEqual(t, -1, docker)
	assert.NotContains(t, text, "フロントエンドはReactとTypeScriptを使用")
}

func TestMemorySuite_Answer(t *testing.T) {
	d := loadDemos(t)
	var out bytes.Buffer
	completer := &test.RecordingCompleter{Reply: "**WSL2**のメモリ設定を見直しましょう"}

	var released int
	deps := MemoryDeps{
		Embedder:  embedderOf(test.NewKeywordEmbedder()),
		Completer: completerOf(completer),
		NewStore: func(context.Context) (index.Store, func() error, error) {
			return index.NewMemoryStore(), func() error { released++; return nil }, nil
		},
	}

	s := NewMemorySuite(d.Memory, deps, NewPrinter(&out, true))
	require.NoError(t, s.Run(context.Background(), "2-4"))

	reqs := completer.Requests()
	require.Len(t, reqs, 1)
	require.Len(t, reqs[0], 2)
	assert.Equal(t, core.RoleSystem, reqs[0][0].Role)
	assert.True(t, strings.HasPrefix(reqs[0][0].Content, "以下はユーザーに関する情報です:\nDockerとWSL2の環境で開発している"))
	assert.Equal(t, core.Message{Role: core.RoleUser, Content: test.DockerQuery}, reqs[0][1])

	text := out.String()
	assert.Contains(t, text, "📋 LLMに渡したコンテキスト:")
	assert.Contains(t, text, "WSL2")
	assert.NotContains(t, text, "**WSL2**")
	assert.Equal(t, 1, released)
}

func TestMemorySuite_BuildFailure(t *testing.T) {
	d := loadDemos(t)
	emb := &test.FailingEmbedder{Next: test.NewKeywordEmbedder(), FailOn: 3}
	var out bytes.Buffer

	s := NewMemorySuite(d.Memory, MemoryDeps{Embedder: embedderOf(emb)}, NewPrinter(&out, false))
	err := s.Run(context.Background(), "2-3")

	assert.ErrorIs(t, err, core.ErrProvider)
	assert.NotContains(t, out.String(), "📋")
}

func TestPrinter_Usage(t *testing.T) {
	d := loadDemos(t)
	var out bytes.Buffer
	p := NewPrinter(&out, false)

	s := NewMemorySuite(d.Memory, MemoryDeps{}, p)
	p.Usage("aitalk memory", s)

	text := out.String()
	assert.Contains(t, text, "2-1|2-2|2-3|2-4")
	assert.Contains(t, text, "Docker関連の検索")
	assert.Contains(t, text, "全て順番に実行")
}
