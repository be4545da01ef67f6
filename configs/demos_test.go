package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sandevgo/aitalk/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDemos_Embedded(t *testing.T) {
	d, err := LoadDemos("")
	require.NoError(t, err)

	require.Len(t, d.Stateless.Steps, 3)
	assert.Equal(t, "1-1", d.Stateless.Steps[0].ID)
	assert.Equal(t, []core.Message{
		{Role: core.RoleUser, Content: "私の名前は良（りょう）です。覚えておいてください。"},
		{Role: core.RoleAssistant, Content: "良さんですね！覚えました。"},
		{Role: core.RoleUser, Content: "私の名前を教えてください。"},
	}, d.Stateless.Steps[2].Messages)

	assert.Len(t, d.Memory.Corpus, 5)
	assert.Equal(t, 2, d.Memory.TopK)
	assert.Equal(t, "以下はユーザーに関する情報です:\n{{context}}", d.Memory.PromptTemplate)

	ids := make([]string, 0, len(d.Memory.Steps))
	for _, s := range d.Memory.Steps {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"2-1", "2-2", "2-3", "2-4"}, ids)
	assert.Equal(t, ActionAnswer, d.Memory.Steps[3].Action)
}

func TestLoadDemos_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demos.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
memory:
  top_k: 1
  corpus: ["a", "b"]
  steps:
    - id: x
      action: search
      query: a
      top_k: 3
`), 0o644))

	d, err := LoadDemos(path)
	require.NoError(t, err)
	assert.Empty(t, d.Stateless.Steps)
	assert.Equal(t, 3, d.Memory.K(d.Memory.Steps[0]))
}

func TestLoadDemos_MissingFile(t *testing.T) {
	_, err := LoadDemos(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseDemos_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "bad yaml", yaml: "memory: [", wantErr: "failed to parse"},
		{name: "zero top_k", yaml: "memory: {top_k: 0}", wantErr: "top_k must be positive"},
		{
			name:    "bad role",
			yaml:    "memory: {top_k: 1}\nstateless: {steps: [{id: a, messages: [{role: tool, content: x}]}]}",
			wantErr: "step a",
		},
		{
			name:    "duplicate id",
			yaml:    "memory: {top_k: 1, steps: [{id: a, action: corpus}, {id: a, action: corpus}]}",
			wantErr: "duplicate step id",
		},
		{
			name:    "reserved id",
			yaml:    "memory: {top_k: 1, steps: [{id: all, action: corpus}]}",
			wantErr: "reserved",
		},
		{
			name:    "search without query",
			yaml:    "memory: {top_k: 1, steps: [{id: a, action: search}]}",
			wantErr: "needs a query",
		},
		{
			name:    "unknown action",
			yaml:    "memory: {top_k: 1, steps: [{id: a, action: delete}]}",
			wantErr: "unknown action",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDemos([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
