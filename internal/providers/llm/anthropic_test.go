package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sandevgo/aitalk/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const anthropicReply = `{
  "id": "msg_01",
  "type": "message",
  "role": "assistant",
  "model": "claude-sonnet-4-0",
  "content": [{"type": "text", "text": "良さんですね"}],
  "stop_reason": "end_turn",
  "stop_sequence": null,
  "usage": {"input_tokens": 12, "output_tokens": 6}
}`

func TestAnthropic_Complete(t *testing.T) {
	var body struct {
		Model    string `json:"model"`
		System   []struct {
			Text string `json:"text"`
		} `json:"system"`
		Messages []struct {
			Role    string `json:"role"`
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"messages"`
	}
	var gotKey, gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, anthropicReply)
	}))
	defer srv.Close()

	p := NewAnthropic(AnthropicConfig{
		APIKey:  "sk-ant",
		Model:   "claude-sonnet-4-0",
		BaseURL: srv.URL,
		Timeout: time.Second,
	})

	got, err := p.Complete(context.Background(), []core.Message{
		{Role: core.RoleSystem, Content: "context"},
		{Role: core.RoleUser, Content: "私の名前は良です"},
		{Role: core.RoleAssistant, Content: "覚えました"},
		{Role: core.RoleUser, Content: "私の名前は？"},
	})
	require.NoError(t, err)

	assert.Equal(t, "良さんですね", got)
	assert.Equal(t, "/v1/messages", gotPath)
	assert.Equal(t, "sk-ant", gotKey)
	assert.Equal(t, "claude-sonnet-4-0", body.Model)
	require.Len(t, body.System, 1)
	assert.Equal(t, "context", body.System[0].Text)
	require.Len(t, body.Messages, 3)
	assert.Equal(t, "user", body.Messages[0].Role)
	assert.Equal(t, "assistant", body.Messages[1].Role)
	assert.Equal(t, "user", body.Messages[2].Role)
	assert.Equal(t, "私の名前は？", body.Messages[2].Content[0].Text)
}

func TestAnthropic_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
	}))
	defer srv.Close()

	p := NewAnthropic(AnthropicConfig{APIKey: "bad", Model: "m", BaseURL: srv.URL, Timeout: time.Second})

	t.Run("provider failure", func(t *testing.T) {
		_, err := p.Complete(context.Background(), []core.Message{{Role: core.RoleUser, Content: "hi"}})
		assert.ErrorIs(t, err, core.ErrProvider)
	})

	t.Run("system only", func(t *testing.T) {
		_, err := p.Complete(context.Background(), []core.Message{{Role: core.RoleSystem, Content: "ctx"}})
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	})
}
