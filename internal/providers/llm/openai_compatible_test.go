package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sandevgo/aitalk/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAICompatible_Complete(t *testing.T) {
	messages := []core.Message{
		{Role: core.RoleSystem, Content: "以下はユーザーに関する情報です:\nDockerとWSL2の環境で開発している"},
		{Role: core.RoleUser, Content: "Dockerの開発環境を最適化したい"},
	}

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		want       string
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "first choice returned",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"WSL2のメモリを調整しましょう"}},{"message":{"role":"assistant","content":"second"}}]}`)
			},
			want: "WSL2のメモリを調整しましょう",
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"error":{"message":"invalid api key"}}`)
			},
			wantErr:    core.ErrProvider,
			wantErrMsg: "http 401",
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"choices":`)
			},
			wantErr:    core.ErrProvider,
			wantErrMsg: "decode",
		},
		{
			name: "empty choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"choices":[]}`)
			},
			wantErr:    core.ErrProvider,
			wantErrMsg: "empty choices",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			p := NewCustomOpenAI(srv.URL, "sk-test", "gpt-4o-mini", time.Second, 0)
			got, err := p.Complete(context.Background(), messages)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenAICompatible_RequestShape(t *testing.T) {
	var gotReq chatRequest
	var gotAuth, gotPath, gotTitle string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotTitle = r.Header.Get("X-Title")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
	}))
	defer srv.Close()

	p := NewOpenAICompatible(OpenAICompatibleConfig{
		Name:         "openrouter",
		BaseURL:      srv.URL,
		APIKey:       "sk-test",
		Model:        "gpt-4o-mini",
		AuthHeader:   "Authorization",
		AuthPrefix:   "Bearer ",
		ExtraHeaders: map[string]string{"X-Title": core.AppName},
	})

	history := []core.Message{
		{Role: core.RoleUser, Content: "私の名前は良（りょう）です。覚えておいてください。"},
		{Role: core.RoleAssistant, Content: "良さんですね！覚えました。"},
		{Role: core.RoleUser, Content: "私の名前を教えてください。"},
	}
	_, err := p.Complete(context.Background(), history)
	require.NoError(t, err)

	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, core.AppName, gotTitle)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	assert.Equal(t, history, gotReq.Messages)
}

func TestOpenAICompatible_InvalidMessages(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	p := NewCustomOpenAI(srv.URL, "", "m", time.Second, 0)
	_, err := p.Complete(context.Background(), []core.Message{{Role: "tool", Content: "x"}})

	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	assert.Zero(t, calls.Load())
}

func TestOpenAICompatible_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	p := NewCustomOpenAI(srv.URL, "", "m", 50*time.Millisecond, 0)
	_, err := p.Complete(context.Background(), []core.Message{{Role: core.RoleUser, Content: "hi"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrProvider)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOpenAICompatible_Retries(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		maxRetries int
		wantCalls  int32
		wantErr    bool
	}{
		{name: "no retries by default", status: http.StatusServiceUnavailable, maxRetries: 0, wantCalls: 1, wantErr: true},
		{name: "server error retried", status: http.StatusServiceUnavailable, maxRetries: 1, wantCalls: 2},
		{name: "bad request not retried", status: http.StatusBadRequest, maxRetries: 3, wantCalls: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if calls.Add(1) == 1 {
					w.WriteHeader(tt.status)
					return
				}
				fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
			}))
			defer srv.Close()

			p := NewCustomOpenAI(srv.URL, "", "m", time.Second, tt.maxRetries)
			_, err := p.Complete(context.Background(), []core.Message{{Role: core.RoleUser, Content: "hi"}})

			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrProvider)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}
