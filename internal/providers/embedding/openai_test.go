package embedding

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

func TestOpenAICompatible_Embed(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		want       []float32
		wantErrMsg string
	}{
		{
			name: "first vector returned",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"data":[{"index":0,"embedding":[0.1,0.2,0.3]}]}`)
			},
			want: []float32{0.1, 0.2, 0.3},
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantErrMsg: "http 429",
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"data":[`)
			},
			wantErrMsg: "decode",
		},
		{
			name: "no data",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"data":[]}`)
			},
			wantErrMsg: "empty embedding",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			p := NewOpenAICompatible(OpenAICompatibleConfig{
				Name:    "openai",
				BaseURL: srv.URL,
				Model:   "text-embedding-3-small",
				Timeout: time.Second,
			})
			got, err := p.Embed(context.Background(), "DockerとWSL2の環境で開発している")

			if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, core.ErrProvider)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenAICompatible_RequestShape(t *testing.T) {
	var gotReq map[string]any
	var gotPath, gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, `{"data":[{"index":0,"embedding":[1]}]}`)
	}))
	defer srv.Close()

	p := NewOpenAICompatible(OpenAICompatibleConfig{
		Name:       "openai",
		BaseURL:    srv.URL,
		APIKey:     "sk-test",
		Model:      "text-embedding-3-small",
		Dimensions: 256,
	})
	_, err := p.Embed(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, "/v1/embeddings", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "text-embedding-3-small", gotReq["model"])
	assert.Equal(t, "hello", gotReq["input"])
	assert.EqualValues(t, 256, gotReq["dimensions"])
}

func TestOpenAICompatible_DimensionsOmitted(t *testing.T) {
	var gotReq map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, `{"data":[{"index":0,"embedding":[1]}]}`)
	}))
	defer srv.Close()

	p := NewOpenAICompatible(OpenAICompatibleConfig{Name: "ollama", BaseURL: srv.URL, Model: "nomic-embed-text"})
	_, err := p.Embed(context.Background(), "hello")
	require.NoError(t, err)

	assert.NotContains(t, gotReq, "dimensions")
}

func TestOpenAICompatible_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	p := NewOpenAICompatible(OpenAICompatibleConfig{Name: "openai", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := p.Embed(context.Background(), "hello")

	assert.ErrorIs(t, err, core.ErrProvider)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
