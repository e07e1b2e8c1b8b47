package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"supercharged-notes-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat_UsesNativeEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req ollamaChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.Stream)
		assert.Equal(t, "llama3", req.Model)
		assert.Equal(t, "assistant", req.Messages[0].Role)

		fmt.Fprint(w, `{"model":"llama3","message":{"role":"assistant","content":"pong"},"done":true}`)
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL, "llama3", 0)
	out, err := p.Chat(context.Background(), []llm.Message{{Role: "model", Content: "earlier"}, {Role: "user", Content: "ping"}})
	require.NoError(t, err)
	assert.Equal(t, "pong", out)
}

func TestStream_UsesOpenAICompatibleEndpoint(t *testing.T) {
	const body = "data: {\"choices\":[{\"delta\":{\"content\":\"pong\"}}]}\n\ndata: [DONE]\n\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		var req openAIStreamRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)
		assert.Equal(t, "qwen2", req.Model)

		fmt.Fprint(w, body)
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL+"/", "llama3", 0)
	rc, err := p.Stream(context.Background(), []llm.Message{{Role: "user", Content: "ping"}}, llm.WithModel("qwen2"))
	require.NoError(t, err)
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, body, string(raw))
}

func TestStream_ModelMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `model "nope" not found`)
	}))
	defer server.Close()

	rc, err := NewOllamaProvider(server.URL, "nope", 0).Stream(context.Background(), nil)
	assert.Nil(t, rc)
	assert.True(t, errors.Is(err, llm.ErrUpstreamStatus))
}
