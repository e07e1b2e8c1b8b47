package openrouter

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

func newTestProvider(url string) *OpenRouterProvider {
	return NewOpenRouterProvider(Config{
		APIKey:   "sk-test",
		BaseURL:  url,
		Model:    "deepseek/deepseek-r1",
		SiteURL:  "https://notes.example",
		SiteName: "Supercharged Notes",
	})
}

func TestChat_SendsHeadersAndParsesChoice(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "https://notes.example", r.Header.Get("HTTP-Referer"))
		assert.Equal(t, "Supercharged Notes", r.Header.Get("X-Title"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"content":"Ohm's law relates V, I and R."}}]}`)
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	answer, err := p.Chat(context.Background(), []llm.Message{
		{Role: "system", Content: "ctx"},
		{Role: "user", Content: "what is ohm's law?"},
	}, llm.WithModel("google/gemini-pro-1.5"))

	require.NoError(t, err)
	assert.Equal(t, "Ohm's law relates V, I and R.", answer)
	assert.Equal(t, "google/gemini-pro-1.5", got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
}

func TestStream_ReturnsRawBody(t *testing.T) {
	const body = "data: {\"choices\":[{\"delta\":{\"content\":\"Hi\"}}]}\n\ndata: [DONE]\n\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	rc, err := newTestProvider(server.URL).Stream(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, body, string(raw))
}

func TestStream_NonSuccessStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"provider error json", http.StatusUnauthorized, `{"error":{"message":"No auth credentials found","code":401}}`, "No auth credentials found"},
		{"plain text", http.StatusBadGateway, "upstream exploded", "upstream exploded"},
		{"empty body", http.StatusServiceUnavailable, "", "Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			rc, err := newTestProvider(server.URL).Stream(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
			assert.Nil(t, rc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, llm.ErrUpstreamStatus))

			var statusErr *llm.StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.Equal(t, tt.wantMsg, statusErr.Message)
		})
	}
}

func TestChat_RequiresModel(t *testing.T) {
	p := NewOpenRouterProvider(Config{BaseURL: "http://unused"})
	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	assert.Error(t, err)
}
