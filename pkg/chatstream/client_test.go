package chatstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Stream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chatbot", r.URL.Path)
		assert.Equal(t, "user-1", r.Header.Get("X-User-Id"))

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)
		assert.Equal(t, "quick", req.ResponseMode)
		require.NotNil(t, req.ContextDocument)
		assert.Equal(t, "note", req.ContextDocument.Kind)

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		fmt.Fprint(w, frame("Hello "))
		flusher.Flush()
		fmt.Fprint(w, frame("world"))
		fmt.Fprint(w, "data: [DONE]\n")
	}))
	defer server.Close()

	c := NewClient(server.URL)
	c.UserID = "user-1"

	updates := 0
	msg, err := c.Stream(context.Background(), Request{
		Message:         "hi",
		ResponseMode:    "quick",
		ContextDocument: &DocumentRef{ID: "n-1", Kind: "note", DisplayName: "Ohm"},
	}, func(Message) { updates++ })

	require.NoError(t, err)
	assert.False(t, msg.Failed)
	assert.Equal(t, "Hello world", msg.RawText)
	assert.Equal(t, 3, updates)
}

func TestClient_StreamAbruptClose(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, frame("partial"))
	}))
	defer server.Close()

	msg, err := NewClient(server.URL).Stream(context.Background(), Request{Message: "hi"}, nil)
	require.NoError(t, err)
	assert.True(t, msg.Failed)
	assert.Equal(t, ErrorText, msg.DisplayText)
}

func TestClient_StreamNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"success":false,"message":"Unauthorized"}`)
	}))
	defer server.Close()

	msg, err := NewClient(server.URL).Stream(context.Background(), Request{Message: "hi"}, nil)
	require.NoError(t, err)
	assert.True(t, msg.Failed)
	assert.Equal(t, ErrorText, msg.DisplayText)
	assert.Contains(t, msg.Err.Error(), "Unauthorized")
}

func TestClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.Stream)
		fmt.Fprint(w, `{"success":true,"response":"42"}`)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	c.Token = "tok"
	out, err := c.Complete(context.Background(), Request{Message: "answer?", Stream: true})
	require.NoError(t, err)
	assert.Equal(t, "42", out)
}
