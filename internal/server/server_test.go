package server

import (
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"supercharged-notes-be/internal/bootstrap"
	"supercharged-notes-be/internal/config"
	"supercharged-notes-be/internal/model"
	"supercharged-notes-be/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return newTestServerWithOrigins(t, "*")
}

func newTestServerWithOrigins(t *testing.T, origins string) *Server {
	t.Helper()
	dir := t.TempDir()

	db, err := database.NewGormDBFromDSN("sqlite://" + filepath.Join(dir, "notes.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        filepath.Join(dir, "app.log"),
			LLMLogFilePath:     filepath.Join(dir, "llm.log"),
			CorsAllowedOrigins: origins,
		},
		Auth: config.AuthConfig{Mode: "header", UserIDHeader: "X-User-Id"},
		Ai: config.AIConfig{
			LLMProvider:    "ollama",
			OllamaBaseURL:  "http://127.0.0.1:1",
			RequestTimeout: time.Second,
		},
		Cache: config.CacheConfig{Driver: "memory", TTL: 5 * time.Minute},
	}

	container := bootstrap.NewContainer(db, cfg)
	t.Cleanup(container.Close)
	return New(cfg, container)
}

func TestServer_Healthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.GetApp().Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestServer_ChatRoutesRequireAuth(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/chatbot", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.GetApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestServer_UnreachableProviderIsBadGateway(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/chatbot", strings.NewReader(`{"message":"hi","stream":true}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "user-1")
	resp, err := srv.GetApp().Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)
}

func TestServer_Cors(t *testing.T) {
	tests := []struct {
		name            string
		origins         string
		wantOrigin      string
		wantCredentials string
	}{
		{name: "wildcard without credentials", origins: "*", wantOrigin: "*", wantCredentials: ""},
		{name: "explicit origin with credentials", origins: "http://localhost:3000", wantOrigin: "http://localhost:3000", wantCredentials: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServerWithOrigins(t, tt.origins)

			req := httptest.NewRequest("GET", "/healthz", nil)
			req.Header.Set("Origin", "http://localhost:3000")
			resp, err := srv.GetApp().Test(req)
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
			assert.Equal(t, tt.wantOrigin, resp.Header.Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCredentials, resp.Header.Get("Access-Control-Allow-Credentials"))
		})
	}
}

func TestAllowCredentials(t *testing.T) {
	assert.False(t, allowCredentials("*"))
	assert.False(t, allowCredentials("http://a.test, *"))
	assert.False(t, allowCredentials(""))
	assert.True(t, allowCredentials("http://a.test,http://b.test"))
}
