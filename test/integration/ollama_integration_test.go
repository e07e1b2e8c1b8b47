package integration

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"supercharged-notes-be/pkg/ai/relay"
	"supercharged-notes-be/pkg/chatstream"
	"supercharged-notes-be/pkg/llm"
	"supercharged-notes-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a local Ollama: OLLAMA_INTEGRATION=1 OLLAMA_MODEL=gemma:2b
func TestOllamaStreamThroughRelayAndParser(t *testing.T) {
	if os.Getenv("OLLAMA_INTEGRATION") == "" {
		t.Skip("Skipping integration test: OLLAMA_INTEGRATION not set")
	}
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		model = "gemma:2b"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	provider := ollama.NewOllamaProvider(baseURL, model, time.Minute)
	body, err := provider.Stream(ctx, []llm.Message{
		{Role: "system", Content: "Answer in one short sentence."},
		{Role: "user", Content: "What is Ohm's law?"},
	})
	require.NoError(t, err)
	defer body.Close()

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	stats, err := relay.Pipe(ctx, w, body)
	require.NoError(t, err)
	assert.True(t, stats.SawDone)

	parser := chatstream.NewParser(nil)
	_, _ = parser.Write(buf.Bytes())
	msg := parser.Finish(nil)
	assert.False(t, msg.Failed)
	assert.NotEmpty(t, msg.RawText)
	t.Logf("Ollama answered: %s", msg.RawText)
}
