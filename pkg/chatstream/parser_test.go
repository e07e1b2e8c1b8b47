package chatstream

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(content string) string {
	payload, _ := json.Marshal(map[string]any{
		"choices": []any{map[string]any{"delta": map[string]any{"content": content}}},
	})
	return "data: " + string(payload) + "\n"
}

func feed(p *Parser, chunks ...string) {
	for _, c := range chunks {
		_, _ = p.Write([]byte(c))
	}
}

func TestParser_HelloWorld(t *testing.T) {
	p := NewParser(nil)
	feed(p, "data: {\"choices\":[{\"delta\":{\"content\":\"Hello \"}}]}\ndata: {\"choices\":[{\"delta\":{\"content\":\"world\"}}]}\ndata: [DONE]\n")

	require.True(t, p.Done())
	msg := p.Finish(nil)
	assert.Equal(t, "Hello world", msg.RawText)
	assert.Equal(t, "Hello world", msg.DisplayText)
	assert.False(t, msg.Streaming)
	assert.False(t, msg.Failed)
	assert.Equal(t, "assistant", msg.Role)
}

func TestParser_FenceAcrossDeltas(t *testing.T) {
	p := NewParser(nil)

	feed(p, frame("```circ"))
	msg := p.Message()
	assert.Empty(t, msg.Blocks)
	assert.Equal(t, "```circ", msg.DisplayText)
	assert.True(t, msg.Streaming)

	feed(p, frame("uit\nR1=10k\n```more text"))
	msg = p.Message()
	require.Len(t, msg.Blocks, 1)
	assert.Equal(t, Block{Kind: BlockCircuit, Body: "R1=10k"}, msg.Blocks[0])
	assert.Equal(t, "more text", msg.DisplayText)
}

func TestParser_ArbitrarySplitsMatchSingleChunk(t *testing.T) {
	stream := frame("Series resistors add:\n") +
		"\n" +
		frame("```circuit\nR1=1k\n") +
		": keep-alive\n" +
		frame("R2=2k\n```\nTotal 3k. ") +
		frame("Water is ```chem\nH2O\n```.") +
		"data: [DONE]\n\n"

	whole := NewParser(nil)
	feed(whole, stream)
	want := whole.Finish(nil)
	require.False(t, want.Failed)
	require.Len(t, want.Blocks, 2)

	for _, size := range []int{1, 2, 3, 7, 13, 64} {
		p := NewParser(nil)
		for i := 0; i < len(stream); i += size {
			end := i + size
			if end > len(stream) {
				end = len(stream)
			}
			feed(p, stream[i:end])
		}
		assert.Equal(t, want, p.Finish(nil), "chunk size %d", size)
	}
}

func TestParser_MalformedLineIsSkipped(t *testing.T) {
	p := NewParser(nil)
	feed(p,
		frame("before "),
		"data: {\"choices\":[{\"delta\":{\"content\":\"bro\n",
		frame("after"),
		"data: [DONE]\n",
	)

	msg := p.Finish(nil)
	assert.False(t, msg.Failed)
	assert.Equal(t, "before after", msg.RawText)
}

func TestParser_CloseWithoutTerminalFails(t *testing.T) {
	var updates []Message
	p := NewParser(func(m Message) { updates = append(updates, m) })
	feed(p, frame("partial answer"), "data: {\"choi")

	msg := p.Finish(nil)
	assert.True(t, msg.Failed)
	assert.False(t, msg.Streaming)
	assert.Equal(t, ErrorText, msg.DisplayText)
	assert.Empty(t, msg.Blocks)
	assert.ErrorIs(t, msg.Err, ErrNoTerminal)
	assert.Equal(t, "partial answer", msg.RawText)

	require.NotEmpty(t, updates)
	assert.True(t, updates[len(updates)-1].Failed)
}

func TestParser_TransportErrorFails(t *testing.T) {
	p := NewParser(nil)
	feed(p, frame("x"))
	boom := errors.New("connection reset")

	msg := p.Finish(boom)
	assert.True(t, msg.Failed)
	assert.Equal(t, ErrorText, msg.DisplayText)
	assert.ErrorIs(t, msg.Err, boom)
}

func TestParser_UpstreamErrorRecord(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"object", "data: {\"error\":{\"message\":\"Rate limit exceeded\",\"code\":429}}\n", "Rate limit exceeded"},
		{"string", "data: {\"error\":\"OpenRouter error: overloaded\"}\n", "OpenRouter error: overloaded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(nil)
			feed(p, frame("half"), tt.line, frame("ignored"), "data: [DONE]\n")

			require.True(t, p.Done())
			msg := p.Finish(nil)
			assert.True(t, msg.Failed)
			assert.Equal(t, ErrorText, msg.DisplayText)
			assert.Contains(t, msg.Err.Error(), tt.want)
			assert.Equal(t, "half", msg.RawText)
		})
	}
}

func TestParser_FrozenAfterDone(t *testing.T) {
	p := NewParser(nil)
	feed(p, frame("final"), "data: [DONE]\n", frame(" extra"))

	msg := p.Finish(errors.New("late close error"))
	assert.False(t, msg.Failed)
	assert.Equal(t, "final", msg.RawText)
}

func TestParser_AcceptsCRLFAndNoSpace(t *testing.T) {
	p := NewParser(nil)
	feed(p, strings.ReplaceAll(frame("a"), "\n", "\r\n"), "data:"+strings.TrimPrefix(frame("b"), "data: "), "data:[DONE]\r\n")

	msg := p.Finish(nil)
	assert.False(t, msg.Failed)
	assert.Equal(t, "ab", msg.RawText)
}
