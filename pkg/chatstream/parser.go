package chatstream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	dataPrefix   = "data:"
	doneSentinel = "[DONE]"
)

var ErrNoTerminal = errors.New("stream closed before [DONE]")

type deltaRecord struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
	Error json.RawMessage `json:"error,omitempty"`
}

// Parser turns the relayed byte stream into a Message. Write accepts chunks
// split at any byte boundary. Not safe for concurrent use.
type Parser struct {
	buf      []byte
	msg      Message
	terminal bool
	onUpdate func(Message)
}

// NewParser starts an empty, streaming assistant message. onUpdate, if set,
// receives a snapshot after every applied delta and on the final state.
func NewParser(onUpdate func(Message)) *Parser {
	return &Parser{
		msg:      newAssistantMessage(),
		onUpdate: onUpdate,
	}
}

// Write never fails; bytes after the terminal marker are ignored.
func (p *Parser) Write(chunk []byte) (int, error) {
	if p.terminal {
		return len(chunk), nil
	}
	p.buf = append(p.buf, chunk...)

	for !p.terminal {
		i := bytes.IndexByte(p.buf, '\n')
		if i < 0 {
			break
		}
		line := string(p.buf[:i])
		p.buf = p.buf[i+1:]
		p.handleLine(line)
	}
	if p.terminal {
		p.buf = nil
	}
	return len(chunk), nil
}

func (p *Parser) handleLine(line string) {
	line = strings.TrimRight(line, "\r")
	if !strings.HasPrefix(line, dataPrefix) {
		// blank separators, comments and other SSE fields
		return
	}
	payload := strings.TrimSpace(line[len(dataPrefix):])
	if payload == "" {
		return
	}

	if payload == doneSentinel {
		p.terminal = true
		p.msg.Streaming = false
		p.notify()
		return
	}

	var rec deltaRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return
	}

	if len(rec.Error) > 0 && string(rec.Error) != "null" {
		p.terminal = true
		p.msg.fail(fmt.Errorf("upstream error: %s", errorMessage(rec.Error)))
		p.notify()
		return
	}

	var text strings.Builder
	for _, c := range rec.Choices {
		text.WriteString(c.Delta.Content)
	}
	if text.Len() == 0 {
		return
	}
	p.msg.appendDelta(text.String())
	p.notify()
}

// errorMessage accepts both {"message": "..."} objects and bare strings.
func errorMessage(raw json.RawMessage) string {
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s
	}
	return string(raw)
}

// Finish is called once the transport has ended, with the transport error
// if any. Without a terminal marker the message fails.
func (p *Parser) Finish(transportErr error) Message {
	if !p.terminal {
		p.terminal = true
		if transportErr == nil {
			transportErr = ErrNoTerminal
		}
		p.msg.fail(transportErr)
		p.notify()
	}
	return p.msg.clone()
}

// Done reports whether the terminal marker (or a failure) has been seen.
func (p *Parser) Done() bool {
	return p.terminal
}

// Message returns a snapshot of the current state.
func (p *Parser) Message() Message {
	return p.msg.clone()
}

func (p *Parser) notify() {
	if p.onUpdate != nil {
		p.onUpdate(p.msg.clone())
	}
}
