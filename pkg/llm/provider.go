package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// ErrUpstreamStatus is wrapped by StatusError so callers can errors.Is on it.
var ErrUpstreamStatus = errors.New("upstream returned non-success status")

// StatusError is a non-2xx reply received before any stream byte.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrUpstreamStatus
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// Stream opens a streaming completion. The body is OpenAI-compatible SSE:
	// "data: {json}" lines ending with "data: [DONE]". Cancelling ctx aborts the read.
	Stream(ctx context.Context, history []Message, options ...Option) (io.ReadCloser, error)
}
