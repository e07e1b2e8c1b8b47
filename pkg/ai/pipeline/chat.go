package pipeline

import (
	"context"
	"io"
	"strings"

	"supercharged-notes-be/internal/pkg/logger"
	"supercharged-notes-be/pkg/ai/router"
	"supercharged-notes-be/pkg/llm"
)

const (
	detailedPersona = "You are an expert tutor. Provide detailed, in-depth answers with examples and thorough explanations."
	quickPersona    = "You are a helpful assistant. Provide concise, to-the-point answers."
)

// Persona is the tone instruction for a response mode.
func Persona(mode router.Mode) string {
	if mode == router.ModeQuick {
		return quickPersona
	}
	return detailedPersona
}

// BuildMessages assembles [system, ...history, user]. The single system
// message carries the persona followed by the resolved context. Client
// supplied system turns are dropped.
func BuildMessages(mode router.Mode, systemContext string, history []llm.Message, query string) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{
		Role:    "system",
		Content: Persona(mode) + "\n\n" + systemContext,
	})

	for _, m := range history {
		role := strings.ToLower(strings.TrimSpace(m.Role))
		if role == "model" {
			role = "assistant"
		}
		if role != "user" && role != "assistant" {
			continue
		}
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}

	messages = append(messages, llm.Message{
		Role:    "user",
		Content: query,
	})
	return messages
}

// ChatPipeline runs assembled conversations against the configured provider.
type ChatPipeline struct {
	llmProvider llm.LLMProvider
	router      *router.ModelRouter
	logger      logger.ILogger
}

func NewChatPipeline(llmProvider llm.LLMProvider, modelRouter *router.ModelRouter, log logger.ILogger) *ChatPipeline {
	return &ChatPipeline{
		llmProvider: llmProvider,
		router:      modelRouter,
		logger:      log,
	}
}

// Prepared is one request ready to be sent upstream.
type Prepared struct {
	Model    string
	Messages []llm.Message
}

func (p *ChatPipeline) Prepare(mode router.Mode, systemContext string, history []llm.Message, query string) Prepared {
	return Prepared{
		Model:    p.router.Route(mode),
		Messages: BuildMessages(mode, systemContext, history, query),
	}
}

// Complete returns the whole answer in one value.
func (p *ChatPipeline) Complete(ctx context.Context, req Prepared) (string, error) {
	p.logger.Debug("PIPELINE", "Executing completion", map[string]interface{}{
		"model":    req.Model,
		"messages": len(req.Messages),
	})
	return p.llmProvider.Chat(ctx, req.Messages, llm.WithModel(req.Model))
}

// Open starts the upstream stream. The caller owns the returned body.
func (p *ChatPipeline) Open(ctx context.Context, req Prepared) (io.ReadCloser, error) {
	p.logger.Debug("PIPELINE", "Opening stream", map[string]interface{}{
		"model":    req.Model,
		"messages": len(req.Messages),
	})
	return p.llmProvider.Stream(ctx, req.Messages, llm.WithModel(req.Model))
}
