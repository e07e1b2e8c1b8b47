package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"supercharged-notes-be/internal/constant"
	"supercharged-notes-be/internal/dto"
	"supercharged-notes-be/internal/pkg/logger"
	"supercharged-notes-be/pkg/ai/pipeline"
	"supercharged-notes-be/pkg/ai/relay"
	"supercharged-notes-be/pkg/ai/router"
	"supercharged-notes-be/pkg/llm"
	ragcontext "supercharged-notes-be/pkg/rag/context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrUpstream wraps any failure to get an answer from the model provider.
var ErrUpstream = errors.New("upstream model failure")

// ContextResolver builds the system context for a request.
type ContextResolver interface {
	Resolve(ctx context.Context, userID string, scope ragcontext.Scope) string
}

type IChatbotService interface {
	// SendChat answers in one piece.
	SendChat(ctx context.Context, userId string, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	// OpenStream resolves context and opens the upstream stream. Nothing has
	// been sent to the client yet when it returns; ctx must outlive the relay.
	OpenStream(ctx context.Context, userId string, request *dto.SendChatRequest) (*ChatStream, error)
}

type chatbotService struct {
	resolver  ContextResolver
	pipeline  *pipeline.ChatPipeline
	publisher IPublisherService
	logger    logger.ILogger
	tracer    trace.Tracer
}

func NewChatbotService(
	resolver ContextResolver,
	chatPipeline *pipeline.ChatPipeline,
	publisher IPublisherService,
	log logger.ILogger,
) IChatbotService {
	return &chatbotService{
		resolver:  resolver,
		pipeline:  chatPipeline,
		publisher: publisher,
		logger:    log,
		tracer:    otel.Tracer("supercharged-notes-be/internal/service"),
	}
}

// ScopeFromRequest turns the optional contextDocument into a resolver scope.
// A present contextDocument always yields a document scope, even with an
// unrecognized kind or a blank id, so the model is told the document could not
// be loaded instead of silently widening to all material.
func ScopeFromRequest(req *dto.SendChatRequest) ragcontext.Scope {
	doc := req.ContextDocument
	if doc == nil {
		return ragcontext.General()
	}
	kind, _ := ragcontext.ParseDocumentKind(doc.ResolvedKind())
	return ragcontext.Document(ragcontext.DocumentRef{
		Kind:        kind,
		ID:          strings.TrimSpace(doc.Id),
		DisplayName: doc.ResolvedName(),
	})
}

func historyMessages(history []dto.ChatHistoryMessage) []llm.Message {
	out := make([]llm.Message, 0, len(history))
	for _, h := range history {
		out = append(out, llm.Message{Role: h.Role, Content: h.Content})
	}
	return out
}

func (s *chatbotService) prepare(ctx context.Context, userId string, req *dto.SendChatRequest) (pipeline.Prepared, router.Mode, ragcontext.Scope) {
	mode := router.ParseMode(req.Mode())
	scope := ScopeFromRequest(req)
	systemContext := s.resolver.Resolve(ctx, userId, scope)
	return s.pipeline.Prepare(mode, systemContext, historyMessages(req.History), req.Message), mode, scope
}

func (s *chatbotService) SendChat(ctx context.Context, userId string, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	start := time.Now()
	prepared, mode, scope := s.prepare(ctx, userId, req)

	answer, err := s.pipeline.Complete(ctx, prepared)

	usage := dto.ChatUsageMessage{
		UserId:   userId,
		Mode:     string(mode),
		Model:    prepared.Model,
		Scope:    scope.Kind(),
		Outcome:  constant.ChatOutcomeCompleted,
		Bytes:    int64(len(answer)),
		Duration: time.Since(start),
	}
	if err != nil {
		usage.Outcome = constant.ChatOutcomeUpstreamFail
		s.logger.Error("CHATBOT", "Completion failed", map[string]interface{}{
			"user_id": userId,
			"model":   prepared.Model,
			"error":   err.Error(),
		})
	}
	s.publishUsage(usage)

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return &dto.SendChatResponse{Success: true, Response: answer}, nil
}

func (s *chatbotService) OpenStream(ctx context.Context, userId string, req *dto.SendChatRequest) (*ChatStream, error) {
	start := time.Now()
	prepared, mode, scope := s.prepare(ctx, userId, req)

	usage := dto.ChatUsageMessage{
		UserId:   userId,
		Mode:     string(mode),
		Model:    prepared.Model,
		Scope:    scope.Kind(),
		Streamed: true,
	}

	body, err := s.pipeline.Open(ctx, prepared)
	if err != nil {
		usage.Outcome = constant.ChatOutcomeOpenFail
		usage.Duration = time.Since(start)
		s.publishUsage(usage)
		s.logger.Error("CHATBOT", "Failed to open upstream stream", map[string]interface{}{
			"user_id": userId,
			"model":   prepared.Model,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	s.logger.Info("CHATBOT", "Upstream stream opened", map[string]interface{}{
		"user_id": userId,
		"model":   prepared.Model,
		"scope":   scope.Kind(),
	})

	return &ChatStream{
		body:    body,
		usage:   usage,
		start:   start,
		service: s,
	}, nil
}

func (s *chatbotService) publishUsage(usage dto.ChatUsageMessage) {
	usage.OccurredAt = time.Now()
	if err := s.publisher.PublishChatUsage(context.Background(), usage); err != nil {
		s.logger.Warn("CHATBOT", "Failed to publish chat usage", map[string]interface{}{
			"user_id": usage.UserId,
			"error":   err.Error(),
		})
	}
}

// ChatStream is one open upstream response waiting to be relayed.
type ChatStream struct {
	body      io.ReadCloser
	usage     dto.ChatUsageMessage
	start     time.Time
	service   *chatbotService
	closeOnce sync.Once
}

// Relay copies the upstream SSE bytes to w, flushing per line.
func (cs *ChatStream) Relay(ctx context.Context, w *bufio.Writer) error {
	ctx, span := cs.service.tracer.Start(ctx, "chatbot.Relay")
	defer span.End()

	stats, err := relay.Pipe(ctx, w, cs.body)
	cs.finish(stats, err)
	span.SetAttributes(
		attribute.Int64("bytes", stats.Bytes),
		attribute.Bool("saw_done", stats.SawDone),
	)
	return err
}

// ForEachLine hands each upstream line to fn; used by message based transports.
func (cs *ChatStream) ForEachLine(ctx context.Context, fn func(line []byte) error) error {
	stats, err := relay.ForEachLine(ctx, cs.body, fn)
	cs.finish(stats, err)
	return err
}

// Close releases the upstream connection without relaying.
func (cs *ChatStream) Close() error {
	var err error
	cs.closeOnce.Do(func() { err = cs.body.Close() })
	return err
}

func (cs *ChatStream) finish(stats relay.Stats, err error) {
	_ = cs.Close()

	usage := cs.usage
	usage.Bytes = stats.Bytes
	usage.Duration = time.Since(cs.start)

	details := map[string]interface{}{
		"user_id":  usage.UserId,
		"model":    usage.Model,
		"bytes":    stats.Bytes,
		"lines":    stats.Lines,
		"saw_done": stats.SawDone,
	}

	switch {
	case err == nil && stats.SawDone:
		usage.Outcome = constant.ChatOutcomeCompleted
		cs.service.logger.Info("RELAY", "Stream completed", details)
	case errors.Is(err, relay.ErrClientGone) || errors.Is(err, context.Canceled):
		usage.Outcome = constant.ChatOutcomeClientGone
		cs.service.logger.Info("RELAY", "Client disconnected, upstream released", details)
	default:
		usage.Outcome = constant.ChatOutcomeUpstreamFail
		if err != nil {
			details["error"] = err.Error()
		}
		cs.service.logger.Warn("RELAY", "Upstream ended without [DONE]", details)
	}

	cs.service.publishUsage(usage)
}
