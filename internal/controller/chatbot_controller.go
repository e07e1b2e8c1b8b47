package controller

import (
	"bufio"
	"context"
	"errors"
	"fmt"

	"supercharged-notes-be/internal/constant"
	"supercharged-notes-be/internal/dto"
	"supercharged-notes-be/internal/pkg/serverutils"
	"supercharged-notes-be/internal/service"
	"supercharged-notes-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatbotService service.IChatbotService
	auth           fiber.Handler
}

func NewChatbotController(chatbotService service.IChatbotService, auth fiber.Handler) IChatbotController {
	return &chatbotController{
		chatbotService: chatbotService,
		auth:           auth,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chatbot")
	h.Post("", c.auth, c.SendChat)
}

func (c *chatbotController) SendChat(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, constant.ErrMsgUnauthorized)
	}

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constant.ErrMsgInvalidBody)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if !req.Stream {
		res, err := c.chatbotService.SendChat(ctx.UserContext(), userId, &req)
		if err != nil {
			return upstreamFailure(ctx, err)
		}
		return ctx.JSON(res)
	}

	return c.stream(ctx, userId, &req)
}

// stream opens the upstream before any header is committed, so an open
// failure can still be answered with a JSON error.
func (c *chatbotController) stream(ctx *fiber.Ctx, userId string, req *dto.SendChatRequest) error {
	// The body writer runs after the handler returns, when the request
	// context is already recycled. Keep only the trace parent.
	parent := trace.ContextWithSpan(context.Background(), trace.SpanFromContext(ctx.UserContext()))
	streamCtx, cancel := context.WithCancel(parent)

	stream, err := c.chatbotService.OpenStream(streamCtx, userId, req)
	if err != nil {
		cancel()
		return upstreamFailure(ctx, err)
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache, no-transform")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")
	ctx.Status(fiber.StatusOK)

	ctx.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		// A failed write means the client left; cancelling aborts the upstream read.
		defer cancel()
		_ = stream.Relay(streamCtx, w)
	})
	return nil
}

func upstreamFailure(ctx *fiber.Ctx, err error) error {
	if !errors.Is(err, service.ErrUpstream) {
		return err
	}
	message := constant.ErrMsgUpstreamFailure
	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		message = fmt.Sprintf("%s: %s", message, statusErr.Message)
	}
	return ctx.Status(fiber.StatusBadGateway).JSON(dto.SendChatResponse{
		Success: false,
		Message: message,
	})
}
