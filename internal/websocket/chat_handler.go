package websocket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"supercharged-notes-be/internal/constant"
	"supercharged-notes-be/internal/dto"
	"supercharged-notes-be/internal/pkg/logger"
	"supercharged-notes-be/internal/pkg/serverutils"
	"supercharged-notes-be/internal/service"
	"supercharged-notes-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const logModule = "CHAT_WS"

// ChatHandler streams chat answers over a websocket. The client sends one
// SendChatRequest as its first text message and then receives every upstream
// SSE line as its own text message, ending with "data: [DONE]".
type ChatHandler struct {
	chatbotService service.IChatbotService
	auth           fiber.Handler
	logger         logger.ILogger
}

func NewChatHandler(chatbotService service.IChatbotService, auth fiber.Handler, log logger.ILogger) *ChatHandler {
	return &ChatHandler{
		chatbotService: chatbotService,
		auth:           auth,
		logger:         log,
	}
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/chatbot/ws", upgradeOnly, promoteQueryToken, h.auth, websocket.New(h.serve))
}

func upgradeOnly(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}
	return ctx.Next()
}

// promoteQueryToken lets browsers, which cannot set headers on a websocket
// handshake, pass the bearer token as ?token=.
func promoteQueryToken(ctx *fiber.Ctx) error {
	if token := ctx.Query("token"); token != "" && ctx.Get(fiber.HeaderAuthorization) == "" {
		ctx.Request().Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return ctx.Next()
}

func (h *ChatHandler) serve(conn *websocket.Conn) {
	c := &chatConn{conn: conn}
	defer conn.Close()

	userId, _ := conn.Locals(serverutils.UserIDLocal).(string)
	if userId == "" {
		h.fail(c, constant.ErrMsgUnauthorized)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		return
	}

	var req dto.SendChatRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		h.fail(c, constant.ErrMsgInvalidBody)
		return
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			h.fail(c, fe.Message)
			return
		}
		h.fail(c, constant.ErrMsgInvalidBody)
		return
	}
	req.Stream = true

	ctx, cancel := context.WithCancel(context.Background())
	var pumps sync.WaitGroup
	pumps.Add(2)
	go func() {
		defer pumps.Done()
		c.readPump(cancel)
	}()
	go func() {
		defer pumps.Done()
		c.pingPump(ctx.Done())
	}()
	// The library recycles conn once serve returns, so both pumps must have
	// exited by then. Closing the socket unblocks the pending read.
	defer func() {
		cancel()
		_ = conn.Close()
		pumps.Wait()
	}()

	stream, err := h.chatbotService.OpenStream(ctx, userId, &req)
	if err != nil {
		message := constant.ErrMsgUpstreamFailure
		var statusErr *llm.StatusError
		if errors.As(err, &statusErr) {
			message = message + ": " + statusErr.Message
		}
		h.fail(c, message)
		return
	}

	err = stream.ForEachLine(ctx, func(line []byte) error {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			return nil
		}
		return c.writeText(line)
	})
	if err != nil {
		h.logger.Info(logModule, "Stream ended early", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}
	c.close(websocket.CloseNormalClosure, "")
}

// fail sends an error record the chat stream parser understands, then closes.
func (h *ChatHandler) fail(c *chatConn, message string) {
	payload, _ := json.Marshal(map[string]interface{}{
		"error": map[string]string{"message": message},
	})
	_ = c.writeText(append([]byte("data: "), payload...))
	c.close(websocket.CloseNormalClosure, "")
}
