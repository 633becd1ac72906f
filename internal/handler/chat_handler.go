package handler

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/quraniq/quraniq-api/internal/dto"
	"github.com/quraniq/quraniq-api/internal/middleware"
	"github.com/quraniq/quraniq-api/internal/prompt"
	"github.com/quraniq/quraniq-api/internal/service"
	"github.com/quraniq/quraniq-api/internal/utils"
	"github.com/quraniq/quraniq-api/pkg/ai"
)

// ChatHandler exposes the ask endpoint and the websocket reveal stream.
type ChatHandler struct {
	answers service.AnswerService
	reveals service.RevealService
	logger  zerolog.Logger
}

// NewChatHandler constructs a chat handler.
func NewChatHandler(answers service.AnswerService, reveals service.RevealService, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		answers: answers,
		reveals: reveals,
		logger:  logger.With().Str("component", "chat_handler").Logger(),
	}
}

// Register wires chat routes including the websocket upgrade.
func (h *ChatHandler) Register(router fiber.Router) {
	router.Post("/ask", h.ask)

	router.Use("/reveal", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			ctx := c.UserContext()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = middleware.ContextWithCorrelation(ctx, middleware.GetCorrelationID(c))
			c.Locals("request_ctx", ctx)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/reveal", websocket.New(h.reveal))
}

func (h *ChatHandler) ask(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var req dto.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.answers.Resolve(c.Context(), req)
	if err != nil {
		var validationErr validator.ValidationErrors
		switch {
		case errors.As(err, &validationErr), errors.Is(err, service.ErrInvalidQuestion):
			return utils.SendError(c, fiber.StatusBadRequest, "a question is required")
		case errors.Is(err, ai.ErrRateLimited):
			return utils.SendError(c, fiber.StatusTooManyRequests, service.RetryLaterMessage)
		default:
			h.logger.Error().Err(err).Uint("user_id", userID).Msg("failed to resolve question")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to generate response")
		}
	}

	return utils.SendSuccess(c, "answer generated", response)
}

func (h *ChatHandler) reveal(conn *websocket.Conn) {
	userID := websocketUserID(conn)
	if userID == 0 {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "authentication required"))
		_ = conn.Close()
		return
	}

	question := strings.TrimSpace(conn.Query("question"))
	req := dto.AskRequest{Question: question}
	if history := strings.TrimSpace(conn.Query("history")); history != "" {
		var turns []prompt.Turn
		if err := json.Unmarshal([]byte(history), &turns); err == nil {
			req.History = turns
		}
	}

	if question == "" {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "question required"))
		_ = conn.Close()
		return
	}

	baseCtx, _ := conn.Locals("request_ctx").(context.Context)
	if baseCtx == nil {
		baseCtx = context.Background()
	}

	h.logger.Info().Uint("user_id", userID).Msg("reveal session started")
	h.reveals.ServeReveal(baseCtx, conn, userID, req)
	_ = conn.Close()
	h.logger.Info().Uint("user_id", userID).Msg("reveal session finished")
}

func websocketUserID(conn *websocket.Conn) uint {
	if v := conn.Locals("user_id"); v != nil {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
