package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/quraniq/quraniq-api/internal/dto"
	"github.com/quraniq/quraniq-api/internal/service"
	"github.com/quraniq/quraniq-api/internal/utils"
)

// AuthHandler exposes registration, login and session verification.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
	router.Post("/verify", h.verify)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Register(c.Context(), req)
	if err != nil {
		var validationErr validator.ValidationErrors
		switch {
		case errors.As(err, &validationErr):
			return utils.SendError(c, fiber.StatusBadRequest, "name, email and password are required")
		case errors.Is(err, service.ErrEmailTaken):
			return utils.SendError(c, fiber.StatusConflict, "email already registered")
		default:
			h.logger.Error().Err(err).Msg("registration failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to register")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "account created", result)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Login(c.Context(), req)
	if err != nil {
		var validationErr validator.ValidationErrors
		switch {
		case errors.As(err, &validationErr):
			return utils.SendError(c, fiber.StatusBadRequest, "email and password are required")
		case errors.Is(err, service.ErrInvalidCredentials):
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid email or password")
		default:
			h.logger.Error().Err(err).Msg("login failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to sign in")
		}
	}

	return utils.SendSuccess(c, "signed in", result)
}

// verify accepts the token either as a bearer header or in the body,
// matching the original client which sent both forms.
func (h *AuthHandler) verify(c *fiber.Ctx) error {
	token := bearerFromHeader(c)
	if token == "" {
		var body struct {
			Token string `json:"token"`
		}
		if err := c.BodyParser(&body); err == nil {
			token = strings.TrimSpace(body.Token)
		}
	}

	if token == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "no token provided")
	}

	user, err := h.service.Verify(c.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid or expired token")
		}
		h.logger.Error().Err(err).Msg("verification failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to verify session")
	}

	return utils.SendSuccess(c, "session valid", user)
}

func bearerFromHeader(c *fiber.Ctx) string {
	authorization := c.Get("Authorization")
	const bearer = "Bearer "
	if strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
		return strings.TrimSpace(authorization[len(bearer):])
	}
	return ""
}
