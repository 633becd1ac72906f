package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/quraniq/quraniq-api/internal/dto"
	"github.com/quraniq/quraniq-api/internal/service"
	"github.com/quraniq/quraniq-api/internal/utils"
)

// JourneyHandler exposes worship journey progress endpoints.
type JourneyHandler struct {
	journeys service.JourneyService
	logger   zerolog.Logger
}

func NewJourneyHandler(journeys service.JourneyService, logger zerolog.Logger) *JourneyHandler {
	return &JourneyHandler{
		journeys: journeys,
		logger:   logger.With().Str("component", "journey_handler").Logger(),
	}
}

// Register wires journey progress routes.
func (h *JourneyHandler) Register(router fiber.Router) {
	router.Get("/progress", h.getProgress)
	router.Post("/progress", h.updateProgress)
}

func (h *JourneyHandler) getProgress(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	progress, err := h.journeys.GetProgress(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		}
		h.logger.Error().Err(err).Uint("user_id", userID).Msg("failed to load journey progress")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load progress")
	}

	return utils.SendSuccess(c, "progress retrieved", progress)
}

func (h *JourneyHandler) updateProgress(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var req dto.ProgressUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	progress, err := h.journeys.UpdateProgress(c.Context(), userID, req)
	if err != nil {
		var validationErr validator.ValidationErrors
		switch {
		case errors.As(err, &validationErr), errors.Is(err, service.ErrUnknownJourneyStep):
			return utils.SendError(c, fiber.StatusBadRequest, "unknown journey or step")
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		default:
			h.logger.Error().Err(err).Uint("user_id", userID).Msg("failed to update journey progress")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update progress")
		}
	}

	return utils.SendSuccess(c, "progress updated", progress)
}
