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

// InquiryHandler manages saved inquiry endpoints.
type InquiryHandler struct {
	inquiries service.InquiryService
	logger    zerolog.Logger
}

func NewInquiryHandler(inquiries service.InquiryService, logger zerolog.Logger) *InquiryHandler {
	return &InquiryHandler{
		inquiries: inquiries,
		logger:    logger.With().Str("component", "inquiry_handler").Logger(),
	}
}

// Register wires inquiry routes.
func (h *InquiryHandler) Register(router fiber.Router) {
	router.Post("/", h.create)
	router.Get("/", h.list)
	router.Delete("/:id", h.remove)
}

func (h *InquiryHandler) create(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var req dto.InquiryCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	inquiry, err := h.inquiries.Create(c.Context(), userID, req)
	if err != nil {
		var validationErr validator.ValidationErrors
		if errors.As(err, &validationErr) {
			return utils.SendError(c, fiber.StatusBadRequest, "title and content are required")
		}
		h.logger.Error().Err(err).Uint("user_id", userID).Msg("failed to create inquiry")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to save inquiry")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "inquiry saved", inquiry)
}

func (h *InquiryHandler) list(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	inquiries, err := h.inquiries.List(c.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Uint("user_id", userID).Msg("failed to list inquiries")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load inquiries")
	}

	return utils.SendSuccess(c, "inquiries retrieved", inquiries)
}

func (h *InquiryHandler) remove(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	inquiryID := c.Params("id")
	if err := h.inquiries.Delete(c.Context(), userID, inquiryID); err != nil {
		if errors.Is(err, service.ErrInquiryNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "inquiry not found")
		}
		h.logger.Error().Err(err).Uint("user_id", userID).Str("inquiry_id", inquiryID).Msg("failed to delete inquiry")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete inquiry")
	}

	return utils.SendSuccess(c, "inquiry deleted", nil)
}
