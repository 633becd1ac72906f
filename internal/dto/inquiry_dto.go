package dto

import (
	"time"

	"github.com/quraniq/quraniq-api/internal/models"
)

// InquiryCreateRequest saves an already-answered question.
type InquiryCreateRequest struct {
	Title   string `json:"title" validate:"required,min=3,max=500"`
	Content string `json:"content" validate:"required"`
}

// InquiryResponse is the serialized inquiry returned to clients.
type InquiryResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewInquiryResponse converts a model into a DTO.
func NewInquiryResponse(model models.Inquiry) InquiryResponse {
	return InquiryResponse{
		ID:        model.ID,
		Title:     model.Title,
		Content:   model.Content,
		Status:    model.Status,
		CreatedAt: model.CreatedAt,
	}
}

// NewInquiryResponseSlice converts a slice of models into DTOs.
func NewInquiryResponseSlice(inquiries []models.Inquiry) []InquiryResponse {
	responses := make([]InquiryResponse, 0, len(inquiries))
	for _, inquiry := range inquiries {
		responses = append(responses, NewInquiryResponse(inquiry))
	}

	return responses
}
