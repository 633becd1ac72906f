package dto

import (
	"encoding/json"
	"time"

	"github.com/quraniq/quraniq-api/internal/models"
)

// RegisterRequest describes the payload for creating a new account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest describes the credential payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the serialized account representation. The password
// hash never leaves the service layer.
type UserResponse struct {
	ID              uint                       `json:"id"`
	Name            string                     `json:"name"`
	Email           string                     `json:"email"`
	JourneyProgress map[string]JourneyProgress `json:"journey_progress"`
	JoinedAt        time.Time                  `json:"joined_at"`
}

// AuthResponse couples a signed token with the account it represents.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse converts a model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	progress := map[string]JourneyProgress{}
	if len(model.JourneyProgress) > 0 {
		// A corrupt progress blob degrades to an empty map rather than
		// failing the whole response.
		_ = json.Unmarshal(model.JourneyProgress, &progress)
	}

	return UserResponse{
		ID:              model.ID,
		Name:            model.Name,
		Email:           model.Email,
		JourneyProgress: progress,
		JoinedAt:        model.CreatedAt,
	}
}
