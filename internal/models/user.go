package models

import (
	"time"

	"gorm.io/datatypes"
)

// User represents a registered seeker who owns inquiries and journey progress.
type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Email           string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash    string         `gorm:"size:255;not null" json:"-"`
	JourneyProgress datatypes.JSON `json:"journey_progress"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
