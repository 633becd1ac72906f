package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inquiry lifecycle states. Settled and errored are terminal; content is
// never mutated once either is reached.
const (
	InquiryStatusPending    = "pending"
	InquiryStatusGenerating = "generating"
	InquiryStatusRevealing  = "revealing"
	InquiryStatusSettled    = "settled"
	InquiryStatusErrored    = "errored"
)

// Inquiry is a saved question together with its generated answer.
type Inquiry struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Title     string    `gorm:"size:512;not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Status    string    `gorm:"size:32;not null;default:pending" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns an opaque identifier when none is provided.
func (i *Inquiry) BeforeCreate(_ *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
