package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/quraniq/quraniq-api/internal/models"
)

// InquiryRepository exposes inquiry persistence helpers. All reads and
// mutations are owner-scoped: an inquiry is only ever visible to the
// user that created it.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	ListByUser(ctx context.Context, userID uint) ([]models.Inquiry, error)
	GetByID(ctx context.Context, id string, userID uint) (models.Inquiry, error)
	SettleContent(ctx context.Context, id string, content string, status string) error
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string, userID uint) (int64, error)
}

type inquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository constructs a repository.
func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *inquiryRepository) ListByUser(ctx context.Context, userID uint) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&inquiries).Error
	return inquiries, err
}

func (r *inquiryRepository) GetByID(ctx context.Context, id string, userID uint) (models.Inquiry, error) {
	var inquiry models.Inquiry
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&inquiry).Error
	return inquiry, err
}

// SettleContent writes the full answer and target status in one update.
// Terminal rows are excluded so settled content can never be rewritten.
func (r *inquiryRepository) SettleContent(ctx context.Context, id string, content string, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Inquiry{}).
		Where("id = ? AND status NOT IN ?", id, []string{models.InquiryStatusSettled, models.InquiryStatusErrored}).
		Updates(map[string]interface{}{"content": content, "status": status}).Error
}

func (r *inquiryRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Inquiry{}).
		Where("id = ? AND status NOT IN ?", id, []string{models.InquiryStatusSettled, models.InquiryStatusErrored}).
		Update("status", status).Error
}

func (r *inquiryRepository) Delete(ctx context.Context, id string, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Inquiry{})
	return result.RowsAffected, result.Error
}
