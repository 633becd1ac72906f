package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/quraniq/quraniq-api/internal/dto"
	"github.com/quraniq/quraniq-api/internal/models"
	"github.com/quraniq/quraniq-api/internal/repository"
)

// ErrInquiryNotFound indicates the inquiry does not exist or belongs to
// another user; callers must not be able to tell which.
var ErrInquiryNotFound = errors.New("inquiry not found")

// InquiryService exposes owner-scoped inquiry operations.
type InquiryService interface {
	Create(ctx context.Context, userID uint, req dto.InquiryCreateRequest) (dto.InquiryResponse, error)
	List(ctx context.Context, userID uint) ([]dto.InquiryResponse, error)
	Delete(ctx context.Context, userID uint, inquiryID string) error
}

type inquiryService struct {
	inquiries repository.InquiryRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	sanitizer *bluemonday.Policy
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewInquiryService constructs an inquiry service. cache may be nil.
func NewInquiryService(inquiries repository.InquiryRepository, cache *redis.Client, ttl time.Duration, validate *validator.Validate, logger zerolog.Logger) InquiryService {
	return &inquiryService{
		inquiries: inquiries,
		cache:     cache,
		cacheTTL:  ttl,
		sanitizer: bluemonday.StrictPolicy(),
		validator: validate,
		logger:    logger.With().Str("component", "inquiry_service").Logger(),
	}
}

func (s *inquiryService) Create(ctx context.Context, userID uint, req dto.InquiryCreateRequest) (dto.InquiryResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.InquiryResponse{}, err
	}

	inquiry := models.Inquiry{
		UserID:  userID,
		Title:   strings.TrimSpace(s.sanitizer.Sanitize(req.Title)),
		Content: req.Content,
		Status:  models.InquiryStatusSettled,
	}

	if err := s.inquiries.Create(ctx, &inquiry); err != nil {
		return dto.InquiryResponse{}, fmt.Errorf("create inquiry: %w", err)
	}

	s.invalidate(ctx, userID)

	return dto.NewInquiryResponse(inquiry), nil
}

func (s *inquiryService) List(ctx context.Context, userID uint) ([]dto.InquiryResponse, error) {
	cacheKey := inquiryCacheKey(userID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var responses []dto.InquiryResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &responses); unmarshalErr == nil {
				s.logger.Debug().Uint("user_id", userID).Msg("inquiry list cache hit")
				return responses, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read inquiry cache")
		}
	}

	inquiries, err := s.inquiries.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}

	responses := dto.NewInquiryResponseSlice(inquiries)

	if s.cache != nil {
		if payload, err := json.Marshal(responses); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to write inquiry cache")
			}
		}
	}

	return responses, nil
}

func (s *inquiryService) Delete(ctx context.Context, userID uint, inquiryID string) error {
	affected, err := s.inquiries.Delete(ctx, inquiryID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInquiryNotFound
		}
		return fmt.Errorf("delete inquiry: %w", err)
	}
	if affected == 0 {
		return ErrInquiryNotFound
	}

	s.invalidate(ctx, userID)
	return nil
}

func (s *inquiryService) invalidate(ctx context.Context, userID uint) {
	invalidateInquiryCache(ctx, s.cache, userID, s.logger)
}

func inquiryCacheKey(userID uint) string {
	return fmt.Sprintf("inquiries:user:%d", userID)
}

func invalidateInquiryCache(ctx context.Context, cache *redis.Client, userID uint, logger zerolog.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Del(ctx, inquiryCacheKey(userID)).Err(); err != nil {
		logger.Warn().Err(err).Uint("user_id", userID).Msg("failed to invalidate inquiry cache")
	}
}
