package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/quraniq/quraniq-api/internal/dto"
	"github.com/quraniq/quraniq-api/internal/journeys"
	"github.com/quraniq/quraniq-api/internal/repository"
)

// ErrUnknownJourneyStep indicates a journey or step outside the catalog.
var ErrUnknownJourneyStep = errors.New("unknown journey or step")

// ErrUserNotFound indicates the progress owner no longer exists.
var ErrUserNotFound = errors.New("user not found")

// JourneyService manages per-user journey progress.
type JourneyService interface {
	UpdateProgress(ctx context.Context, userID uint, req dto.ProgressUpdateRequest) (dto.ProgressResponse, error)
	GetProgress(ctx context.Context, userID uint) (dto.ProgressResponse, error)
}

type journeyService struct {
	users     repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewJourneyService constructs a journey service.
func NewJourneyService(users repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) JourneyService {
	return &journeyService{
		users:     users,
		validator: validate,
		logger:    logger.With().Str("component", "journey_service").Logger(),
	}
}

// UpdateProgress merges a completed step into the user's progress map.
// Completed step sets only ever grow and the current step never moves
// backwards, so replayed or out-of-order updates cannot lose progress.
func (s *journeyService) UpdateProgress(ctx context.Context, userID uint, req dto.ProgressUpdateRequest) (dto.ProgressResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ProgressResponse{}, err
	}

	if !journeys.ValidStep(req.JourneyID, req.StepID) {
		return dto.ProgressResponse{}, ErrUnknownJourneyStep
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProgressResponse{}, ErrUserNotFound
		}
		return dto.ProgressResponse{}, fmt.Errorf("load user: %w", err)
	}

	progress := decodeProgress(user.JourneyProgress)

	// Progress maps are keyed by the journey id's decimal form, the
	// shape JSON object keys force on numeric ids.
	key := strconv.Itoa(req.JourneyID)
	state := progress[key]
	state.CompletedStepIDs = mergeStep(state.CompletedStepIDs, req.StepID)

	journey, _ := journeys.Lookup(req.JourneyID)
	next := req.StepID + 1
	if next > journey.TotalSteps {
		next = journey.TotalSteps
	}
	if next > state.CurrentStepID {
		state.CurrentStepID = next
	}

	progress[key] = state

	encoded, err := json.Marshal(progress)
	if err != nil {
		return dto.ProgressResponse{}, fmt.Errorf("encode progress: %w", err)
	}

	if err := s.users.UpdateJourneyProgress(ctx, userID, datatypes.JSON(encoded)); err != nil {
		return dto.ProgressResponse{}, fmt.Errorf("save progress: %w", err)
	}

	s.logger.Info().Uint("user_id", userID).Int("journey_id", req.JourneyID).Int("step_id", req.StepID).Msg("journey progress updated")

	return dto.ProgressResponse{Journeys: progress}, nil
}

func (s *journeyService) GetProgress(ctx context.Context, userID uint) (dto.ProgressResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProgressResponse{}, ErrUserNotFound
		}
		return dto.ProgressResponse{}, fmt.Errorf("load user: %w", err)
	}

	return dto.ProgressResponse{Journeys: decodeProgress(user.JourneyProgress)}, nil
}

func decodeProgress(raw datatypes.JSON) map[string]dto.JourneyProgress {
	progress := map[string]dto.JourneyProgress{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &progress)
	}
	return progress
}

func mergeStep(completed []int, stepID int) []int {
	for _, id := range completed {
		if id == stepID {
			return completed
		}
	}
	completed = append(completed, stepID)
	sort.Ints(completed)
	return completed
}
