package service

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quraniq/quraniq-api/internal/dto"
	"github.com/quraniq/quraniq-api/internal/events"
	"github.com/quraniq/quraniq-api/internal/models"
	"github.com/quraniq/quraniq-api/internal/observability"
	"github.com/quraniq/quraniq-api/internal/repository"
	"github.com/quraniq/quraniq-api/internal/reveal"
	"github.com/quraniq/quraniq-api/pkg/ai"
)

// Reveal message kinds sent over the websocket.
const (
	RevealTypeInquiry = "inquiry"
	RevealTypeDelta   = "delta"
	RevealTypeSettled = "settled"
	RevealTypeError   = "error"
)

// RevealMessage is a single frame of the reveal stream.
type RevealMessage struct {
	Type        string               `json:"type"`
	Inquiry     *dto.InquiryResponse `json:"inquiry,omitempty"`
	Delta       string               `json:"delta,omitempty"`
	Suggestions []string             `json:"suggestions,omitempty"`
	Verses      []dto.VerseResponse  `json:"verses,omitempty"`
	Message     string               `json:"message,omitempty"`
}

// RevealConn is the subset of a websocket connection the session needs.
type RevealConn interface {
	WriteJSON(v interface{}) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// RevealService replays freshly generated answers word by word over a
// live connection. The full answer is always persisted before the
// first increment goes out, so a dropped connection can only ever cut
// the cosmetic replay short, never the stored content.
type RevealService interface {
	ServeReveal(ctx context.Context, conn RevealConn, userID uint, req dto.AskRequest)
}

type revealService struct {
	answers   AnswerService
	inquiries repository.InquiryRepository
	cache     *redis.Client
	publisher *events.Publisher
	logger    zerolog.Logger
	opts      reveal.Options
}

// NewRevealService constructs a reveal session service.
func NewRevealService(answers AnswerService, inquiries repository.InquiryRepository, cache *redis.Client, publisher *events.Publisher, logger zerolog.Logger, opts reveal.Options) RevealService {
	return &revealService{
		answers:   answers,
		inquiries: inquiries,
		cache:     cache,
		publisher: publisher,
		logger:    logger.With().Str("component", "reveal_service").Logger(),
		opts:      opts,
	}
}

func (s *revealService) ServeReveal(parent context.Context, conn RevealConn, userID uint, req dto.AskRequest) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// The client never sends data frames after the question; any read
	// result (close, error, unexpected frame) tears the session down.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	inquiry := models.Inquiry{
		UserID: userID,
		Title:  req.Question,
		Status: models.InquiryStatusPending,
	}
	if err := s.inquiries.Create(ctx, &inquiry); err != nil {
		s.logger.Error().Err(err).Msg("failed to create inquiry")
		s.send(conn, RevealMessage{Type: RevealTypeError, Message: "Could not save your inquiry. Please try again."})
		observability.RevealSessions().WithLabelValues("store_error").Inc()
		return
	}
	invalidateInquiryCache(ctx, s.cache, userID, s.logger)

	pending := dto.NewInquiryResponse(inquiry)
	s.send(conn, RevealMessage{Type: RevealTypeInquiry, Inquiry: &pending})

	if err := s.inquiries.UpdateStatus(ctx, inquiry.ID, models.InquiryStatusGenerating); err != nil {
		s.logger.Warn().Err(err).Str("inquiry_id", inquiry.ID).Msg("failed to mark inquiry generating")
	}

	response, err := s.answers.Resolve(ctx, req)
	if err != nil {
		s.settleErrored(ctx, conn, inquiry, err)
		return
	}

	// Authoritative content lands in full, before any increment is
	// revealed. Interrupting the replay below cannot truncate it.
	if err := s.inquiries.SettleContent(ctx, inquiry.ID, response.Answer, models.InquiryStatusRevealing); err != nil {
		s.logger.Error().Err(err).Str("inquiry_id", inquiry.ID).Msg("failed to persist answer")
		message := "Could not save your inquiry. Please try again."
		s.markErrored(context.WithoutCancel(parent), inquiry, message)
		s.send(conn, RevealMessage{Type: RevealTypeError, Message: message})
		observability.RevealSessions().WithLabelValues("store_error").Inc()
		return
	}
	invalidateInquiryCache(ctx, s.cache, userID, s.logger)

	interrupted := false
	for increment := range reveal.Stream(ctx, response.Answer, s.opts) {
		if err := s.send(conn, RevealMessage{Type: RevealTypeDelta, Delta: increment}); err != nil {
			interrupted = true
			cancel()
			break
		}
	}
	if ctx.Err() != nil {
		interrupted = true
	}

	// Settling happens regardless of how the replay ended. The parent
	// context may already be gone, so use a detached one.
	settleCtx := context.WithoutCancel(parent)
	if err := s.inquiries.UpdateStatus(settleCtx, inquiry.ID, models.InquiryStatusSettled); err != nil {
		s.logger.Warn().Err(err).Str("inquiry_id", inquiry.ID).Msg("failed to settle inquiry")
	}
	invalidateInquiryCache(settleCtx, s.cache, userID, s.logger)

	s.publisher.InquirySettled(events.InquiryEvent{
		InquiryID: inquiry.ID,
		UserID:    userID,
		Status:    models.InquiryStatusSettled,
	})

	if interrupted {
		observability.RevealSessions().WithLabelValues("interrupted").Inc()
		s.logger.Info().Str("inquiry_id", inquiry.ID).Msg("reveal interrupted; stored content remains complete")
		return
	}

	settled, loadErr := s.inquiries.GetByID(settleCtx, inquiry.ID, userID)
	frame := RevealMessage{
		Type:        RevealTypeSettled,
		Suggestions: response.Suggestions,
		Verses:      response.Verses,
	}
	if loadErr == nil {
		final := dto.NewInquiryResponse(settled)
		frame.Inquiry = &final
	}
	s.send(conn, frame)

	observability.RevealSessions().WithLabelValues("completed").Inc()
}

func (s *revealService) settleErrored(ctx context.Context, conn RevealConn, inquiry models.Inquiry, cause error) {
	message := "We encountered an issue retrieving the wisdom you sought. Please check your connection and try again."
	if errors.Is(cause, ai.ErrRateLimited) {
		message = RetryLaterMessage
	}

	s.markErrored(context.WithoutCancel(ctx), inquiry, message)

	s.send(conn, RevealMessage{Type: RevealTypeError, Message: message})
	observability.RevealSessions().WithLabelValues("errored").Inc()
	s.logger.Warn().Err(cause).Str("inquiry_id", inquiry.ID).Msg("inquiry errored")
}

// markErrored drives the inquiry into its terminal errored state. An
// inquiry must never be left in pending or generating, so when even
// the error content cannot be stored the bare status write is still
// attempted.
func (s *revealService) markErrored(ctx context.Context, inquiry models.Inquiry, message string) {
	if err := s.inquiries.SettleContent(ctx, inquiry.ID, message, models.InquiryStatusErrored); err != nil {
		s.logger.Warn().Err(err).Str("inquiry_id", inquiry.ID).Msg("failed to store error content")
		if err := s.inquiries.UpdateStatus(ctx, inquiry.ID, models.InquiryStatusErrored); err != nil {
			s.logger.Error().Err(err).Str("inquiry_id", inquiry.ID).Msg("failed to force errored status")
		}
	}
	invalidateInquiryCache(ctx, s.cache, inquiry.UserID, s.logger)

	s.publisher.InquiryErrored(events.InquiryEvent{
		InquiryID: inquiry.ID,
		UserID:    inquiry.UserID,
		Status:    models.InquiryStatusErrored,
	})
}

func (s *revealService) send(conn RevealConn, msg RevealMessage) error {
	if err := conn.WriteJSON(msg); err != nil {
		s.logger.Debug().Err(err).Msg("reveal write failed")
		return err
	}
	return nil
}
