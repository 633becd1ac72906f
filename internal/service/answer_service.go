package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/quraniq/quraniq-api/internal/dto"
	"github.com/quraniq/quraniq-api/internal/normalizer"
	"github.com/quraniq/quraniq-api/internal/observability"
	"github.com/quraniq/quraniq-api/internal/prompt"
	"github.com/quraniq/quraniq-api/internal/quran"
	"github.com/quraniq/quraniq-api/pkg/ai"
)

// Disclaimer accompanies every generated answer.
const Disclaimer = "This response is for informational purposes only and is not a religious ruling."

// RetryLaterMessage is surfaced when the upstream throttles; the user
// must re-submit explicitly, there is no automatic retry.
const RetryLaterMessage = "The service is busy right now. Please try again in a moment."

// apologyAnswer stands in when generation produced nothing and no
// verses were retrieved either.
const apologyAnswer = "We could not find a reflection for this inquiry right now. Please try asking again in a moment."

// ErrGenerationUnavailable hides provider-specific failures from the
// end user; details stay in operator logs.
var ErrGenerationUnavailable = errors.New("generation unavailable")

// ErrInvalidQuestion indicates the question was empty or stripped to
// nothing by sanitisation.
var ErrInvalidQuestion = errors.New("invalid question")

// AnswerService runs the full question → answer synthesis pipeline.
type AnswerService interface {
	Resolve(ctx context.Context, req dto.AskRequest) (dto.AskResponse, error)
}

// AnswerConfig bounds the upstream call.
type AnswerConfig struct {
	MaxTokens       int
	UpstreamTimeout time.Duration
}

type answerService struct {
	retriever *quran.Retriever
	generator ai.Generator
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	cfg       AnswerConfig
}

// NewAnswerService constructs the pipeline service.
func NewAnswerService(retriever *quran.Retriever, generator ai.Generator, validate *validator.Validate, logger zerolog.Logger, cfg AnswerConfig) AnswerService {
	if cfg.UpstreamTimeout <= 0 {
		cfg.UpstreamTimeout = 15 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}

	return &answerService{
		retriever: retriever,
		generator: generator,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "answer_service").Logger(),
		cfg:       cfg,
	}
}

// Resolve retrieves candidate verses, composes the prompt, performs a
// single bounded generation attempt and normalises the output. Soft
// failures degrade to verse-only or apology answers; hard failures are
// returned as typed errors for the handler to map.
func (s *answerService) Resolve(ctx context.Context, req dto.AskRequest) (dto.AskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AskResponse{}, err
	}

	start := time.Now()
	defer func() {
		observability.AnswerDuration().Observe(time.Since(start).Seconds())
	}()

	question := strings.TrimSpace(s.sanitizer.Sanitize(req.Question))
	if question == "" {
		return dto.AskResponse{}, ErrInvalidQuestion
	}

	verses := s.retriever.Search(question)
	composed := prompt.Compose(question, verses, req.History)

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.UpstreamTimeout)
	defer cancel()

	raw, err := s.generator.Generate(genCtx, ai.GenerateRequest{
		SystemInstruction: composed.System,
		UserInstruction:   composed.User,
		MaxTokens:         s.cfg.MaxTokens,
	})

	switch {
	case err == nil:
		// Normal path below.
	case errors.Is(err, ai.ErrRateLimited):
		observability.AnswerRequests().WithLabelValues("rate_limited").Inc()
		return dto.AskResponse{}, err
	case errors.Is(err, ai.ErrUpstreamAuth):
		observability.AnswerRequests().WithLabelValues("upstream_auth").Inc()
		s.logger.Error().Err(err).Msg("upstream credentials rejected; operator attention required")
		return dto.AskResponse{}, fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	case errors.Is(err, ai.ErrEmptyOutput):
		observability.AnswerRequests().WithLabelValues("fallback").Inc()
		s.logger.Warn().Msg("generator returned empty output, falling back")
		return s.fallback(verses), nil
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(genCtx.Err(), context.DeadlineExceeded):
		observability.AnswerRequests().WithLabelValues("timeout").Inc()
		s.logger.Warn().Dur("timeout", s.cfg.UpstreamTimeout).Msg("generation timed out")
		return dto.AskResponse{}, fmt.Errorf("%w: upstream timed out", ErrGenerationUnavailable)
	default:
		observability.AnswerRequests().WithLabelValues("upstream_error").Inc()
		s.logger.Error().Err(err).Msg("generation failed")
		return dto.AskResponse{}, fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}

	result := normalizer.Normalize(raw)
	if result.Answer == "" {
		observability.AnswerRequests().WithLabelValues("fallback").Inc()
		return s.fallback(verses), nil
	}

	observability.AnswerRequests().WithLabelValues("answered").Inc()

	return dto.AskResponse{
		Answer:      result.Answer,
		Suggestions: result.Suggestions,
		Verses:      dto.NewVerseResponseSlice(verses),
		Disclaimer:  Disclaimer,
	}, nil
}

// fallback produces a minimal but renderable answer from whatever was
// retrieved. Both branches settle the inquiry normally.
func (s *answerService) fallback(verses []quran.Verse) dto.AskResponse {
	if len(verses) == 0 {
		return dto.AskResponse{Answer: apologyAnswer, Disclaimer: Disclaimer}
	}

	var b strings.Builder
	b.WriteString("Here is what the Quran itself offers on your question:\n")
	for _, v := range verses {
		fmt.Fprintf(&b, "\n- [Surah %s %d:%d]: %q", v.SurahName, v.SurahNumber, v.AyahNumber, v.Text)
	}
	b.WriteString("\n\nReflect on these verses directly; a fuller reflection could not be generated right now.")

	return dto.AskResponse{
		Answer:     b.String(),
		Verses:     dto.NewVerseResponseSlice(verses),
		Disclaimer: Disclaimer,
	}
}
