package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	generationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "quraniq",
		Subsystem: "ai",
		Name:      "generation_duration_seconds",
		Help:      "Duration of generation requests",
	}, []string{"model"})

	generationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quraniq",
		Subsystem: "ai",
		Name:      "generation_failures_total",
		Help:      "Number of generation failures",
	}, []string{"model", "kind"})
)

// OpenAIConfig defines configuration options for the OpenAI generator.
type OpenAIConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	Logger    zerolog.Logger
}

// OpenAIGenerator implements Generator against the OpenAI chat completion API.
type OpenAIGenerator struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIGenerator builds a generator using the provided configuration.
func NewOpenAIGenerator(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}

	tracer := otel.Tracer("github.com/quraniq/quraniq-api/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIGenerator{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// Generate sends one chat completion request and classifies failures.
func (g *OpenAIGenerator) Generate(parent context.Context, req GenerateRequest) (string, error) {
	ctx, span := g.tracer.Start(parent, "openai.generate", trace.WithAttributes(
		attribute.String("model", g.cfg.Model),
	))
	defer span.End()

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = g.cfg.MaxTokens
	}

	request := openai.ChatCompletionRequest{
		Model:     g.cfg.Model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: req.UserInstruction},
		},
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, request)
	generationDuration.WithLabelValues(g.cfg.Model).Observe(time.Since(start).Seconds())

	if err != nil {
		classified := classifyError(err)
		generationFailures.WithLabelValues(g.cfg.Model, failureKind(classified)).Inc()
		span.RecordError(classified)
		span.SetStatus(codes.Error, classified.Error())
		g.logger.Error().Err(err).Str("model", g.cfg.Model).Msg("generation request failed")
		return "", classified
	}

	if len(resp.Choices) == 0 {
		generationFailures.WithLabelValues(g.cfg.Model, "empty").Inc()
		span.SetStatus(codes.Error, ErrEmptyOutput.Error())
		return "", ErrEmptyOutput
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		generationFailures.WithLabelValues(g.cfg.Model, "empty").Inc()
		span.SetStatus(codes.Error, ErrEmptyOutput.Error())
		return "", ErrEmptyOutput
	}

	return content, nil
}

func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrUpstreamAuth, err)
		}
	}
	return fmt.Errorf("generation failed: %w", err)
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrUpstreamAuth):
		return "auth"
	case errors.Is(err, ErrEmptyOutput):
		return "empty"
	default:
		return "other"
	}
}
