package ai

import (
	"context"
	"errors"
)

// Failure taxonomy for the upstream generative service. Callers decide
// user-facing behaviour; the client only classifies.
var (
	// ErrRateLimited indicates upstream throttling. Surface a
	// retry-later message; never auto-retry.
	ErrRateLimited = errors.New("generation rate limited")
	// ErrUpstreamAuth indicates rejected provider credentials. Fatal
	// for the feature and meant for operators, not end users.
	ErrUpstreamAuth = errors.New("upstream authentication failed")
	// ErrEmptyOutput indicates a blank or whitespace-only completion.
	ErrEmptyOutput = errors.New("empty output from generator")
)

// GenerateRequest carries a composed instruction pair and token budget.
type GenerateRequest struct {
	SystemInstruction string
	UserInstruction   string
	MaxTokens         int
}

// Generator produces free text for a composed prompt. Implementations
// make at most one upstream attempt per call.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}
