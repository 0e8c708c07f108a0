// Package service defines the interfaces for collaborators consumed by the
// voice-command understanding pipeline.
package service

import (
	"context"
	"time"

	"github.com/topn2024/ai-bookkeeping-sub009/internal/model"
)

// NoiseFilter decides which utterance segments carry no actionable intent.
// The pipeline delegates noise detection entirely; implementations must
// return both partitions and never drop a segment silently.
type NoiseFilter interface {
	Filter(segments []model.SegmentAnalysis) (valid []model.SegmentAnalysis, noise []string)
}

// ChatCompletion is a single-turn LLM invocation. It may be slow or fail;
// returning an error (or an empty string) on any failure is part of the
// contract, and callers fall back to the deterministic path.
type ChatCompletion interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

// SessionContext exposes conversational state from the prior turn. It is an
// optional input to classification; a nil SessionContext means no context.
type SessionContext interface {
	PriorIntentCategory() model.IntentCategory
}

// PriorIntent is the minimal SessionContext: the previous turn's category
// and nothing else.
type PriorIntent model.IntentCategory

// PriorIntentCategory implements SessionContext.
func (p PriorIntent) PriorIntentCategory() model.IntentCategory {
	return model.IntentCategory(p)
}

// RetryOptions configures retry behavior for LLM calls.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
