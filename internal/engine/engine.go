// Package engine orchestrates the voice-command understanding pipeline:
// normalization, segmentation, classification, entity extraction, merging,
// and the optional AI fallback. All collaborators are injected explicitly
// so tests can substitute fakes for the LLM and the noise filter.
package engine

import (
	"context"
	"log/slog"

	"github.com/topn2024/ai-bookkeeping-sub009/internal/classifier"
	"github.com/topn2024/ai-bookkeeping-sub009/internal/extract"
	"github.com/topn2024/ai-bookkeeping-sub009/internal/llm"
	"github.com/topn2024/ai-bookkeeping-sub009/internal/merge"
	"github.com/topn2024/ai-bookkeeping-sub009/internal/model"
	"github.com/topn2024/ai-bookkeeping-sub009/internal/normalize"
	"github.com/topn2024/ai-bookkeeping-sub009/internal/service"
)

// fallbackConfidence is assigned to low-confidence segments that the
// merger still turns into intents, matching the default the AI path uses
// when a source provides no confidence.
const fallbackConfidence = 0.5

// Decomposer is the AI fallback collaborator. A nil result means the AI
// path is unavailable and the deterministic result stands.
type Decomposer interface {
	Decompose(ctx context.Context, input string) *llm.AIDecompositionResult
}

// Config holds the engine's fallback policy.
type Config struct {
	// UseAIFallback enables the AI path when the deterministic result is
	// empty or the utterance is complex.
	UseAIFallback bool
	// ComplexSegmentThreshold forces the AI path for utterances with at
	// least this many segments. Zero disables the complexity trigger.
	ComplexSegmentThreshold int
}

// Engine runs the full analysis for one utterance.
type Engine struct {
	classifier *classifier.Classifier
	extractor  *extract.Extractor
	merger     *merge.Merger
	decomposer Decomposer
	logger     *slog.Logger
	cfg        Config
}

// New assembles an engine. decomposer may be nil, which disables the AI
// fallback regardless of configuration.
func New(cls *classifier.Classifier, ext *extract.Extractor, mrg *merge.Merger, decomposer Decomposer, cfg Config, logger *slog.Logger) *Engine {
	return &Engine{
		classifier: cls,
		extractor:  ext,
		merger:     mrg,
		decomposer: decomposer,
		logger:     logger,
		cfg:        cfg,
	}
}

// Analyze turns one raw transcript into a MultiIntentResult. It never
// fails: malformed input degrades to an empty result, and AI-path failures
// fall back to the deterministic result.
func (e *Engine) Analyze(ctx context.Context, raw string, sctx service.SessionContext) model.MultiIntentResult {
	norm := normalize.Normalize(raw)
	segTexts := normalize.Split(norm.Text)

	segments := make([]model.SegmentAnalysis, 0, len(segTexts))
	for _, text := range segTexts {
		segments = append(segments, e.analyzeSegment(text, sctx))
	}

	result := e.merger.Merge(segments, raw)

	if e.shouldFallback(result, len(segTexts)) {
		if ai := e.fallback(ctx, norm.Text, raw); ai != nil {
			return *ai
		}
	}

	return result
}

// analyzeSegment classifies one clause and extracts its entities.
func (e *Engine) analyzeSegment(text string, sctx service.SessionContext) model.SegmentAnalysis {
	res := e.classifier.Score(text, sctx)
	ents := e.extractor.Extract(text, res.Best.Category)

	confidence := res.Best.Confidence
	if res.Best.Category == model.CategoryUnknown {
		confidence = fallbackConfidence
	}

	return model.SegmentAnalysis{
		Text:       text,
		Amount:     ents.Amount,
		Category:   ents.Category,
		Merchant:   ents.Merchant,
		DateTime:   ents.TimeRange,
		Confidence: confidence,
		Intent:     res,
	}
}

func (e *Engine) shouldFallback(result model.MultiIntentResult, segmentCount int) bool {
	if e.decomposer == nil || !e.cfg.UseAIFallback {
		return false
	}
	if result.Empty() {
		return true
	}
	return e.cfg.ComplexSegmentThreshold > 0 && segmentCount >= e.cfg.ComplexSegmentThreshold
}

// fallback runs the AI path and adapts its output. Any failure yields nil
// and the deterministic result stands.
func (e *Engine) fallback(ctx context.Context, normalized, raw string) *model.MultiIntentResult {
	decomposition := e.decomposer.Decompose(ctx, normalized)
	if decomposition == nil {
		return nil
	}

	adapted := llm.AdaptResult(decomposition, raw)
	if adapted == nil || adapted.Empty() {
		return nil
	}

	e.logger.Debug("AI decomposition used",
		"complete", len(adapted.CompleteIntents),
		"incomplete", len(adapted.IncompleteIntents))
	return adapted
}
