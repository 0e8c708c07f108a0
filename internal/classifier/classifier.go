// Package classifier scores normalized utterances against the closed set of
// intent categories using weighted pattern matching, session-context
// boosting, and special-case heuristics.
package classifier

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/topn2024/ai-bookkeeping-sub009/internal/model"
	"github.com/topn2024/ai-bookkeeping-sub009/internal/service"
)

// Scoring weights. A pattern's score is
// base + perMatch·count + coverage·(matchedChars/inputChars) + boundary.
const (
	baseWeight     = 0.3
	perMatchWeight = 0.1
	coverageWeight = 0.3
	boundaryBonus  = 0.2
	specialBoost   = 0.2
	exactBoost     = 0.3
	selectionBoost = 0.4
)

// Config holds tunable classifier parameters.
type Config struct {
	ConfidenceThreshold float64
	ContextBoost        float64
	MinCandidateScore   float64
	MaxCandidates       int
}

// DefaultConfig returns the classifier defaults.
func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold: 0.7,
		ContextBoost:        0.3,
		MinCandidateScore:   0.1,
		MaxCandidates:       3,
	}
}

// Classifier scores utterance segments. It is safe for concurrent use:
// all state is immutable after construction.
type Classifier struct {
	patterns map[model.IntentCategory][]*regexp.Regexp
	cfg      Config
}

var amountAdjacentRe = regexp.MustCompile(`\d+(\.\d+)?\s*(元|块钱|块|毛|角|人民币)`)

var pureIntRe = regexp.MustCompile(`^[1-9]\d*$`)

// New creates a classifier with the default pattern tables.
func New(cfg Config) (*Classifier, error) {
	compiled := make(map[model.IntentCategory][]*regexp.Regexp)
	for cat, exprs := range defaultPatterns() {
		res := make([]*regexp.Regexp, 0, len(exprs))
		for _, expr := range exprs {
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("failed to compile pattern for %s: %w", cat, err)
			}
			res = append(res, re)
		}
		compiled[cat] = res
	}

	return &Classifier{patterns: compiled, cfg: cfg}, nil
}

// Score classifies one normalized segment. Empty input short-circuits to
// unknown with confidence 0; Score never fails.
func (c *Classifier) Score(text string, sctx service.SessionContext) model.ClassifierResult {
	text = strings.TrimSpace(text)
	if text == "" {
		return unknownResult()
	}

	scores := make(map[model.IntentCategory]float64)
	for cat, patterns := range c.patterns {
		if s := c.scorePatterns(text, patterns); s > 0 {
			scores[cat] = s
		}
	}

	c.applyContextBoost(scores, sctx)
	c.applyHeuristics(text, scores)

	for cat, s := range scores {
		scores[cat] = clamp(s)
	}

	candidates := rankCandidates(scores, c.cfg)
	if len(candidates) == 0 || candidates[0].Confidence < c.cfg.ConfidenceThreshold {
		return model.ClassifierResult{
			Best:       model.IntentCandidate{Category: model.CategoryUnknown, Confidence: 0},
			Candidates: candidates,
		}
	}

	return model.ClassifierResult{Best: candidates[0], Candidates: candidates}
}

// scorePatterns returns the best score any single pattern achieves.
func (c *Classifier) scorePatterns(text string, patterns []*regexp.Regexp) float64 {
	inputLen := utf8.RuneCountInString(text)
	var best float64

	for _, re := range patterns {
		matches := re.FindAllStringIndex(text, -1)
		if len(matches) == 0 {
			continue
		}

		var matchedChars int
		for _, m := range matches {
			matchedChars += utf8.RuneCountInString(text[m[0]:m[1]])
		}

		score := baseWeight +
			perMatchWeight*float64(len(matches)) +
			coverageWeight*float64(matchedChars)/float64(inputLen)

		if bounded(text, matches[0]) {
			score += boundaryBonus
		}

		if score > best {
			best = score
		}
	}

	return clamp(best)
}

// bounded reports whether the match is delimited by whitespace or string
// edges on both sides.
func bounded(text string, m []int) bool {
	left := m[0] == 0
	if !left {
		r, _ := utf8.DecodeLastRuneInString(text[:m[0]])
		left = unicode.IsSpace(r)
	}

	right := m[1] == len(text)
	if !right {
		r, _ := utf8.DecodeRuneInString(text[m[1]:])
		right = unicode.IsSpace(r)
	}

	return left && right
}

// applyContextBoost raises follow-up categories when the prior turn was a
// destructive or modifying request awaiting a user decision.
func (c *Classifier) applyContextBoost(scores map[model.IntentCategory]float64, sctx service.SessionContext) {
	if sctx == nil {
		return
	}

	switch sctx.PriorIntentCategory() {
	case model.CategoryDeleteTransaction, model.CategoryModifyTransaction:
		scores[model.CategoryConfirm] += c.cfg.ContextBoost
		scores[model.CategoryCancel] += c.cfg.ContextBoost
		scores[model.CategoryClarifySelection] += c.cfg.ContextBoost
	case model.CategoryAddTransaction, model.CategoryQueryTransaction, model.CategoryNavigate,
		model.CategoryConfirm, model.CategoryCancel, model.CategoryClarifySelection,
		model.CategoryUnknown:
		// Only pending destructive or modifying actions expect a follow-up.
	}
}

// applyHeuristics adds the special-case boosts that run after base and
// context scoring.
func (c *Classifier) applyHeuristics(text string, scores map[model.IntentCategory]float64) {
	if amountAdjacentRe.MatchString(text) && containsAny(text, consumptionTokens) {
		scores[model.CategoryAddTransaction] += specialBoost
	}

	if containsAny(text, relativeTimeTokens) && containsAny(text, quantityQuestionTokens) {
		scores[model.CategoryQueryTransaction] += specialBoost
	}

	if utf8.RuneCountInString(text) <= 3 {
		if equalsAny(text, affirmativeTokens) {
			scores[model.CategoryConfirm] += exactBoost
		}
		if equalsAny(text, negativeTokens) {
			scores[model.CategoryCancel] += exactBoost
		}
	}

	if pureIntRe.MatchString(text) {
		scores[model.CategoryClarifySelection] += selectionBoost
	}
}

// rankCandidates sorts categories descending by score and keeps the ones
// above the candidate floor, truncated to the configured maximum. Iterating
// AllCategories fixes tie order, keeping classification deterministic.
func rankCandidates(scores map[model.IntentCategory]float64, cfg Config) []model.IntentCandidate {
	candidates := make([]model.IntentCandidate, 0, len(scores))
	for _, cat := range model.AllCategories {
		if s, ok := scores[cat]; ok && s > cfg.MinCandidateScore {
			candidates = append(candidates, model.IntentCandidate{Category: cat, Confidence: s})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	if len(candidates) > cfg.MaxCandidates {
		candidates = candidates[:cfg.MaxCandidates]
	}
	return candidates
}

func unknownResult() model.ClassifierResult {
	return model.ClassifierResult{
		Best: model.IntentCandidate{Category: model.CategoryUnknown, Confidence: 0},
	}
}

func containsAny(text string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func equalsAny(text string, tokens []string) bool {
	lower := strings.ToLower(text)
	for _, t := range tokens {
		if lower == t {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
