// Package merge turns per-segment analyses into one MultiIntentResult,
// applying the priority, completeness, and sorting policy for compound
// utterances.
package merge

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/topn2024/ai-bookkeeping-sub009/internal/extract"
	"github.com/topn2024/ai-bookkeeping-sub009/internal/model"
	"github.com/topn2024/ai-bookkeeping-sub009/internal/service"
)

// descriptionMaxRunes caps how long an original text may be before it is
// no longer usable as a fallback description.
const descriptionMaxRunes = 20

// Config holds merger policy switches.
type Config struct {
	// MergeSameCategory collapses complete intents that share a category
	// into one summed intent. Off by default: one record per segment.
	MergeSameCategory bool
}

// Merger partitions segments into complete intents, incomplete intents, a
// single navigation intent, and noise.
type Merger struct {
	noise service.NoiseFilter
	cfg   Config
}

// New creates a merger with the given noise-filtering collaborator.
func New(noise service.NoiseFilter, cfg Config) *Merger {
	return &Merger{noise: noise, cfg: cfg}
}

// Merge builds the aggregate result for one utterance.
func (m *Merger) Merge(segments []model.SegmentAnalysis, rawInput string) model.MultiIntentResult {
	result := model.MultiIntentResult{
		RawInput: rawInput,
		Segments: segmentTexts(segments),
	}

	valid, filtered := m.noise.Filter(segments)
	result.FilteredNoise = filtered

	for _, seg := range valid {
		// Navigation outranks everything: a page change buried between
		// transactions must not be booked as one.
		if nav, ok := navigationIntent(seg); ok {
			if result.Navigation == nil {
				result.Navigation = nav
			}
			continue
		}

		// Confirmations and cancellations are not independently actionable
		// inside a multi-intent batch; consume them silently.
		switch seg.Intent.Best.Category {
		case model.CategoryConfirm, model.CategoryCancel:
			continue
		case model.CategoryAddTransaction, model.CategoryDeleteTransaction,
			model.CategoryModifyTransaction, model.CategoryQueryTransaction,
			model.CategoryNavigate, model.CategoryClarifySelection, model.CategoryUnknown:
		}

		if !isTransaction(seg) {
			continue
		}

		if seg.HasAmount() {
			result.CompleteIntents = append(result.CompleteIntents, completeIntent(seg))
		} else {
			result.IncompleteIntents = append(result.IncompleteIntents, incompleteIntent(seg))
		}
	}

	if m.cfg.MergeSameCategory {
		result.CompleteIntents = mergeSameCategory(result.CompleteIntents)
	}

	sortIntents(&result)
	return result
}

// navigationIntent decides whether a segment is a navigation request. A
// segment with a positive amount or a consumption verb is never
// navigation, even when it also contains navigation-looking words.
func navigationIntent(seg model.SegmentAnalysis) (*model.NavigationIntent, bool) {
	if seg.Intent.Best.Category == model.CategoryNavigate {
		return buildNavigation(seg), true
	}

	if seg.HasAmount() || extract.HasConsumptionVerb(seg.Text) {
		return nil, false
	}

	if extract.HasNavigationVerb(seg.Text) ||
		(strings.Contains(seg.Text, "去") && extract.HasPageNoun(seg.Text)) {
		return buildNavigation(seg), true
	}

	return nil, false
}

func buildNavigation(seg model.SegmentAnalysis) *model.NavigationIntent {
	page := extract.TargetPage(seg.Text)
	return &model.NavigationIntent{
		TargetPage:   page,
		TargetName:   model.PageDisplayName(page),
		OriginalText: seg.Text,
	}
}

// isTransaction reports whether the segment should surface as a complete
// or incomplete bookkeeping intent. Low-confidence segments still count
// when they carry an amount next to a spending token; a bare quantity
// without either is not actionable and is dropped.
func isTransaction(seg model.SegmentAnalysis) bool {
	switch seg.Intent.Best.Category {
	case model.CategoryAddTransaction:
		return true
	case model.CategoryUnknown:
		if !seg.HasAmount() {
			return false
		}
		return seg.Category != "" ||
			extract.HasConsumptionVerb(seg.Text) ||
			extract.TransactionType(seg.Text) != model.TypeExpense
	case model.CategoryDeleteTransaction, model.CategoryModifyTransaction,
		model.CategoryQueryTransaction, model.CategoryNavigate,
		model.CategoryConfirm, model.CategoryCancel, model.CategoryClarifySelection:
		return false
	}
	return false
}

func completeIntent(seg model.SegmentAnalysis) model.CompleteIntent {
	return model.CompleteIntent{
		Type:         extract.TransactionType(seg.Text),
		Amount:       *seg.Amount,
		Category:     seg.Category,
		Merchant:     seg.Merchant,
		Description:  describe(seg),
		OriginalText: seg.Text,
		DateTime:     seg.DateTime,
		Confidence:   seg.Confidence,
	}
}

func incompleteIntent(seg model.SegmentAnalysis) model.IncompleteIntent {
	return model.IncompleteIntent{
		Type:         extract.TransactionType(seg.Text),
		Category:     seg.Category,
		Merchant:     seg.Merchant,
		Description:  describe(seg),
		OriginalText: seg.Text,
		DateTime:     seg.DateTime,
		MissingSlots: []string{"amount"},
		Confidence:   seg.Confidence,
	}
}

// describe prefers "category - merchant", then either alone, then the
// original text when it is short enough.
func describe(seg model.SegmentAnalysis) string {
	switch {
	case seg.Category != "" && seg.Merchant != "":
		return seg.Category + " - " + seg.Merchant
	case seg.Category != "":
		return seg.Category
	case seg.Merchant != "":
		return seg.Merchant
	case utf8.RuneCountInString(seg.Text) <= descriptionMaxRunes:
		return seg.Text
	}
	return ""
}

// mergeSameCategory collapses groups of two or more complete intents that
// share a category into one intent: summed amount, minimum confidence, and
// concatenated original texts.
func mergeSameCategory(intents []model.CompleteIntent) []model.CompleteIntent {
	groups := make(map[string][]model.CompleteIntent)
	var order []string
	for _, intent := range intents {
		if _, seen := groups[intent.Category]; !seen {
			order = append(order, intent.Category)
		}
		groups[intent.Category] = append(groups[intent.Category], intent)
	}

	merged := make([]model.CompleteIntent, 0, len(order))
	for _, category := range order {
		group := groups[category]
		if len(group) < 2 {
			merged = append(merged, group...)
			continue
		}

		combined := group[0]
		texts := make([]string, 0, len(group))
		combined.Amount = 0
		for _, intent := range group {
			combined.Amount += intent.Amount
			if intent.Confidence < combined.Confidence {
				combined.Confidence = intent.Confidence
			}
			texts = append(texts, intent.OriginalText)
		}
		combined.OriginalText = strings.Join(texts, "；")
		combined.Description = combined.OriginalText
		merged = append(merged, combined)
	}

	return merged
}

// sortIntents orders complete intents by confidence descending with amount
// descending as the tie-break, so larger amounts surface first for user
// confirmation. Incomplete intents sort by confidence only.
func sortIntents(result *model.MultiIntentResult) {
	sort.SliceStable(result.CompleteIntents, func(i, j int) bool {
		a, b := result.CompleteIntents[i], result.CompleteIntents[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		return a.Amount > b.Amount
	})

	sort.SliceStable(result.IncompleteIntents, func(i, j int) bool {
		return result.IncompleteIntents[i].Confidence > result.IncompleteIntents[j].Confidence
	})
}

func segmentTexts(segments []model.SegmentAnalysis) []string {
	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		texts = append(texts, seg.Text)
	}
	return texts
}
