package llm

import (
	"strings"

	"github.com/topn2024/ai-bookkeeping-sub009/internal/model"
)

// AdaptResult maps an AI decomposition into the canonical MultiIntentResult
// so callers are agnostic to which path produced their answer. Returns nil
// for a nil decomposition.
func AdaptResult(res *AIDecompositionResult, rawInput string) *model.MultiIntentResult {
	if res == nil {
		return nil
	}

	result := &model.MultiIntentResult{RawInput: rawInput}

	for _, intent := range res.Intents {
		result.Segments = append(result.Segments, intent.Text)

		switch strings.ToLower(intent.Type) {
		case "expense", "income", "transfer":
			adaptTransaction(result, intent)
		case "navigation":
			// First navigation wins, the rest are dropped.
			if result.Navigation == nil {
				result.Navigation = adaptNavigation(intent)
			}
		case "noise":
			result.FilteredNoise = append(result.FilteredNoise, intent.Text)
		default:
			// Unknown intent types are dropped silently.
		}
	}

	return result
}

func adaptTransaction(result *model.MultiIntentResult, intent AIIntent) {
	txType := transactionType(intent.Type)

	if intent.Amount != nil && *intent.Amount > 0 && intent.IsComplete {
		result.CompleteIntents = append(result.CompleteIntents, model.CompleteIntent{
			Type:         txType,
			Amount:       *intent.Amount,
			Category:     intent.Category,
			Merchant:     intent.Merchant,
			Description:  describeAI(intent),
			OriginalText: intent.Text,
			Confidence:   intent.Confidence,
		})
		return
	}

	missing := []string{"amount"}
	if intent.Amount != nil && *intent.Amount > 0 {
		// Amount is there but the model still flagged the intent as
		// incomplete; the category is the only other slot it can mean.
		missing = []string{"category"}
	}

	result.IncompleteIntents = append(result.IncompleteIntents, model.IncompleteIntent{
		Type:         txType,
		Category:     intent.Category,
		Merchant:     intent.Merchant,
		Description:  describeAI(intent),
		OriginalText: intent.Text,
		MissingSlots: missing,
		Confidence:   intent.Confidence,
	})
}

func adaptNavigation(intent AIIntent) *model.NavigationIntent {
	page := strings.TrimSpace(intent.TargetPage)
	if page == "" {
		page = "unknown"
	}
	return &model.NavigationIntent{
		TargetPage:   page,
		TargetName:   model.PageDisplayName(page),
		OriginalText: intent.Text,
	}
}

func transactionType(aiType string) model.TransactionType {
	switch strings.ToLower(aiType) {
	case "income":
		return model.TypeIncome
	case "transfer":
		return model.TypeTransfer
	default:
		return model.TypeExpense
	}
}

func describeAI(intent AIIntent) string {
	switch {
	case intent.Category != "" && intent.Merchant != "":
		return intent.Category + " - " + intent.Merchant
	case intent.Category != "":
		return intent.Category
	case intent.Merchant != "":
		return intent.Merchant
	}
	return intent.Text
}
