// Package model defines the core domain models for voice-command understanding.
package model

import "time"

// IntentCategory identifies what a single utterance segment asks for.
// The set is closed; every consumer switches exhaustively over it and
// AllCategories is the source of truth for tests that verify coverage.
type IntentCategory string

// Intent category constants.
const (
	CategoryAddTransaction    IntentCategory = "addTransaction"
	CategoryDeleteTransaction IntentCategory = "deleteTransaction"
	CategoryModifyTransaction IntentCategory = "modifyTransaction"
	CategoryQueryTransaction  IntentCategory = "queryTransaction"
	CategoryNavigate          IntentCategory = "navigate"
	CategoryConfirm           IntentCategory = "confirm"
	CategoryCancel            IntentCategory = "cancel"
	CategoryClarifySelection  IntentCategory = "clarifySelection"
	CategoryUnknown           IntentCategory = "unknown"
)

// AllCategories lists every valid intent category, CategoryUnknown included.
var AllCategories = []IntentCategory{
	CategoryAddTransaction,
	CategoryDeleteTransaction,
	CategoryModifyTransaction,
	CategoryQueryTransaction,
	CategoryNavigate,
	CategoryConfirm,
	CategoryCancel,
	CategoryClarifySelection,
	CategoryUnknown,
}

// Valid reports whether c is one of the defined categories.
func (c IntentCategory) Valid() bool {
	switch c {
	case CategoryAddTransaction, CategoryDeleteTransaction, CategoryModifyTransaction,
		CategoryQueryTransaction, CategoryNavigate, CategoryConfirm, CategoryCancel,
		CategoryClarifySelection, CategoryUnknown:
		return true
	}
	return false
}

// TransactionType distinguishes the direction of money movement.
type TransactionType string

// Transaction type constants.
const (
	TypeExpense  TransactionType = "expense"
	TypeIncome   TransactionType = "income"
	TypeTransfer TransactionType = "transfer"
)

// IntentCandidate pairs a category with the classifier's confidence in it.
type IntentCandidate struct {
	Category   IntentCategory
	Confidence float64
}

// ClassifierResult is the outcome of scoring one utterance segment.
// Best is CategoryUnknown with confidence 0 when nothing scored above the
// configured threshold. Candidates is sorted descending by confidence and
// holds at most the configured maximum entries.
type ClassifierResult struct {
	Best       IntentCandidate
	Candidates []IntentCandidate
}

// TimeRange is a half-open [Start, End) window resolved from a relative
// date keyword such as "今天" or "上个月".
type TimeRange struct {
	Start time.Time
	End   time.Time
	Label string
}

// SegmentAnalysis carries everything the rule pipeline learned about one
// clause of a compound utterance. It is created once per segment and never
// mutated afterwards.
type SegmentAnalysis struct {
	DateTime   *TimeRange
	Amount     *float64
	Text       string
	Category   string
	Merchant   string
	Confidence float64
	Intent     ClassifierResult
}

// HasAmount reports whether the segment carries a strictly positive amount.
func (s SegmentAnalysis) HasAmount() bool {
	return s.Amount != nil && *s.Amount > 0
}
