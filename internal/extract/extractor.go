// Package extract pulls structured slots out of a classified utterance
// segment: amount, bookkeeping category, merchant, time range, navigation
// target, and selection index. Unmatched slots stay zero-valued rather
// than defaulting to misleading values; the navigation target is the one
// exception and falls back to "unknown".
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/topn2024/ai-bookkeeping-sub009/internal/model"
)

// Entities holds the slots extracted from one segment. A nil pointer or
// empty string means the slot was absent from the text.
type Entities struct {
	Amount         *float64
	TimeRange      *model.TimeRange
	Category       string
	Merchant       string
	TargetPage     string
	SelectionIndex int
}

// Extractor extracts entities using category-specific heuristics. The
// clock is injected so time ranges are reproducible in tests.
type Extractor struct {
	now func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock overrides the evaluation instant used for time ranges.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// New creates an entity extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var (
	amountUnitRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:元|块钱|块|毛|角)`)
	amountBareRe = regexp.MustCompile(`\d+(?:\.\d+)?`)
	merchantRe   = regexp.MustCompile(`在(.{1,12}?)(花了|花费|消费|买|吃|喝|付|支付|充值)`)
	selectionRe  = regexp.MustCompile(`[1-9]\d*`)
)

// Extract pulls the slots relevant to the segment's intent category.
func (e *Extractor) Extract(text string, category model.IntentCategory) Entities {
	var ent Entities

	switch category {
	case model.CategoryAddTransaction, model.CategoryDeleteTransaction, model.CategoryModifyTransaction:
		ent.Amount = extractAmount(text)
		ent.Category = extractCategory(text)
		ent.Merchant = extractMerchant(text)
		ent.TimeRange = e.extractTimeRange(text)
	case model.CategoryQueryTransaction:
		ent.Category = extractCategory(text)
		ent.TimeRange = e.extractTimeRange(text)
	case model.CategoryNavigate:
		ent.TargetPage = extractTargetPage(text)
	case model.CategoryClarifySelection:
		ent.SelectionIndex = extractSelectionIndex(text)
	case model.CategoryConfirm, model.CategoryCancel:
		// Nothing to extract.
	case model.CategoryUnknown:
		// Low-confidence segments still surface amount and category so the
		// merger can decide what to do with them.
		ent.Amount = extractAmount(text)
		ent.Category = extractCategory(text)
	}

	return ent
}

// extractAmount prefers a number carrying a currency unit; otherwise the
// first bare number not glued to a date or clock unit ("1月5日花了30" must
// yield 30, not 1).
func extractAmount(text string) *float64 {
	if m := amountUnitRe.FindStringSubmatch(text); m != nil {
		return parsePositive(m[1])
	}
	for _, m := range amountBareRe.FindAllStringIndex(text, -1) {
		if r, _ := utf8.DecodeRuneInString(text[m[1]:]); strings.ContainsRune("月日号年点时分秒", r) {
			continue
		}
		return parsePositive(text[m[0]:m[1]])
	}
	return nil
}

func parsePositive(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return nil
	}
	return &v
}

func extractCategory(text string) string {
	for _, entry := range categoryTable {
		for _, kw := range entry.Keywords {
			if strings.Contains(text, kw) {
				return entry.Name
			}
		}
	}
	return ""
}

func extractMerchant(text string) string {
	m := merchantRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// TargetPage resolves the navigation target named in the text, falling
// back to "unknown" so navigation intents never carry an empty page.
func TargetPage(text string) string {
	return extractTargetPage(text)
}

func extractTargetPage(text string) string {
	for _, entry := range pageTable {
		for _, kw := range entry.Keywords {
			if strings.Contains(text, kw) {
				return entry.ID
			}
		}
	}
	return "unknown"
}

func extractSelectionIndex(text string) int {
	if m := selectionRe.FindString(text); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}
	for word, n := range chineseOrdinals {
		if strings.Contains(text, word) {
			return n
		}
	}
	return 0
}

// extractTimeRange resolves a relative-date keyword to a concrete
// [start, end) window. Keywords are checked most-specific first.
func (e *Extractor) extractTimeRange(text string) *model.TimeRange {
	now := e.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	type rangeEntry struct {
		resolve  func() (time.Time, time.Time)
		label    string
		keywords []string
	}

	entries := []rangeEntry{
		{label: "今天", keywords: []string{"今天"}, resolve: func() (time.Time, time.Time) {
			return today, today.AddDate(0, 0, 1)
		}},
		{label: "昨天", keywords: []string{"昨天"}, resolve: func() (time.Time, time.Time) {
			return today.AddDate(0, 0, -1), today
		}},
		{label: "前天", keywords: []string{"前天"}, resolve: func() (time.Time, time.Time) {
			return today.AddDate(0, 0, -2), today.AddDate(0, 0, -1)
		}},
		{label: "上周", keywords: []string{"上周", "上个星期"}, resolve: func() (time.Time, time.Time) {
			start := weekStart(today).AddDate(0, 0, -7)
			return start, start.AddDate(0, 0, 7)
		}},
		{label: "本周", keywords: []string{"本周", "这周", "这个星期"}, resolve: func() (time.Time, time.Time) {
			start := weekStart(today)
			return start, start.AddDate(0, 0, 7)
		}},
		{label: "上个月", keywords: []string{"上个月", "上月"}, resolve: func() (time.Time, time.Time) {
			start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
			return start, start.AddDate(0, 1, 0)
		}},
		{label: "本月", keywords: []string{"本月", "这个月"}, resolve: func() (time.Time, time.Time) {
			start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			return start, start.AddDate(0, 1, 0)
		}},
		{label: "今年", keywords: []string{"今年"}, resolve: func() (time.Time, time.Time) {
			start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
			return start, start.AddDate(1, 0, 0)
		}},
	}

	for _, entry := range entries {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				start, end := entry.resolve()
				return &model.TimeRange{Start: start, End: end, Label: entry.label}
			}
		}
	}
	return nil
}

// weekStart returns the Monday of the week containing day.
func weekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// HasConsumptionVerb reports whether the text carries a spending token.
func HasConsumptionVerb(text string) bool {
	return containsAny(text, consumptionVerbs)
}

// HasNavigationVerb reports whether the text carries a strict page-change verb.
func HasNavigationVerb(text string) bool {
	return containsAny(text, navigationVerbs)
}

// HasPageNoun reports whether the text names a known page or place.
func HasPageNoun(text string) bool {
	for _, entry := range pageTable {
		for _, kw := range entry.Keywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
	}
	return false
}

// TransactionType infers the money direction for a segment: income
// keywords win, then transfer keywords, and everything else is an expense.
func TransactionType(text string) model.TransactionType {
	if containsAny(text, incomeKeywords) {
		return model.TypeIncome
	}
	if containsAny(text, transferKeywords) {
		return model.TypeTransfer
	}
	return model.TypeExpense
}

func containsAny(text string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
