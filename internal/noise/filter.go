// Package noise ships the default NoiseFilter collaborator: a keyword and
// length heuristic that weeds out filler interjections before merging.
// The pipeline only depends on the service.NoiseFilter interface, so
// callers can substitute their own implementation.
package noise

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/topn2024/ai-bookkeeping-sub009/internal/model"
)

// fillerRe matches segments that are nothing but hesitation sounds or
// discourse fillers.
var fillerRe = regexp.MustCompile(`^(嗯+|啊+|呃+|哦+|唉+|哈+|呀+|那个|就是|这个|然后)$`)

// Filter implements service.NoiseFilter.
type Filter struct{}

// New creates the default noise filter.
func New() *Filter {
	return &Filter{}
}

// Filter partitions segments into valid ones and noise text. A segment is
// noise when it is a pure filler, contains no letters or digits at all, or
// is a fragment too short to carry intent.
func (f *Filter) Filter(segments []model.SegmentAnalysis) ([]model.SegmentAnalysis, []string) {
	valid := make([]model.SegmentAnalysis, 0, len(segments))
	var filtered []string

	for _, seg := range segments {
		if isNoise(seg.Text) {
			filtered = append(filtered, seg.Text)
			continue
		}
		valid = append(valid, seg)
	}

	return valid, filtered
}

func isNoise(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	if fillerRe.MatchString(trimmed) {
		return true
	}

	hasSubstance := strings.ContainsFunc(trimmed, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	})
	if !hasSubstance {
		return true
	}

	// A lone character with no digit is not an actionable clause, except
	// the one-word confirmation and cancellation replies.
	if utf8.RuneCountInString(trimmed) < 2 && !strings.ContainsFunc(trimmed, unicode.IsDigit) {
		switch trimmed {
		case "好", "是", "对", "行", "不":
			return false
		}
		return true
	}

	return false
}
