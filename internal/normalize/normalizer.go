// Package normalize cleans raw transcript text and extracts coarse features
// used by the downstream classifier. All functions are pure and total:
// every input, however malformed, produces a value.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// Language is the detected character-class bucket of an utterance.
type Language string

// Language buckets.
const (
	LanguageChinese Language = "chinese"
	LanguageEnglish Language = "english"
	LanguageMixed   Language = "mixed"
	LanguageUnknown Language = "unknown"
)

// Features are coarse signals extracted during normalization.
type Features struct {
	Language   Language
	HasNumbers bool
	HasAmount  bool
	HasDate    bool
	IsQuestion bool
}

// Normalized is the result of cleaning one raw transcript.
type Normalized struct {
	Text     string
	Features Features
}

// punctuationMap covers CJK punctuation that width folding leaves alone.
var punctuationMap = map[rune]rune{
	'。': '.',
	'、': ',',
	'“': '"',
	'”': '"',
	'‘': '\'',
	'’': '\'',
	'《': '<',
	'》': '>',
	'【': '[',
	'】': ']',
	'…': '.',
}

var (
	amountRe     = regexp.MustCompile(`\d+(\.\d+)?\s*(元|块钱|块|角|毛|人民币|rmb|RMB|yuan|美元|刀)`)
	slashDateRe  = regexp.MustCompile(`\b\d{1,2}/\d{1,2}\b`)
	cnDateRe     = regexp.MustCompile(`\d{1,2}月(\d{1,2}[日号])?`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

var relativeDateKeywords = []string{
	"今天", "昨天", "前天", "明天", "本周", "这周", "上周",
	"本月", "这个月", "上个月", "今年", "去年",
}

var interrogativeKeywords = []string{
	"多少", "什么", "怎么", "哪", "几", "谁", "是否", "有没有", "吗",
}

// Normalize cleans raw transcript text and extracts its coarse features.
func Normalize(text string) Normalized {
	cleaned := stripInvisible(text)
	cleaned = width.Narrow.String(cleaned)
	cleaned = mapPunctuation(cleaned)
	cleaned = ConvertNumerals(cleaned)
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	return Normalized{
		Text:     cleaned,
		Features: extractFeatures(cleaned),
	}
}

// stripInvisible removes zero-width characters and maps control characters
// to plain spaces so whitespace collapsing can take over.
func stripInvisible(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 0x200B && r <= 0x200F, r == 0xFEFF:
			// zero-width and BOM: drop
		case unicode.IsControl(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func mapPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if mapped, ok := punctuationMap[r]; ok {
			return mapped
		}
		return r
	}, s)
}

func extractFeatures(text string) Features {
	f := Features{
		HasNumbers: strings.ContainsFunc(text, unicode.IsDigit),
		HasAmount:  amountRe.MatchString(text),
		Language:   detectLanguage(text),
	}

	f.HasDate = hasDate(text)
	f.IsQuestion = isQuestion(text)
	return f
}

func hasDate(text string) bool {
	for _, kw := range relativeDateKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return slashDateRe.MatchString(text) || cnDateRe.MatchString(text)
}

func isQuestion(text string) bool {
	trimmed := strings.TrimRight(text, " ")
	if strings.HasSuffix(trimmed, "?") || strings.HasSuffix(trimmed, "吗") || strings.HasSuffix(trimmed, "呢") {
		return true
	}
	for _, kw := range interrogativeKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func detectLanguage(text string) Language {
	var han, latin int
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			han++
		case unicode.IsLetter(r) && r < unicode.MaxASCII:
			latin++
		}
	}

	switch {
	case han > 0 && latin > 0:
		return LanguageMixed
	case han > 0:
		return LanguageChinese
	case latin > 0:
		return LanguageEnglish
	default:
		return LanguageUnknown
	}
}
