package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// connectorRe matches the conjunctions that join unrelated requests in one
// breath ("买菜花了50然后打车15").
var connectorRe = regexp.MustCompile(`然后|接着|还有|另外|顺便|以及|同时`)

// amountTailRe matches an amount with an optional currency unit. Used to
// detect run-on compound utterances such as "早餐15午餐30晚餐50".
var amountTailRe = regexp.MustCompile(`\d+(\.\d+)?(元|块钱|块)?`)

// Split partitions a normalized utterance into clause segments. Simple
// utterances pass through as a single segment.
func Split(text string) []string {
	var segments []string
	for _, piece := range splitPunctuation(text) {
		for _, clause := range connectorRe.Split(piece, -1) {
			segments = append(segments, splitRunOnAmounts(clause)...)
		}
	}

	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// splitPunctuation breaks on sentence separators. A '.' between two digits
// is a decimal point, not a separator.
func splitPunctuation(text string) []string {
	runes := []rune(text)
	var pieces []string
	start := 0

	for i, r := range runes {
		switch r {
		case ',', ';', '!', '?':
			pieces = append(pieces, string(runes[start:i]))
			start = i + 1
		case '.':
			if i > 0 && i+1 < len(runes) && unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
				continue
			}
			pieces = append(pieces, string(runes[start:i]))
			start = i + 1
		}
	}
	pieces = append(pieces, string(runes[start:]))
	return pieces
}

// splitRunOnAmounts cuts after each amount when another amount still
// follows. "早餐15午餐30晚餐50" becomes three clauses; "花了50元在超市"
// stays whole because nothing after the amount carries digits.
func splitRunOnAmounts(clause string) []string {
	matches := amountTailRe.FindAllStringIndex(clause, -1)
	if len(matches) < 2 {
		return []string{clause}
	}

	var segments []string
	start := 0
	for i, m := range matches {
		if i == len(matches)-1 {
			break
		}
		rest := clause[m[1]:]
		if !strings.ContainsFunc(rest, unicode.IsDigit) {
			break
		}
		// A date or clock unit right after the digits means this was not
		// an amount at all ("1月5日", "3点").
		if r, _ := utf8.DecodeRuneInString(rest); strings.ContainsRune("月日号年点时分秒", r) {
			continue
		}
		segments = append(segments, clause[start:m[1]])
		start = m[1]
	}
	segments = append(segments, clause[start:])
	return segments
}
