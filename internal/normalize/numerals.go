package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

var numeralDigits = map[rune]int{
	'零': 0, '一': 1, '二': 2, '两': 2, '三': 3, '四': 4,
	'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
}

func isNumeralRune(r rune) bool {
	if _, ok := numeralDigits[r]; ok {
		return true
	}
	return r == '十' || r == '百'
}

// ConvertNumerals rewrites Chinese numerals to Arabic digits, expanding the
// positional units 十 and 百:
//
//	十 → 10    三十 → 30    十五 → 15    二十五 → 25
//	三百 → 300  三百零五 → 305  三百五十 → 350
func ConvertNumerals(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(runes); {
		if !isNumeralRune(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}

		j := i
		for j < len(runes) && isNumeralRune(runes[j]) {
			j++
		}
		b.WriteString(convertRun(runes[i:j]))
		i = j
	}

	return b.String()
}

// convertRun converts one maximal run of numeral runes.
func convertRun(run []rune) string {
	if idx := indexRune(run, '百'); idx >= 0 {
		return convertHundreds(run, idx)
	}
	if idx := indexRune(run, '十'); idx >= 0 {
		return convertTens(run, idx)
	}
	return digitsOf(run)
}

// convertHundreds handles X百 and X百YY. The remainder after 百 always
// occupies the last two decimal places: 三百五 → 305, 三百五十 → 350.
func convertHundreds(run []rune, idx int) string {
	left := digitsOf(run[:idx])
	if left == "" {
		left = "1"
	}

	rest := run[idx+1:]
	if len(rest) == 0 {
		return left + "00"
	}

	restVal, err := strconv.Atoi(convertRun(rest))
	if err != nil || restVal > 99 {
		return left + "00" + convertRun(rest)
	}
	return left + fmt.Sprintf("%02d", restVal)
}

// convertTens handles 十, X十, 十Y and X十Y.
func convertTens(run []rune, idx int) string {
	left := digitsOf(run[:idx])
	if left == "" {
		left = "1"
	}

	right := digitsOf(run[idx+1:])
	if right == "" {
		right = "0"
	}
	return left + right
}

func digitsOf(run []rune) string {
	var b strings.Builder
	for _, r := range run {
		if d, ok := numeralDigits[r]; ok {
			b.WriteString(strconv.Itoa(d))
		}
	}
	return b.String()
}

func indexRune(run []rune, target rune) int {
	for i, r := range run {
		if r == target {
			return i
		}
	}
	return -1
}
