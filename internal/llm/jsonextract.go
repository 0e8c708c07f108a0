package llm

import "strings"

// ExtractJSONObject locates the first '{' and the last '}' in a free-form
// LLM response and returns the substring between them. This deliberately
// tolerant strategy is the primary resilience mechanism against models
// that wrap their JSON in conversational prose; keep any change to it
// covered by the tests in jsonextract_test.go.
func ExtractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start < 0 {
		return "", false
	}

	end := strings.LastIndex(s, "}")
	if end < start {
		return "", false
	}

	return s[start : end+1], true
}
