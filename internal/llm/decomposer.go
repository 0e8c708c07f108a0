package llm

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/topn2024/ai-bookkeeping-sub009/internal/extract"
	"github.com/topn2024/ai-bookkeeping-sub009/internal/model"
	"github.com/topn2024/ai-bookkeeping-sub009/internal/service"
)

// defaultConfidence is assumed when the model omits a confidence value or
// returns one that does not parse.
const defaultConfidence = 0.5

// AIIntent is one intent entry parsed from the model's decomposition.
type AIIntent struct {
	Amount     *float64
	Type       string
	Text       string
	Category   string
	Merchant   string
	Time       string
	TargetPage string
	Confidence float64
	IsComplete bool
}

// AIDecompositionResult is the LLM-path analogue of MultiIntentResult.
// It is always converted through AdaptResult before leaving this package's
// callers, so downstream consumers see one data shape regardless of path.
type AIDecompositionResult struct {
	Summary string
	Intents []AIIntent
}

// Decomposer is the fallback path: it asks an LLM to break a complex
// utterance into intents and parses the semi-structured reply. Every
// failure mode returns nil; that is the documented fallback signal, never
// an error surfaced to the caller.
type Decomposer struct {
	chat   service.ChatCompletion
	logger *slog.Logger
}

// NewDecomposer creates an AI decomposer backed by the chat collaborator.
func NewDecomposer(chat service.ChatCompletion, logger *slog.Logger) *Decomposer {
	return &Decomposer{chat: chat, logger: logger}
}

// Decompose analyzes one utterance through the LLM. It returns nil on
// empty input, on any collaborator failure, and on any response that does
// not yield at least a parseable JSON object.
func (d *Decomposer) Decompose(ctx context.Context, input string) *AIDecompositionResult {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	response, err := d.chat.Chat(ctx, buildPrompt(input))
	if err != nil || strings.TrimSpace(response) == "" {
		d.logger.Debug("AI decomposition unavailable, falling back", "error", err)
		return nil
	}

	payload, ok := ExtractJSONObject(response)
	if !ok {
		d.logger.Debug("no JSON object in AI response")
		return nil
	}

	result := parseDecomposition(payload)
	if result == nil {
		d.logger.Debug("failed to parse AI decomposition payload")
	}
	return result
}

// buildPrompt produces the fixed decomposition prompt: the required JSON
// schema, the domain reference tables, and the user input.
func buildPrompt(input string) string {
	var b strings.Builder

	b.WriteString("你是一个记账语音助手的意图分解器。请把用户的一句话拆分成独立的意图，")
	b.WriteString("并且只输出一个JSON对象，不要输出其他文字。格式如下：\n")
	b.WriteString(`{"intents":[{"type":"expense|income|transfer|navigation|noise|unknown",`)
	b.WriteString(`"text":"原文片段","amount":数字或null,"category":"分类","merchant":"商家",`)
	b.WriteString(`"time":"时间描述","targetPage":"页面ID","isComplete":true或false,`)
	b.WriteString(`"confidence":0到1之间的数字}],"summary":"一句话总结"}`)
	b.WriteString("\n\n常见分类关键词：\n")
	for _, hint := range extract.CategoryHints() {
		b.WriteString("- " + hint + "\n")
	}
	b.WriteString("\n页面ID：\n")
	for _, id := range model.PageIDs() {
		b.WriteString("- " + id + " (" + model.PageDisplayName(id) + ")\n")
	}
	b.WriteString("\n用户输入：" + input)

	return b.String()
}

type rawIntent struct {
	Type       string          `json:"type"`
	Text       string          `json:"text"`
	Category   string          `json:"category"`
	Merchant   string          `json:"merchant"`
	Time       string          `json:"time"`
	TargetPage string          `json:"targetPage"`
	Amount     json.RawMessage `json:"amount"`
	Confidence json.RawMessage `json:"confidence"`
	IsComplete *bool           `json:"isComplete"`
}

type rawDecomposition struct {
	Summary string            `json:"summary"`
	Intents []json.RawMessage `json:"intents"`
}

// parseDecomposition parses the extracted JSON payload. Individual intent
// entries are fault-tolerant: a malformed entry or one without a type is
// skipped without failing the batch. A payload that yields no intents at
// all parses to nil.
func parseDecomposition(payload string) *AIDecompositionResult {
	var raw rawDecomposition
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil
	}

	intents := make([]AIIntent, 0, len(raw.Intents))
	for _, entry := range raw.Intents {
		var ri rawIntent
		if err := json.Unmarshal(entry, &ri); err != nil {
			continue
		}
		if strings.TrimSpace(ri.Type) == "" {
			continue
		}

		amount := parseFlexibleFloat(ri.Amount)

		isComplete := amount != nil
		if ri.IsComplete != nil {
			isComplete = *ri.IsComplete
		}

		confidence := defaultConfidence
		if v := parseFlexibleFloat(ri.Confidence); v != nil {
			confidence = clampConfidence(*v)
		}

		intents = append(intents, AIIntent{
			Type:       strings.TrimSpace(ri.Type),
			Text:       ri.Text,
			Amount:     amount,
			Category:   ri.Category,
			Merchant:   ri.Merchant,
			Time:       ri.Time,
			TargetPage: ri.TargetPage,
			IsComplete: isComplete,
			Confidence: confidence,
		})
	}

	if len(intents) == 0 {
		return nil
	}

	return &AIDecompositionResult{Intents: intents, Summary: raw.Summary}
}

// parseFlexibleFloat accepts a JSON number, a numeric string ("50" or
// "50元"), or nothing. Unparseable values yield nil.
func parseFlexibleFloat(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return &num
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return nil
	}

	str = strings.TrimSpace(str)
	str = strings.TrimRight(str, "元块钱")
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return nil
	}
	return &v
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
