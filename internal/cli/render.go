package cli

import (
	"fmt"
	"strings"

	"github.com/topn2024/ai-bookkeeping-sub009/internal/model"
)

// RenderResult formats a MultiIntentResult for terminal display.
func RenderResult(result model.MultiIntentResult) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("分析结果") + "\n")

	if result.Empty() && len(result.FilteredNoise) == 0 {
		b.WriteString(SubtleStyle.Render("未识别到可执行的意图") + "\n")
		return b.String()
	}

	for i, intent := range result.CompleteIntents {
		line := fmt.Sprintf("%d. [%s] %.2f元", i+1, transactionLabel(intent.Type), intent.Amount)
		if intent.Description != "" {
			line += "  " + intent.Description
		}
		line += fmt.Sprintf("  (置信度 %.2f)", intent.Confidence)
		b.WriteString(SuccessStyle.Render(line) + "\n")
	}

	for _, intent := range result.IncompleteIntents {
		line := fmt.Sprintf("待补全: %s  缺少 %s", intent.OriginalText, strings.Join(intent.MissingSlots, ", "))
		b.WriteString(WarningStyle.Render(line) + "\n")
	}

	if nav := result.Navigation; nav != nil {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("跳转到: %s (%s)", nav.TargetName, nav.TargetPage)) + "\n")
	}

	for _, noise := range result.FilteredNoise {
		b.WriteString(SubtleStyle.Render("忽略: "+noise) + "\n")
	}

	return b.String()
}

func transactionLabel(t model.TransactionType) string {
	switch t {
	case model.TypeIncome:
		return "收入"
	case model.TypeTransfer:
		return "转账"
	case model.TypeExpense:
		return "支出"
	}
	return string(t)
}
