package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topn2024/ai-bookkeeping-sub009/internal/model"
)

// fixedNow is a Wednesday; the Monday of its week is 2024-01-01.
var fixedNow = time.Date(2024, 1, 3, 14, 30, 0, 0, time.UTC)

func newTestExtractor() *Extractor {
	return New(WithClock(func() time.Time { return fixedNow }))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExtractor_Amount(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		want  *float64
		name  string
		input string
	}{
		{name: "amount with unit", input: "早餐15块", want: floatPtr(15)},
		{name: "decimal amount", input: "花了3.5元", want: floatPtr(3.5)},
		{name: "bare number", input: "充了200", want: floatPtr(200)},
		{name: "unit beats leading date digits", input: "1月5日花了30块", want: floatPtr(30)},
		{name: "bare number skips date digits", input: "1月5日花了30", want: floatPtr(30)},
		{name: "no number", input: "买了衣服", want: nil},
		{name: "zero is not an amount", input: "花了0元", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.input, model.CategoryAddTransaction)
			if tt.want == nil {
				assert.Nil(t, got.Amount)
				return
			}
			require.NotNil(t, got.Amount)
			assert.InDelta(t, *tt.want, *got.Amount, 0.001)
		})
	}
}

func TestExtractor_CategoryAndMerchant(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name         string
		input        string
		wantCategory string
		wantMerchant string
	}{
		{name: "meal keyword", input: "早餐15块", wantCategory: "餐饮"},
		{name: "dining wins over shopping", input: "买奶茶花了20", wantCategory: "餐饮"},
		{name: "transport", input: "打车去机场35元", wantCategory: "交通"},
		{name: "phone credit", input: "充话费50", wantCategory: "通讯"},
		{name: "merchant before verb", input: "在星巴克花了30", wantMerchant: "星巴克"},
		{name: "no keywords", input: "转账500给妈妈", wantCategory: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.input, model.CategoryAddTransaction)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, tt.wantMerchant, got.Merchant)
		})
	}
}

func TestExtractor_TimeRange(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name      string
		input     string
		wantLabel string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{name: "today", input: "今天的消费", wantLabel: "今天", wantStart: day(2024, 1, 3), wantEnd: day(2024, 1, 4)},
		{name: "yesterday", input: "昨天花了多少", wantLabel: "昨天", wantStart: day(2024, 1, 2), wantEnd: day(2024, 1, 3)},
		{name: "this week", input: "本周的账单", wantLabel: "本周", wantStart: day(2024, 1, 1), wantEnd: day(2024, 1, 8)},
		{name: "last week", input: "上周支出", wantLabel: "上周", wantStart: day(2023, 12, 25), wantEnd: day(2024, 1, 1)},
		{name: "last month", input: "上个月的记录", wantLabel: "上个月", wantStart: day(2023, 12, 1), wantEnd: day(2024, 1, 1)},
		{name: "this month", input: "本月账单", wantLabel: "本月", wantStart: day(2024, 1, 1), wantEnd: day(2024, 2, 1)},
		{name: "this year", input: "今年总共花了多少", wantLabel: "今年", wantStart: day(2024, 1, 1), wantEnd: day(2025, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.input, model.CategoryQueryTransaction)
			require.NotNil(t, got.TimeRange)
			assert.Equal(t, tt.wantLabel, got.TimeRange.Label)
			assert.True(t, got.TimeRange.Start.Equal(tt.wantStart), "start %v", got.TimeRange.Start)
			assert.True(t, got.TimeRange.End.Equal(tt.wantEnd), "end %v", got.TimeRange.End)
		})
	}

	t.Run("no keyword", func(t *testing.T) {
		got := e.Extract("花了50块", model.CategoryAddTransaction)
		assert.Nil(t, got.TimeRange)
	})
}

func TestExtractor_TargetPage(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "settings", input: "打开设置", want: "settings"},
		{name: "statistics", input: "看看统计报表", want: "statistics"},
		{name: "transactions", input: "打开账单明细", want: "transactions"},
		{name: "home", input: "返回首页", want: "home"},
		{name: "unrecognized falls back", input: "打开那个东西", want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.input, model.CategoryNavigate)
			assert.Equal(t, tt.want, got.TargetPage)
		})
	}
}

func TestExtractor_SelectionIndex(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "bare digit", input: "5", want: 5},
		{name: "ordinal phrase", input: "第3个", want: 3},
		{name: "spoken ordinal", input: "第三", want: 3},
		{name: "no index", input: "选择", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.input, model.CategoryClarifySelection)
			assert.Equal(t, tt.want, got.SelectionIndex)
		})
	}
}

func TestExtractor_CategoryScoping(t *testing.T) {
	e := newTestExtractor()

	// Navigation segments only resolve a page; amounts in the text are
	// left alone.
	nav := e.Extract("打开设置", model.CategoryNavigate)
	assert.Nil(t, nav.Amount)
	assert.Equal(t, "settings", nav.TargetPage)

	// Confirmations carry no slots at all.
	confirm := e.Extract("好的", model.CategoryConfirm)
	assert.Equal(t, Entities{}, confirm)

	// Unknown segments still surface amount and category for the merger.
	unknown := e.Extract("早餐15块", model.CategoryUnknown)
	require.NotNil(t, unknown.Amount)
	assert.InDelta(t, 15.0, *unknown.Amount, 0.001)
	assert.Equal(t, "餐饮", unknown.Category)
}

func TestTransactionType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  model.TransactionType
	}{
		{name: "income keyword", input: "发了工资5000", want: model.TypeIncome},
		{name: "transfer keyword", input: "转账500给妈妈", want: model.TypeTransfer},
		{name: "default expense", input: "早餐15块", want: model.TypeExpense},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TransactionType(tt.input))
		})
	}
}

func TestTokenPredicates(t *testing.T) {
	assert.True(t, HasConsumptionVerb("花了50块"))
	assert.False(t, HasConsumptionVerb("打开设置"))

	assert.True(t, HasNavigationVerb("打开设置"))
	assert.False(t, HasNavigationVerb("早餐15块"))

	assert.True(t, HasPageNoun("去预算看看"))
	assert.False(t, HasPageNoun("早餐15块"))
}

func TestCategoryHints(t *testing.T) {
	hints := CategoryHints()
	require.Len(t, hints, len(categoryTable))
	assert.Contains(t, hints[0], "餐饮")
	assert.Contains(t, hints[0], "早餐")
}

func floatPtr(f float64) *float64 { return &f }
