package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topn2024/ai-bookkeeping-sub009/internal/model"
	"github.com/topn2024/ai-bookkeeping-sub009/internal/noise"
)

func newTestMerger(cfg Config) *Merger {
	return New(noise.New(), cfg)
}

func seg(text string, category model.IntentCategory, confidence float64) model.SegmentAnalysis {
	return model.SegmentAnalysis{
		Text:       text,
		Confidence: confidence,
		Intent: model.ClassifierResult{
			Best: model.IntentCandidate{Category: category, Confidence: confidence},
		},
	}
}

func withAmount(s model.SegmentAnalysis, amount float64) model.SegmentAnalysis {
	s.Amount = &amount
	return s
}

func withCategory(s model.SegmentAnalysis, category string) model.SegmentAnalysis {
	s.Category = category
	return s
}

func TestMerger_CompleteAndIncomplete(t *testing.T) {
	m := newTestMerger(Config{})

	segments := []model.SegmentAnalysis{
		withCategory(withAmount(seg("早餐15块", model.CategoryAddTransaction, 0.84), 15), "餐饮"),
		seg("记一笔", model.CategoryAddTransaction, 0.9),
	}

	got := m.Merge(segments, "早餐15块然后记一笔")

	require.Len(t, got.CompleteIntents, 1)
	complete := got.CompleteIntents[0]
	assert.Equal(t, model.TypeExpense, complete.Type)
	assert.InDelta(t, 15.0, complete.Amount, 0.001)
	assert.Equal(t, "餐饮", complete.Category)
	assert.Equal(t, "餐饮", complete.Description)

	require.Len(t, got.IncompleteIntents, 1)
	incomplete := got.IncompleteIntents[0]
	assert.Equal(t, []string{"amount"}, incomplete.MissingSlots)
	assert.Equal(t, "记一笔", incomplete.OriginalText)
}

func TestMerger_NavigationFirstWins(t *testing.T) {
	m := newTestMerger(Config{})

	segments := []model.SegmentAnalysis{
		seg("打开设置", model.CategoryNavigate, 0.9),
		seg("打开统计", model.CategoryNavigate, 0.9),
	}

	got := m.Merge(segments, "打开设置然后打开统计")

	require.NotNil(t, got.Navigation)
	assert.Equal(t, "settings", got.Navigation.TargetPage)
	assert.Equal(t, "设置", got.Navigation.TargetName)
	assert.Equal(t, "打开设置", got.Navigation.OriginalText)
}

func TestMerger_NavigationVetoedBySpending(t *testing.T) {
	m := newTestMerger(Config{})

	// A spending clause that happens to contain a navigation-looking verb
	// must be booked, not navigated.
	segments := []model.SegmentAnalysis{
		withAmount(seg("打开外卖花了50", model.CategoryUnknown, 0.5), 50),
	}

	got := m.Merge(segments, "打开外卖花了50")

	assert.Nil(t, got.Navigation)
	require.Len(t, got.CompleteIntents, 1)
	assert.InDelta(t, 50.0, got.CompleteIntents[0].Amount, 0.001)
}

func TestMerger_NavigationWithoutClassifier(t *testing.T) {
	m := newTestMerger(Config{})

	// "去" plus a page noun is enough even when the classifier stayed
	// below threshold.
	segments := []model.SegmentAnalysis{
		seg("去预算那里", model.CategoryUnknown, 0.5),
	}

	got := m.Merge(segments, "去预算那里")

	require.NotNil(t, got.Navigation)
	assert.Equal(t, "budget", got.Navigation.TargetPage)
}

func TestMerger_ConfirmationsConsumed(t *testing.T) {
	m := newTestMerger(Config{})

	segments := []model.SegmentAnalysis{
		seg("好的", model.CategoryConfirm, 1.0),
		seg("不要", model.CategoryCancel, 1.0),
	}

	got := m.Merge(segments, "好的,不要")

	assert.True(t, got.Empty())
	assert.Empty(t, got.FilteredNoise)
	assert.Equal(t, []string{"好的", "不要"}, got.Segments)
}

func TestMerger_UnknownSegments(t *testing.T) {
	tests := []struct {
		name         string
		segment      model.SegmentAnalysis
		wantComplete int
		wantType     model.TransactionType
	}{
		{
			name:         "amount with category keyword",
			segment:      withCategory(withAmount(seg("奶茶20", model.CategoryUnknown, 0.5), 20), "餐饮"),
			wantComplete: 1,
			wantType:     model.TypeExpense,
		},
		{
			name:         "amount with transfer keyword",
			segment:      withAmount(seg("转账500给妈妈", model.CategoryUnknown, 0.5), 500),
			wantComplete: 1,
			wantType:     model.TypeTransfer,
		},
		{
			name:         "amount with income keyword",
			segment:      withAmount(seg("发了工资5000", model.CategoryUnknown, 0.5), 5000),
			wantComplete: 1,
			wantType:     model.TypeIncome,
		},
		{
			name:         "bare amount dropped",
			segment:      withAmount(seg("50元", model.CategoryUnknown, 0.5), 50),
			wantComplete: 0,
		},
		{
			name:         "no amount dropped",
			segment:      seg("明天再说", model.CategoryUnknown, 0.5),
			wantComplete: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMerger(Config{})
			got := m.Merge([]model.SegmentAnalysis{tt.segment}, tt.segment.Text)

			require.Len(t, got.CompleteIntents, tt.wantComplete)
			assert.Empty(t, got.IncompleteIntents)
			if tt.wantComplete > 0 {
				assert.Equal(t, tt.wantType, got.CompleteIntents[0].Type)
			}
		})
	}
}

func TestMerger_QueryAndSelectionDropped(t *testing.T) {
	m := newTestMerger(Config{})

	segments := []model.SegmentAnalysis{
		seg("今天花了多少", model.CategoryQueryTransaction, 0.8),
		seg("2", model.CategoryClarifySelection, 1.0),
	}

	got := m.Merge(segments, "今天花了多少,2")

	assert.True(t, got.Empty())
}

func TestMerger_NoiseDelegated(t *testing.T) {
	m := newTestMerger(Config{})

	segments := []model.SegmentAnalysis{
		seg("嗯嗯", model.CategoryUnknown, 0.5),
		withCategory(withAmount(seg("早餐15块", model.CategoryAddTransaction, 0.84), 15), "餐饮"),
	}

	got := m.Merge(segments, "嗯嗯早餐15块")

	assert.Equal(t, []string{"嗯嗯"}, got.FilteredNoise)
	assert.Len(t, got.CompleteIntents, 1)
	assert.Equal(t, []string{"嗯嗯", "早餐15块"}, got.Segments)
}

func TestMerger_Sorting(t *testing.T) {
	m := newTestMerger(Config{})

	segments := []model.SegmentAnalysis{
		withCategory(withAmount(seg("早餐15", model.CategoryAddTransaction, 0.9), 15), "餐饮"),
		withCategory(withAmount(seg("打车30", model.CategoryAddTransaction, 0.7), 30), "交通"),
		withCategory(withAmount(seg("买药50", model.CategoryAddTransaction, 0.9), 50), "医疗"),
	}

	got := m.Merge(segments, "早餐15,打车30,买药50")

	require.Len(t, got.CompleteIntents, 3)
	// Confidence descending, amount descending on ties.
	assert.InDelta(t, 50.0, got.CompleteIntents[0].Amount, 0.001)
	assert.InDelta(t, 15.0, got.CompleteIntents[1].Amount, 0.001)
	assert.InDelta(t, 30.0, got.CompleteIntents[2].Amount, 0.001)
}

func TestMerger_SameCategoryMerge(t *testing.T) {
	segments := []model.SegmentAnalysis{
		withCategory(withAmount(seg("早餐15", model.CategoryAddTransaction, 0.9), 15), "餐饮"),
		withCategory(withAmount(seg("午餐30", model.CategoryAddTransaction, 0.8), 30), "餐饮"),
		withCategory(withAmount(seg("打车20", model.CategoryAddTransaction, 0.9), 20), "交通"),
	}

	t.Run("disabled keeps one intent per segment", func(t *testing.T) {
		got := newTestMerger(Config{}).Merge(segments, "早餐15,午餐30,打车20")
		assert.Len(t, got.CompleteIntents, 3)
	})

	t.Run("enabled sums per category", func(t *testing.T) {
		got := newTestMerger(Config{MergeSameCategory: true}).Merge(segments, "早餐15,午餐30,打车20")

		require.Len(t, got.CompleteIntents, 2)

		var dining, transport *model.CompleteIntent
		for i := range got.CompleteIntents {
			switch got.CompleteIntents[i].Category {
			case "餐饮":
				dining = &got.CompleteIntents[i]
			case "交通":
				transport = &got.CompleteIntents[i]
			}
		}

		require.NotNil(t, dining)
		assert.InDelta(t, 45.0, dining.Amount, 0.001)
		assert.InDelta(t, 0.8, dining.Confidence, 0.001)
		assert.Equal(t, "早餐15；午餐30", dining.OriginalText)

		require.NotNil(t, transport)
		assert.InDelta(t, 20.0, transport.Amount, 0.001)
	})
}

func TestMerger_Deterministic(t *testing.T) {
	m := newTestMerger(Config{})

	segments := []model.SegmentAnalysis{
		withCategory(withAmount(seg("早餐15", model.CategoryAddTransaction, 0.9), 15), "餐饮"),
		withCategory(withAmount(seg("午餐30", model.CategoryAddTransaction, 0.9), 30), "餐饮"),
		seg("打开设置", model.CategoryNavigate, 0.9),
		seg("嗯嗯", model.CategoryUnknown, 0.5),
	}

	first := m.Merge(segments, "raw")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, m.Merge(segments, "raw"))
	}
}

func TestMerger_DescriptionFallbacks(t *testing.T) {
	m := newTestMerger(Config{})

	tests := []struct {
		name    string
		segment model.SegmentAnalysis
		want    string
	}{
		{
			name: "category and merchant",
			segment: func() model.SegmentAnalysis {
				s := withCategory(withAmount(seg("在星巴克喝咖啡30", model.CategoryAddTransaction, 0.8), 30), "餐饮")
				s.Merchant = "星巴克"
				return s
			}(),
			want: "餐饮 - 星巴克",
		},
		{
			name:    "category only",
			segment: withCategory(withAmount(seg("早餐15", model.CategoryAddTransaction, 0.8), 15), "餐饮"),
			want:    "餐饮",
		},
		{
			name:    "short text fallback",
			segment: withAmount(seg("花了50块", model.CategoryAddTransaction, 0.8), 50),
			want:    "花了50块",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Merge([]model.SegmentAnalysis{tt.segment}, tt.segment.Text)
			require.Len(t, got.CompleteIntents, 1)
			assert.Equal(t, tt.want, got.CompleteIntents[0].Description)
		})
	}
}
