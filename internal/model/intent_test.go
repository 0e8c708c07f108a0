package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntentCategory_Valid(t *testing.T) {
	for _, cat := range AllCategories {
		assert.True(t, cat.Valid(), "category %s", cat)
	}

	assert.False(t, IntentCategory("").Valid())
	assert.False(t, IntentCategory("bookkeeping").Valid())
}

func TestAllCategories_Unique(t *testing.T) {
	seen := make(map[IntentCategory]bool, len(AllCategories))
	for _, cat := range AllCategories {
		assert.False(t, seen[cat], "duplicate category %s", cat)
		seen[cat] = true
	}
	assert.Len(t, AllCategories, 9)
}

func TestSegmentAnalysis_HasAmount(t *testing.T) {
	var s SegmentAnalysis
	assert.False(t, s.HasAmount())

	zero := 0.0
	s.Amount = &zero
	assert.False(t, s.HasAmount())

	positive := 12.5
	s.Amount = &positive
	assert.True(t, s.HasAmount())
}

func TestMultiIntentResult_Empty(t *testing.T) {
	var r MultiIntentResult
	assert.True(t, r.Empty())

	r.FilteredNoise = []string{"嗯"}
	assert.True(t, r.Empty(), "noise alone is not actionable")

	r.Navigation = &NavigationIntent{TargetPage: "home"}
	assert.False(t, r.Empty())

	r = MultiIntentResult{CompleteIntents: []CompleteIntent{{Amount: 10}}}
	assert.False(t, r.Empty())

	r = MultiIntentResult{IncompleteIntents: []IncompleteIntent{{MissingSlots: []string{"amount"}}}}
	assert.False(t, r.Empty())
}

func TestPages(t *testing.T) {
	ids := PageIDs()
	assert.Len(t, ids, 8)

	for _, id := range ids {
		assert.True(t, KnownPage(id), "page %s", id)
		assert.NotEmpty(t, PageDisplayName(id))
	}

	assert.Equal(t, "设置", PageDisplayName("settings"))
	assert.Equal(t, "unknown", PageDisplayName("unknown"), "unmapped ids pass through")
	assert.False(t, KnownPage("unknown"))
}
