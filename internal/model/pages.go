package model

// pageNames maps page identifiers to their user-facing display names.
// Shared by the entity extractor and the AI result adapter so both paths
// emit identical navigation targets.
var pageNames = map[string]string{
	"home":            "首页",
	"add_transaction": "记一笔",
	"transactions":    "账单明细",
	"statistics":      "统计报表",
	"budget":          "预算",
	"assets":          "资产",
	"settings":        "设置",
	"profile":         "个人中心",
}

// pageOrder fixes iteration order wherever the table is rendered, e.g.
// in the AI decomposition prompt.
var pageOrder = []string{
	"home", "add_transaction", "transactions", "statistics",
	"budget", "assets", "settings", "profile",
}

// PageIDs returns the known page identifiers in a stable order.
func PageIDs() []string {
	ids := make([]string, len(pageOrder))
	copy(ids, pageOrder)
	return ids
}

// PageDisplayName returns the display name for a page identifier, or the
// identifier itself when no mapping exists.
func PageDisplayName(pageID string) string {
	if name, ok := pageNames[pageID]; ok {
		return name
	}
	return pageID
}

// KnownPage reports whether pageID has a display-name mapping.
func KnownPage(pageID string) bool {
	_, ok := pageNames[pageID]
	return ok
}
