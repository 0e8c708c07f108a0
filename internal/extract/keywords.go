package extract

import "strings"

// categoryEntry maps a bookkeeping category to its trigger keywords.
// Entries are scanned in order; the first whose keyword appears in the
// text wins, so the list doubles as the priority order.
type categoryEntry struct {
	Name     string
	Keywords []string
}

var categoryTable = []categoryEntry{
	{"餐饮", []string{"早餐", "午餐", "晚餐", "夜宵", "外卖", "吃饭", "吃", "喝", "奶茶", "咖啡", "餐厅", "火锅"}},
	{"交通", []string{"打车", "出租车", "地铁", "公交", "高铁", "火车", "机票", "加油", "停车", "滴滴"}},
	{"购物", []string{"购物", "买", "淘宝", "京东", "拼多多", "超市", "商场", "衣服", "鞋"}},
	{"娱乐", []string{"电影", "游戏", "KTV", "唱歌", "演唱会", "门票", "娱乐"}},
	{"医疗", []string{"医院", "看病", "药", "挂号", "体检", "诊所"}},
	{"居住", []string{"房租", "水费", "电费", "燃气费", "物业费", "宽带"}},
	{"通讯", []string{"话费", "流量", "充值"}},
	{"教育", []string{"学费", "培训", "课程", "书"}},
}

// CategoryHints renders the category keyword table as one line per
// category, used by the AI decomposition prompt.
func CategoryHints() []string {
	hints := make([]string, 0, len(categoryTable))
	for _, entry := range categoryTable {
		n := len(entry.Keywords)
		if n > 4 {
			n = 4
		}
		hints = append(hints, entry.Name+": "+strings.Join(entry.Keywords[:n], "、"))
	}
	return hints
}

// pageEntry maps a navigation target page to its trigger keywords,
// scanned first-match-wins like the category table.
type pageEntry struct {
	ID       string
	Keywords []string
}

var pageTable = []pageEntry{
	{"add_transaction", []string{"记一笔", "记账", "添加"}},
	{"transactions", []string{"账单", "明细", "流水"}},
	{"statistics", []string{"统计", "报表", "图表"}},
	{"budget", []string{"预算"}},
	{"assets", []string{"资产", "账户"}},
	{"settings", []string{"设置"}},
	{"profile", []string{"我的", "个人中心", "登录"}},
	{"home", []string{"首页", "主页"}},
}

// incomeKeywords and transferKeywords drive transaction type inference;
// income is checked before transfer, everything else defaults to expense.
var (
	incomeKeywords   = []string{"工资", "收入", "发了", "到账", "报销", "红包", "奖金", "进账", "收到"}
	transferKeywords = []string{"转账", "转给", "转了", "转入", "转出", "互转"}
)

// consumptionVerbs mirror the classifier's consumption tokens; the merger
// uses them to veto navigation for spending-like segments.
var consumptionVerbs = []string{
	"花了", "花费", "消费", "支出", "买", "吃", "喝", "付", "支付",
	"打车", "加油", "充值", "早餐", "午餐", "晚餐", "夜宵", "外卖",
}

// navigationVerbs are the strict tokens that alone signal a page change.
var navigationVerbs = []string{"打开", "进入", "前往", "跳转", "切换到", "返回", "回到"}

// chineseOrdinals resolves a spoken ordinal (1-10) for selection replies
// that survive numeral digitization as words, e.g. bare "十" in "第十".
var chineseOrdinals = map[string]int{
	"一": 1, "二": 2, "两": 2, "三": 3, "四": 4, "五": 5,
	"六": 6, "七": 7, "八": 8, "九": 9, "十": 10,
}
