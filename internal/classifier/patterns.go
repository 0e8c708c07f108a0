package classifier

import "github.com/topn2024/ai-bookkeeping-sub009/internal/model"

// defaultPatterns returns the default regular-expression table per intent
// category. Patterns run against normalized text, so Chinese numerals are
// already Arabic digits ("第一个" arrives as "第1个").
func defaultPatterns() map[model.IntentCategory][]string {
	return map[model.IntentCategory][]string{
		model.CategoryAddTransaction: {
			`(花了|花费|消费|支出|买了|付了|充了)\s*\d+`,
			`(早餐|午餐|晚餐|夜宵|外卖|打车|地铁|公交|加油)\s*\d*`,
			`(工资|收入|报销|红包|奖金)?(发了|到账|进账|收到)`,
			`(转账|转给|转了|互转)`,
			`记(一笔|个账|账)`,
		},
		model.CategoryDeleteTransaction: {
			`删除?(掉|了)?.{0,6}(记录|账单|交易|那笔|这笔|最后一笔)`,
			`把.{0,8}(删|去)(掉|了)`,
			`(删掉|移除|去掉)`,
		},
		model.CategoryModifyTransaction: {
			`(修改|更改|调整).{0,6}(记录|账单|交易|金额|分类|那笔|这笔)`,
			`把.{0,8}(改成|改为|调成)`,
			`(改成|改为|改一下)`,
		},
		model.CategoryQueryTransaction: {
			`(查询|查看|看看|看一下|查一下).{0,6}(账单|消费|支出|记录|明细)?`,
			`(花了|消费|支出|用了).{0,4}(多少|几)`,
			`(多少钱|几笔|总共|一共|合计)`,
			`(今天|昨天|前天|本周|这周|上周|本月|这个月|上个月|今年)的?(账单|消费|支出|记录|明细)`,
		},
		model.CategoryNavigate: {
			`(打开|进入|前往|跳转|切换)(到|去)?.{0,4}(页面|首页|设置|统计|报表|预算|账单|明细|资产|个人中心|我的)`,
			`去.{0,6}(页面|看看)`,
			`(返回|回到)(首页|上一页)`,
		},
		model.CategoryConfirm: {
			`^(好的?|是的?|对的?|嗯+|确认|确定|可以|行|没错|ok|yes)$`,
			`(确认|没问题|就这样|就这么办)`,
		},
		model.CategoryCancel: {
			`^(不|不要|不用|不对|错了|取消|算了|no)$`,
			`(取消|算了|不要了|别删|别改)`,
		},
		model.CategoryClarifySelection: {
			`^\d+$`,
			`^第?\d+(个|条|笔)?$`,
			`(第\d+(个|条|笔))`,
			`选(第?\d+|择)`,
		},
	}
}

// Token lists for the special-case heuristics.
var (
	consumptionTokens = []string{
		"花了", "花费", "消费", "支出", "买", "吃", "喝", "付", "支付",
		"打车", "加油", "充值", "早餐", "午餐", "晚餐", "夜宵", "外卖",
	}
	relativeTimeTokens = []string{
		"今天", "昨天", "前天", "本周", "这周", "上周",
		"本月", "这个月", "上个月", "今年", "去年",
	}
	quantityQuestionTokens = []string{
		"多少", "多少钱", "几笔", "几次",
	}
	affirmativeTokens = []string{
		"是", "好", "对", "嗯", "好的", "是的", "对的", "确认", "确定", "可以", "行", "ok",
	}
	negativeTokens = []string{
		"不", "不是", "不对", "不要", "不用", "取消", "算了", "no",
	}
)
