package flow

import (
	"strings"

	"github.com/reco-labs/reco/core"
)

// Decision 是路由决策的枚举值。
type Decision string

const (
	ToQueryRewrite Decision = "to_query_rewrite" // 有 persona 匹配：走查询改写
	ToDirectMatch  Decision = "to_direct_match"  // 无匹配但有可用查询：直接匹配
	ToEmptyResult  Decision = "to_empty_result"  // 既无匹配也无查询：短路空结果
)

// Router 是分类之后的纯决策函数：只读状态、不产生副作用，
// 每次请求恰好在分类完成后求值一次。
type Router struct{}

// Decide 根据当前状态选择下游路径。
// 规则：有 persona 匹配 -> 改写；无匹配但原始查询可用 -> 直接匹配；
// 两者都没有 -> 空结果终态。
func (Router) Decide(state *core.State) Decision {
	if len(state.Matches) > 0 {
		return ToQueryRewrite
	}
	if strings.TrimSpace(state.Request.Query) != "" {
		return ToDirectMatch
	}
	return ToEmptyResult
}
