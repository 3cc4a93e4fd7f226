package flow

import (
	"context"

	"github.com/reco-labs/reco/core"
)

// Kind 用于标记 Stage 类型，方便观测/治理/编排（例如按环节打点）。
type Kind string

const (
	KindClassify Kind = "classify" // 分类环节：请求 -> persona 匹配
	KindRewrite  Kind = "rewrite"  // 改写环节：原始查询 -> 扩充查询
	KindMatch    Kind = "match"    // 匹配环节：查询 + 硬约束 -> 候选集
	KindRank     Kind = "rank"     // 排序环节：候选集 -> 最终结果
)

// Stage 是管道的最小可扩展单元。
// 统一采用“输入状态 -> 输出新状态”的形态：环节基于 Clone 产出
// 新状态并只填充自己负责的字段，失败时返回 error 交由 Graph 终止。
type Stage interface {
	Name() string
	Kind() Kind

	Run(ctx context.Context, state *core.State) (*core.State, error)
}
