// Package reco 是一个二手交易推荐管道（Recommendation Core）。
//
// 设计要点：
// - Stage-first: 推荐逻辑按固定状态机串联（Classify → Route → Rewrite → Match → Rank）
// - State-first: 单一管道状态线性穿过所有环节，每个环节只填充自己的字段
// - Persona-aware: 10 个内置买卖画像沿 5 个固定轴打分，驱动改写与排序
// - Stage 可替换: 分类/改写/排序都是窄契约接口，任何打分策略可插拔替换
package reco

import (
	"github.com/reco-labs/reco/core"
	"github.com/reco-labs/reco/flow"
)

// 轻量 facade：便于用户直接 import "reco" 使用核心抽象。
type State = core.State
type Request = core.Request
type RankedResult = core.RankedResult
type PersonaMatch = core.PersonaMatch
type Graph = flow.Graph
type Stage = flow.Stage
type Kind = flow.Kind

const (
	KindClassify = flow.KindClassify
	KindRewrite  = flow.KindRewrite
	KindMatch    = flow.KindMatch
	KindRank     = flow.KindRank
)
