package flow

import (
	"context"
	"fmt"

	"github.com/reco-labs/reco/core"
)

// Graph 是管道编排器：把各环节组成带条件分支的状态机并按序执行。
//
// 状态机：
//
//	start -> classified -> routed -> { rewritten | matched | empty }
//	rewritten -> matched -> ranked
//	任一环节失败 -> failed（携带失败原因，跳过剩余环节）
//
// 分支是有限且固定的，因此直接枚举路径，不做通用图执行引擎。
// 失败环节不在此层重试，重试策略属于边界层。
type Graph struct {
	classify Stage
	rewrite  Stage
	match    Stage
	rank     Stage
	router   Router
}

// NewGraph 组装管道。四个环节均为必填。
func NewGraph(classify, rewrite, match, rank Stage) (*Graph, error) {
	for _, s := range []struct {
		stage Stage
		kind  Kind
	}{
		{classify, KindClassify},
		{rewrite, KindRewrite},
		{match, KindMatch},
		{rank, KindRank},
	} {
		if s.stage == nil {
			return nil, fmt.Errorf("flow: %s stage is required", s.kind)
		}
	}
	return &Graph{classify: classify, rewrite: rewrite, match: match, rank: rank}, nil
}

// MustNewGraph 是 NewGraph 的 panic 版本（示例/测试用）。
func MustNewGraph(classify, rewrite, match, rank Stage) *Graph {
	g, err := NewGraph(classify, rewrite, match, rank)
	if err != nil {
		panic(err)
	}
	return g
}

// Run 从初始状态执行到终态。返回的状态 Step 一定是终态之一：
// ranked（有结果）、empty（空结果，不是错误）、failed（Err 携带失败原因）。
// 每个环节同步跑完才进入下一个，调用方取消时以 failed 终止。
func (g *Graph) Run(ctx context.Context, state *core.State) *core.State {
	// start -> classified
	state = g.step(ctx, state, g.classify, core.StepClassified)
	if state.Step.Terminal() {
		return state
	}

	// classified -> routed（纯决策，不改状态内容）
	decision := g.router.Decide(state)
	state = state.Advance(core.StepRouted, "router")
	state.Route = string(decision)

	switch decision {
	case ToEmptyResult:
		// routed -> empty（终态短路，跳过匹配与排序）
		state = state.Advance(core.StepEmpty, "")
		state.Result = &core.RankedResult{}
		return state
	case ToQueryRewrite:
		state = g.step(ctx, state, g.rewrite, core.StepRewritten)
		if state.Step.Terminal() {
			return state
		}
	}

	state = g.step(ctx, state, g.match, core.StepMatched)
	if state.Step.Terminal() {
		return state
	}

	return g.step(ctx, state, g.rank, core.StepRanked)
}

// step 执行一个环节：先查取消，再运行，失败则进入 failed 终态。
func (g *Graph) step(ctx context.Context, state *core.State, stage Stage, next core.Step) *core.State {
	if err := ctx.Err(); err != nil {
		return state.Fail(stage.Name(), fmt.Errorf("pipeline canceled before %s: %w", stage.Name(), err))
	}

	out, err := stage.Run(ctx, state)
	if err != nil {
		return state.Fail(stage.Name(), err)
	}
	return out.Advance(next, stage.Name())
}
