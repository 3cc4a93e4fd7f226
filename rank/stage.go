package rank

import (
	"context"

	"github.com/reco-labs/reco/core"
	"github.com/reco-labs/reco/flow"
)

// Stage 把 Ranker 接入管道：只填充状态的 Result 字段。
// 可选挂一个多样性重排，在打分之后、出结果之前执行。
type Stage struct {
	ranker    Ranker
	diversity *Diversity
}

// StageOption 配置排序环节。
type StageOption func(*Stage)

// WithDiversity 启用卖家多样性重排。
func WithDiversity(maxPerSeller int) StageOption {
	return func(s *Stage) { s.diversity = &Diversity{MaxPerSeller: maxPerSeller} }
}

// NewStage 创建排序环节。
func NewStage(r Ranker, opts ...StageOption) *Stage {
	s := &Stage{ranker: r}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Stage) Name() string    { return s.ranker.Name() }
func (s *Stage) Kind() flow.Kind { return flow.KindRank }

func (s *Stage) Run(ctx context.Context, state *core.State) (*core.State, error) {
	result, err := s.ranker.Rank(ctx, state.Candidates, state.Matches)
	if err != nil {
		return nil, err
	}
	if s.diversity != nil {
		result = s.diversity.Apply(result)
	}
	out := state.Clone()
	out.Result = result
	return out, nil
}

var _ flow.Stage = (*Stage)(nil)
