package rewrite

import (
	"context"

	"github.com/reco-labs/reco/core"
	"github.com/reco-labs/reco/flow"
)

// Stage 把 Rewriter 接入管道：只填充状态的 Query 字段。
type Stage struct {
	rewriter Rewriter
}

// NewStage 创建改写环节。
func NewStage(r Rewriter) *Stage { return &Stage{rewriter: r} }

func (s *Stage) Name() string    { return s.rewriter.Name() }
func (s *Stage) Kind() flow.Kind { return flow.KindRewrite }

func (s *Stage) Run(ctx context.Context, state *core.State) (*core.State, error) {
	q, err := s.rewriter.Rewrite(ctx, state.Request, state.Matches)
	if err != nil {
		return nil, err
	}
	out := state.Clone()
	out.Query = q
	return out, nil
}

var _ flow.Stage = (*Stage)(nil)
