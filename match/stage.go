package match

import (
	"context"

	"github.com/reco-labs/reco/core"
	"github.com/reco-labs/reco/flow"
)

// Stage 把 Matcher 接入管道：只填充状态的 Candidates 字段。
type Stage struct {
	matcher *Matcher
}

// NewStage 创建匹配环节。
func NewStage(m *Matcher) *Stage { return &Stage{matcher: m} }

func (s *Stage) Name() string    { return s.matcher.Name() }
func (s *Stage) Kind() flow.Kind { return flow.KindMatch }

func (s *Stage) Run(ctx context.Context, state *core.State) (*core.State, error) {
	candidates, err := s.matcher.Match(ctx, state)
	if err != nil {
		return nil, err
	}
	out := state.Clone()
	out.Candidates = candidates
	return out, nil
}

var _ flow.Stage = (*Stage)(nil)
