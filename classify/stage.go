package classify

import (
	"context"

	"github.com/reco-labs/reco/core"
	"github.com/reco-labs/reco/flow"
)

// Stage 把 Classifier 接入管道：只填充状态的 Matches 字段。
type Stage struct {
	classifier Classifier
}

// NewStage 创建分类环节。
func NewStage(c Classifier) *Stage { return &Stage{classifier: c} }

func (s *Stage) Name() string    { return s.classifier.Name() }
func (s *Stage) Kind() flow.Kind { return flow.KindClassify }

func (s *Stage) Run(ctx context.Context, state *core.State) (*core.State, error) {
	matches, err := s.classifier.Classify(ctx, state.Request)
	if err != nil {
		return nil, err
	}
	out := state.Clone()
	out.Matches = matches
	return out, nil
}

var _ flow.Stage = (*Stage)(nil)
