package filter

import (
	"context"

	"github.com/reco-labs/reco/core"
	"github.com/reco-labs/reco/pkg/dsl"
)

// RuleFilter 按 CEL 表达式过滤候选：表达式求值为 false 的候选被剔除。
// 表达式在构建期编译一次，请求期只做求值。
type RuleFilter struct {
	rule *dsl.Rule
}

// NewRuleFilter 编译表达式并构建过滤器。
func NewRuleFilter(expr string) (*RuleFilter, error) {
	rule, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &RuleFilter{rule: rule}, nil
}

func (f *RuleFilter) Name() string { return "filter.rule" }

func (f *RuleFilter) ShouldFilter(_ context.Context, req core.Request, c *core.Candidate) (bool, error) {
	keep, err := f.rule.Eval(req, c)
	if err != nil {
		return false, err
	}
	return !keep, nil
}

var _ Filter = (*RuleFilter)(nil)
