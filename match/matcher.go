package match

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/reco-labs/reco/core"
	"github.com/reco-labs/reco/filter"
	"github.com/reco-labs/reco/rewrite"
)

// DefaultLimit 是合并后候选数量的默认上限。
const DefaultLimit = 50

// Matcher 是候选匹配器：并发从各候选源取回商品，
// 按源定义顺序确定性合并、按商品 ID 先到先得去重，
// 最后套用请求硬约束 + 运营规则过滤。
//
// 空结果是合法产物（原样交给排序环节）；
// 任一候选源故障则整个匹配失败，上报 MatchError，绝不静默吞掉。
type Matcher struct {
	sources []Source
	filters []filter.Filter
	limit   int
}

// Option 配置 Matcher。
type Option func(*Matcher)

// WithFilters 追加运营规则过滤器（硬约束过滤始终存在，不可关闭）。
func WithFilters(fs ...filter.Filter) Option {
	return func(m *Matcher) { m.filters = append(m.filters, fs...) }
}

// WithLimit 覆盖合并后的候选数量上限。
func WithLimit(n int) Option {
	return func(m *Matcher) { m.limit = n }
}

// NewMatcher 创建匹配器。至少需要一个候选源。
func NewMatcher(sources []Source, opts ...Option) *Matcher {
	m := &Matcher{sources: sources, limit: DefaultLimit}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Matcher) Name() string { return "candidate_matcher" }

// Match 执行一次候选匹配。检索词取改写产物，改写被跳过时回退原始查询。
func (m *Matcher) Match(ctx context.Context, state *core.State) ([]*core.Candidate, error) {
	if len(m.sources) == 0 {
		return nil, core.NewMatchError("no candidate source configured", nil)
	}

	q := m.buildQuery(state)

	// 各源并发检索，结果落在各自槽位，合并顺序与源顺序一致
	slots := make([][]*core.Candidate, len(m.sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range m.sources {
		g.Go(func() error {
			got, err := src.Retrieve(gctx, q)
			if err != nil {
				return core.NewMatchError("source "+src.Name()+" failed", err)
			}
			slots[i] = got
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := m.merge(slots)

	filters := append(filter.FromRequest(state.Request), m.filters...)
	out, err := filter.Apply(ctx, state.Request, filters, merged)
	if err != nil {
		if _, ok := core.AsStageError(err); ok {
			return nil, err
		}
		return nil, core.NewMatchError("filter failed", err)
	}
	return out, nil
}

// merge 按源顺序拼接并按商品 ID 去重（先到先得），打上来源标记。
func (m *Matcher) merge(slots [][]*core.Candidate) []*core.Candidate {
	seen := make(map[string]struct{})
	var out []*core.Candidate
	for i, slot := range slots {
		name := m.sources[i].Name()
		for _, c := range slot {
			if c == nil || c.ID == "" {
				continue
			}
			if _, ok := seen[c.ID]; ok {
				continue
			}
			seen[c.ID] = struct{}{}
			c.PutLabel("source", core.Label{Value: name, Source: "matcher"})
			out = append(out, c)
			if m.limit > 0 && len(out) >= m.limit {
				return out
			}
		}
	}
	return out
}

// buildQuery 把管道状态折算成存储检索条件。
func (m *Matcher) buildQuery(state *core.State) core.ListingQuery {
	q := core.ListingQuery{
		Query:    state.EffectiveQuery(),
		Category: state.Request.Category,
		Location: state.Request.Location,
		PriceMin: state.Request.PriceMin,
		PriceMax: state.Request.PriceMax,
		Limit:    m.limit,
	}
	if state.Query != nil && len(state.Query.Keywords) > 0 {
		q.Keywords = state.Query.Keywords
	} else {
		q.Keywords = rewrite.ExtractKeywords(q.Query)
	}
	return q
}
