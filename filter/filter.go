// Package filter 提供候选过滤：硬约束（价格/类目/地域）与运营规则。
// 所有过滤器是 AND 语义——任何一个命中，候选即被剔除，绝不私自放宽。
package filter

import (
	"context"

	"github.com/reco-labs/reco/core"
)

// Filter 判断一个候选是否应该被剔除。
// 返回 true 表示剔除，false 表示保留。
type Filter interface {
	// Name 返回过滤器名称（用于打标/错误归属）
	Name() string

	// ShouldFilter 判断候选是否应被剔除
	ShouldFilter(ctx context.Context, req core.Request, c *core.Candidate) (bool, error)
}

// Apply 依次应用所有过滤器，返回保留的候选（原顺序）。
// 被剔除的候选打上 filtered 标记后丢弃；过滤器出错则中断并上抛。
func Apply(ctx context.Context, req core.Request, filters []Filter, candidates []*core.Candidate) ([]*core.Candidate, error) {
	if len(filters) == 0 || len(candidates) == 0 {
		return candidates, nil
	}

	out := make([]*core.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}

		drop := false
		for _, f := range filters {
			hit, err := f.ShouldFilter(ctx, req, c)
			if err != nil {
				return nil, err
			}
			if hit {
				c.PutLabel("filtered", core.Label{Value: "true", Source: f.Name()})
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, c)
		}
	}
	return out, nil
}

// FromRequest 根据请求中出现的硬约束构建过滤器列表。
func FromRequest(req core.Request) []Filter {
	var filters []Filter
	if req.HasPriceRange() {
		filters = append(filters, &PriceRangeFilter{})
	}
	if req.Category != "" {
		filters = append(filters, &CategoryFilter{})
	}
	if req.Location != "" {
		filters = append(filters, &LocationFilter{})
	}
	return filters
}
