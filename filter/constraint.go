package filter

import (
	"context"
	"strings"

	"github.com/reco-labs/reco/core"
)

// PriceRangeFilter 剔除价格落在请求区间之外的候选，边界值保留。
type PriceRangeFilter struct{}

func (f *PriceRangeFilter) Name() string { return "filter.price_range" }

func (f *PriceRangeFilter) ShouldFilter(_ context.Context, req core.Request, c *core.Candidate) (bool, error) {
	return !req.InPriceRange(c.Price), nil
}

// CategoryFilter 剔除类目不等于请求类目的候选（精确匹配）。
type CategoryFilter struct{}

func (f *CategoryFilter) Name() string { return "filter.category" }

func (f *CategoryFilter) ShouldFilter(_ context.Context, req core.Request, c *core.Candidate) (bool, error) {
	if req.Category == "" {
		return false, nil
	}
	return c.Category != req.Category, nil
}

// LocationFilter 剔除地域不包含请求地域的候选（大小写不敏感的子串匹配，
// 与商品存储的 LIKE %location% 语义一致）。
type LocationFilter struct{}

func (f *LocationFilter) Name() string { return "filter.location" }

func (f *LocationFilter) ShouldFilter(_ context.Context, req core.Request, c *core.Candidate) (bool, error) {
	if req.Location == "" {
		return false, nil
	}
	return !strings.Contains(strings.ToLower(c.Location), strings.ToLower(req.Location)), nil
}

var (
	_ Filter = (*PriceRangeFilter)(nil)
	_ Filter = (*CategoryFilter)(nil)
	_ Filter = (*LocationFilter)(nil)
)
