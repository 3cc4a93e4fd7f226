package core

import "strings"

// Request 是一次推荐调用的输入，创建后不再修改。
// 价格上下限为可选约束，二者同时存在时要求 PriceMin <= PriceMax。
type Request struct {
	Query    string   `json:"search_query"`
	PriceMin *float64 `json:"price_min,omitempty"`
	PriceMax *float64 `json:"price_max,omitempty"`
	Category string   `json:"category,omitempty"`
	Location string   `json:"location,omitempty"`
	UserID   string   `json:"user_id,omitempty"`
}

// Validate 校验请求自身的一致性（价格区间等），不校验业务可用性。
func (r Request) Validate() error {
	if r.PriceMin != nil && *r.PriceMin < 0 {
		return NewInvalidInputError("request", "price_min must be >= 0")
	}
	if r.PriceMax != nil && *r.PriceMax < 0 {
		return NewInvalidInputError("request", "price_max must be >= 0")
	}
	if r.PriceMin != nil && r.PriceMax != nil && *r.PriceMin > *r.PriceMax {
		return NewInvalidInputError("request", "price_min must be <= price_max")
	}
	return nil
}

// HasQuery 判断是否存在可用的原始检索词（去除空白后非空）。
func (r Request) HasQuery() bool {
	return strings.TrimSpace(r.Query) != ""
}

// HasPriceRange 判断是否存在任一价格约束。
func (r Request) HasPriceRange() bool {
	return r.PriceMin != nil || r.PriceMax != nil
}

// InPriceRange 判断价格是否满足请求的价格约束（边界值包含在内）。
func (r Request) InPriceRange(price float64) bool {
	if r.PriceMin != nil && price < *r.PriceMin {
		return false
	}
	if r.PriceMax != nil && price > *r.PriceMax {
		return false
	}
	return true
}
