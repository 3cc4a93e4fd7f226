// Package dsl 提供候选规则表达式求值，基于 CEL (Common Expression Language)。
//
// 运营侧可以用表达式对候选做额外过滤，例如：
//   - `candidate.price <= 500000.0`
//   - `candidate.condition == "new" && candidate.relevance > 0.3`
//   - `label.source != null`（检查标记存在性）
//   - `request.category == "" || candidate.category == request.category`
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/reco-labs/reco/core"
)

var (
	// celEnv 是全局 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

func getEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("candidate", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("request", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Rule 是一条已编译的候选规则。编译一次，请求期重复求值。
type Rule struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式。表达式为空时返回恒真规则。
func Compile(expr string) (*Rule, error) {
	if expr == "" {
		return &Rule{expr: expr}, nil
	}

	env, err := getEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}

	return &Rule{expr: expr, prg: prg}, nil
}

// Expr 返回规则的原始表达式。
func (r *Rule) Expr() string { return r.expr }

// Eval 对候选求值，返回布尔结果。
// 表达式访问不存在的 key 会报错；用 `label.key != null` 检查存在性。
func (r *Rule) Eval(req core.Request, c *core.Candidate) (bool, error) {
	if r.prg == nil {
		return true, nil
	}

	out, _, err := r.prg.Eval(buildInput(req, c))
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", r.expr, err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression %q must return boolean, got %T", r.expr, out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 输入。价格约束缺省时以 -1 表示。
func buildInput(req core.Request, c *core.Candidate) map[string]any {
	labels := make(map[string]any, len(c.Labels))
	for k, v := range c.Labels {
		labels[k] = v.Value
	}

	candidate := map[string]any{
		"id":         c.ID,
		"title":      c.Title,
		"price":      c.Price,
		"category":   c.Category,
		"condition":  c.Condition,
		"location":   c.Location,
		"relevance":  c.Relevance,
		"view_count": c.ViewCount,
		"like_count": c.LikeCount,
	}
	if c.Seller != nil {
		candidate["seller"] = map[string]any{
			"id":                  c.Seller.ID,
			"name":                c.Seller.Name,
			"total_sales":         c.Seller.TotalSales,
			"avg_rating":          c.Seller.AvgRating,
			"response_time_hours": c.Seller.ResponseTimeHours,
		}
	}

	priceMin, priceMax := -1.0, -1.0
	if req.PriceMin != nil {
		priceMin = *req.PriceMin
	}
	if req.PriceMax != nil {
		priceMax = *req.PriceMax
	}

	return map[string]any{
		"candidate": candidate,
		"label":     labels,
		"request": map[string]any{
			"query":     req.Query,
			"category":  req.Category,
			"location":  req.Location,
			"user_id":   req.UserID,
			"price_min": priceMin,
			"price_max": priceMax,
		},
	}
}
