// Package classify 实现分类环节：把请求（和可选的用户信号）
// 映射为若干带置信度的 persona 匹配。
package classify

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/reco-labs/reco/core"
	"github.com/reco-labs/reco/persona"
)

// 默认置信度阈值与最大匹配数。
const (
	DefaultThreshold  = 0.55
	DefaultMaxMatches = 3
)

// Classifier 是分类环节的能力接口：任何打分策略（规则/模型/向量近邻）
// 都可以替换到这个契约后面，不影响编排。
type Classifier interface {
	Name() string
	Classify(ctx context.Context, req core.Request) ([]core.PersonaMatch, error)
}

// VectorClassifier 是向量近邻分类器：把用户表示成 5 轴向量，
// 与目录中每个 persona 原型算加权距离，置信度 = 1 - 距离/距离上界。
//
// 用户向量的来源（按优先级）：
//  1. 信号源（行为画像，如 Feast 在线特征）
//  2. 查询线索推断（从检索词中的提示词推出轴偏移）
//
// 两者都拿不到（空查询且无信号）时返回空匹配列表——“无从分类”
// 是正常结果，由路由短路到空结果终态，不是错误。
// ClassificationError 只在输入本身不合法时出现（信号源给出 NaN 轴值）；
// 信号源故障只降级为“无信号”，不让整条请求失败。
type VectorClassifier struct {
	catalog    *persona.Catalog
	signals    core.SignalSource
	weights    core.AxisWeights
	threshold  float64
	maxMatches int
}

// Option 配置 VectorClassifier。
type Option func(*VectorClassifier)

// WithSignalSource 设置用户信号源（可选）。
func WithSignalSource(s core.SignalSource) Option {
	return func(c *VectorClassifier) { c.signals = s }
}

// WithWeights 覆盖匹配用的轴权重。
func WithWeights(w core.AxisWeights) Option {
	return func(c *VectorClassifier) { c.weights = w }
}

// WithThreshold 覆盖置信度阈值，低于阈值的 persona 不进入匹配列表。
func WithThreshold(t float64) Option {
	return func(c *VectorClassifier) { c.threshold = t }
}

// WithMaxMatches 覆盖最大匹配数。
func WithMaxMatches(n int) Option {
	return func(c *VectorClassifier) { c.maxMatches = n }
}

// NewVectorClassifier 创建分类器。
func NewVectorClassifier(catalog *persona.Catalog, opts ...Option) *VectorClassifier {
	c := &VectorClassifier{
		catalog:    catalog,
		weights:    persona.DefaultMatchWeights(),
		threshold:  DefaultThreshold,
		maxMatches: DefaultMaxMatches,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *VectorClassifier) Name() string { return "vector_classifier" }

// Classify 返回置信度降序的匹配列表，同分保持目录定义顺序。
// 没有任何 persona 过阈值时返回空列表（正常结果，不是错误）。
func (c *VectorClassifier) Classify(ctx context.Context, req core.Request) ([]core.PersonaMatch, error) {
	user, ok, err := c.userVector(ctx, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		// 空查询且无用户信号：无从分类，交给路由短路
		return nil, nil
	}

	maxDist := core.MaxWeightedDistance(c.weights)

	var matches []core.PersonaMatch
	for p := range c.catalog.All() {
		dist := core.WeightedDistance(user, p.Axes, c.weights)
		confidence := 1 - dist/maxDist
		if confidence >= c.threshold {
			matches = append(matches, core.PersonaMatch{
				PersonaID:  p.ID,
				Confidence: confidence,
			})
		}
	}

	// 稳定排序：置信度相同的 persona 保持目录顺序
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	if c.maxMatches > 0 && len(matches) > c.maxMatches {
		matches = matches[:c.maxMatches]
	}
	return matches, nil
}

// userVector 构建用户 5 轴向量。第二个返回值表示是否有任何可用信号。
func (c *VectorClassifier) userVector(ctx context.Context, req core.Request) (core.AxisVector, bool, error) {
	if c.signals != nil && req.UserID != "" {
		v, err := c.signals.UserSignal(ctx, req.UserID)
		switch {
		case err == nil:
			v = v.Clamp()
			if hasNaN(v) {
				return core.AxisVector{}, false, core.NewClassificationError(
					"user signal contains invalid axis values", nil)
			}
			return v, true, nil
		case errors.Is(err, core.ErrSignalNotFound):
			// 没有该用户的画像，继续走查询线索
		default:
			// 信号源故障降级为无信号，分类仍可基于查询进行
		}
	}

	if strings.TrimSpace(req.Query) == "" {
		return core.AxisVector{}, false, nil
	}
	return vectorFromQuery(req.Query), true, nil
}

func hasNaN(v core.AxisVector) bool {
	for _, val := range v.Values() {
		if math.IsNaN(val) {
			return true
		}
	}
	return false
}

var _ Classifier = (*VectorClassifier)(nil)
