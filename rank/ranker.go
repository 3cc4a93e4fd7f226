// Package rank 实现排序环节：对候选做 persona 感知的融合打分，
// 产出带连续名次的最终结果。
//
// 打分是 (候选, 匹配列表) 的全函数且确定：同样的输入永远得到
// 同样的顺序；同分时保持候选的进入顺序（稳定排序）。
package rank

import (
	"context"
	"math"
	"sort"

	"github.com/reco-labs/reco/core"
	"github.com/reco-labs/reco/persona"
)

// Weights 是四个分数族的融合权重。
type Weights struct {
	Seller    float64 `yaml:"seller" json:"seller"`       // 卖家信誉
	Feature   float64 `yaml:"feature" json:"feature"`     // 商品特征（浏览/点赞/成色）
	Persona   float64 `yaml:"persona" json:"persona"`     // persona 贴合度
	Relevance float64 `yaml:"relevance" json:"relevance"` // 检索相关性
}

// DefaultWeights 返回默认融合权重。
func DefaultWeights() Weights {
	return Weights{Seller: 0.3, Feature: 0.3, Persona: 0.3, Relevance: 0.1}
}

// Ranker 是排序环节的能力接口。
type Ranker interface {
	Name() string
	Rank(ctx context.Context, candidates []*core.Candidate, matches []core.PersonaMatch) (*core.RankedResult, error)
}

// PersonaRanker 是融合排序器。每个候选得到四个 [0,1] 分数：
//
//   - 卖家信誉：评分/累计销量/响应时长的加权和
//   - 商品特征：浏览量、点赞量（批内归一）与成色分
//   - persona 贴合度：卖家轴向量与匹配 persona 原型的亲和度，
//     按匹配置信度加权，再乘置信度系数 0.5+0.5c；无匹配时取中性 0.5
//   - 检索相关性：存储返回的相关性信号（批内归一）
//
// 合法输入永不失败；空候选集产出空结果。
type PersonaRanker struct {
	catalog     *persona.Catalog
	axisWeights core.AxisWeights
	weights     Weights
}

// Option 配置 PersonaRanker。
type Option func(*PersonaRanker)

// WithWeights 覆盖融合权重。
func WithWeights(w Weights) Option {
	return func(r *PersonaRanker) { r.weights = w }
}

// WithAxisWeights 覆盖贴合度计算的轴权重。
func WithAxisWeights(w core.AxisWeights) Option {
	return func(r *PersonaRanker) { r.axisWeights = w }
}

// NewPersonaRanker 创建排序器。
func NewPersonaRanker(catalog *persona.Catalog, opts ...Option) *PersonaRanker {
	r := &PersonaRanker{
		catalog:     catalog,
		axisWeights: persona.DefaultMatchWeights(),
		weights:     DefaultWeights(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *PersonaRanker) Name() string { return "persona_ranker" }

// Rank 打分并排序。输出条数等于输入条数，名次为连续的 1..N。
func (r *PersonaRanker) Rank(_ context.Context, candidates []*core.Candidate, matches []core.PersonaMatch) (*core.RankedResult, error) {
	result := &core.RankedResult{
		Criteria: []string{"seller_reputation", "listing_features", "persona_affinity", "query_relevance"},
	}
	if len(candidates) == 0 {
		return result, nil
	}

	views := newNormalizer(candidates, func(c *core.Candidate) float64 { return float64(c.ViewCount) })
	likes := newNormalizer(candidates, func(c *core.Candidate) float64 { return float64(c.LikeCount) })
	rel := newNormalizer(candidates, func(c *core.Candidate) float64 { return c.Relevance })

	items := make([]core.RankedItem, 0, len(candidates))
	for _, c := range candidates {
		feature := 0.4*views.norm(float64(c.ViewCount)) +
			0.3*likes.norm(float64(c.LikeCount)) +
			0.3*conditionScore(c.Condition)
		score := r.weights.Seller*sellerScore(c.Seller) +
			r.weights.Feature*feature +
			r.weights.Persona*r.personaFit(c, matches) +
			r.weights.Relevance*rel.norm(c.Relevance)
		items = append(items, core.RankedItem{Candidate: c, Score: score})
	}

	// 稳定排序：同分候选保持进入顺序
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	for i := range items {
		items[i].Rank = i + 1
	}
	result.Items = items
	return result, nil
}

// personaFit 计算候选与匹配 persona 的贴合度。
// 卖家缺失时用中性轴向量代替；匹配引用了目录外的 persona 时跳过该项。
func (r *PersonaRanker) personaFit(c *core.Candidate, matches []core.PersonaMatch) float64 {
	if len(matches) == 0 {
		return 0.5
	}

	axes := core.NeutralVector()
	if c.Seller != nil {
		axes = c.Seller.Axes
	}

	totalConf := 0.0
	fit := 0.0
	for _, m := range matches {
		p, err := r.catalog.Get(m.PersonaID)
		if err != nil {
			continue
		}
		fit += m.Confidence * core.Affinity(p.Axes, axes, r.axisWeights)
		totalConf += m.Confidence
	}
	if totalConf <= 0 {
		return 0.5
	}

	// 置信度系数：分类越有把握，persona 信号越敢用
	factor := 0.5 + 0.5*matches[0].Confidence
	return factor * (fit / totalConf)
}

// sellerScore 计算卖家信誉分 [0,1]。
func sellerScore(s *core.Seller) float64 {
	if s == nil {
		return 0.5
	}
	rating := 0.5 * (s.AvgRating / 5)
	sales := 0.3 * math.Min(float64(s.TotalSales)/1000, 1)
	response := 0.2 * math.Max(0, 1-s.ResponseTimeHours/24)
	return rating + sales + response
}

// 成色分值表。
var conditionScores = map[string]float64{
	"new":      1.0,
	"like_new": 0.8,
	"used":     0.6,
	"worn":     0.4,
}

func conditionScore(condition string) float64 {
	if s, ok := conditionScores[condition]; ok {
		return s
	}
	return 0.6
}

// normalizer 做批内 min-max 归一；全员同值时取 0.5。
type normalizer struct {
	min, max float64
}

func newNormalizer(candidates []*core.Candidate, value func(*core.Candidate) float64) normalizer {
	n := normalizer{min: math.Inf(1), max: math.Inf(-1)}
	for _, c := range candidates {
		v := value(c)
		n.min = math.Min(n.min, v)
		n.max = math.Max(n.max, v)
	}
	return n
}

func (n normalizer) norm(v float64) float64 {
	if n.max <= n.min {
		return 0.5
	}
	return (v - n.min) / (n.max - n.min)
}

var _ Ranker = (*PersonaRanker)(nil)
