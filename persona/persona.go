// Package persona 定义买卖双方行为画像（Persona）与只读目录（Catalog）。
//
// Persona = 沿 5 个固定轴打分的行为倾向簇。目录在进程启动时加载一次，
// 之后全程只读，可被多个并发请求无锁共享。
package persona

import "github.com/reco-labs/reco/core"

// Persona 是目录中的一条画像定义。
type Persona struct {
	// ID 是稳定标识，如 "trust_safety_pro"
	ID string `yaml:"id" json:"id"`

	// Label 是人类可读名称
	Label string `yaml:"label" json:"label"`

	// Axes 是 5 轴原型向量（0-100）
	Axes core.AxisVector `yaml:"axes" json:"axes"`

	// Hints 是查询改写时附加的扩展词，顺序即拼接顺序
	Hints []string `yaml:"hints,omitempty" json:"hints,omitempty"`
}

// DefaultMatchWeights 是轴匹配权重：分类与排序中衡量向量贴合度时使用。
// 信任安全与活跃响应权重略高。
func DefaultMatchWeights() core.AxisWeights {
	return core.AxisWeights{
		TrustSafety:            0.24,
		QualityCondition:       0.18,
		RemotePreference:       0.18,
		ActivityResponsiveness: 0.22,
		PriceFlexibility:       0.18,
	}
}
