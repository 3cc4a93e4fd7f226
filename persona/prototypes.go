package persona

import "github.com/reco-labs/reco/core"

// 内置的 10 个 Persona 原型。轴分值来自二手交易画像手册；
// Hints 是各画像在查询改写时关注的扩展词。
var prototypes = []Persona{
	{
		ID:    "local_offline",
		Label: "동네직거래 오프라인형",
		Axes: core.AxisVector{
			TrustSafety:            25,
			QualityCondition:       0,
			RemotePreference:       0,
			ActivityResponsiveness: 25,
			PriceFlexibility:       50,
		},
		Hints: []string{"직거래", "동네"},
	},
	{
		ID:    "fast_shipping_online",
		Label: "빠른배송 온라인형",
		Axes: core.AxisVector{
			TrustSafety:            75,
			QualityCondition:       25,
			RemotePreference:       75,
			ActivityResponsiveness: 50,
			PriceFlexibility:       25,
		},
		Hints: []string{"빠른배송", "택배"},
	},
	{
		ID:    "hybrid_trade",
		Label: "하이브리드 거래형",
		Axes: core.AxisVector{
			TrustSafety:            50,
			QualityCondition:       50,
			RemotePreference:       50,
			ActivityResponsiveness: 50,
			PriceFlexibility:       50,
		},
		Hints: []string{"온오프라인"},
	},
	{
		ID:    "trust_safety_pro",
		Label: "신뢰·안전 전문가형",
		Axes: core.AxisVector{
			TrustSafety:            100,
			QualityCondition:       50,
			RemotePreference:       50,
			ActivityResponsiveness: 75,
			PriceFlexibility:       25,
		},
		Hints: []string{"안전결제", "신뢰도높은"},
	},
	{
		ID:    "high_quality_new",
		Label: "상태 최상·새상품형",
		Axes: core.AxisVector{
			TrustSafety:            50,
			QualityCondition:       100,
			RemotePreference:       25,
			ActivityResponsiveness: 50,
			PriceFlexibility:       25,
		},
		Hints: []string{"새상품", "미개봉", "상태좋은"},
	},
	{
		ID:    "niche_specialist",
		Label: "니치 전문상인형",
		Axes: core.AxisVector{
			TrustSafety:            50,
			QualityCondition:       75,
			RemotePreference:       50,
			ActivityResponsiveness: 50,
			PriceFlexibility:       25,
		},
		Hints: []string{"전문가", "전문상품"},
	},
	{
		ID:    "power_seller",
		Label: "활동 파워셀러형",
		Axes: core.AxisVector{
			TrustSafety:            50,
			QualityCondition:       50,
			RemotePreference:       50,
			ActivityResponsiveness: 100,
			PriceFlexibility:       25,
		},
		Hints: []string{"활발한", "판매자"},
	},
	{
		ID:    "negotiation_friendly",
		Label: "가격흥정 친화형",
		Axes: core.AxisVector{
			TrustSafety:            25,
			QualityCondition:       25,
			RemotePreference:       25,
			ActivityResponsiveness: 25,
			PriceFlexibility:       100,
		},
		Hints: []string{"흥정", "협상가능"},
	},
	{
		ID:    "responsive_kind",
		Label: "응답 신속·친절형",
		Axes: core.AxisVector{
			TrustSafety:            75,
			QualityCondition:       50,
			RemotePreference:       50,
			ActivityResponsiveness: 100,
			PriceFlexibility:       25,
		},
		Hints: []string{"친절", "응답빠른"},
	},
	{
		ID:    "balanced_low_activity",
		Label: "균형·저활동·주의형",
		Axes: core.AxisVector{
			TrustSafety:            50,
			QualityCondition:       50,
			RemotePreference:       50,
			ActivityResponsiveness: 25,
			PriceFlexibility:       50,
		},
		Hints: []string{"신중한", "판매자"},
	},
}

// Default 返回内置原型目录。
// 内置定义保证合法，构建失败说明原型表被改坏，直接 panic。
func Default() *Catalog {
	c, err := New(prototypes)
	if err != nil {
		panic("persona: built-in prototypes invalid: " + err.Error())
	}
	return c
}
