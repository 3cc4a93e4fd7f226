package classify

import (
	"strings"

	"github.com/reco-labs/reco/core"
)

// cue 是查询里的线索词对各轴的偏移量。
type cue struct {
	term  string
	delta core.AxisVector
}

// 线索词表：从二手交易常见表达推出轴偏移，覆盖不了信号源的精度，
// 只作为冷启动兜底。命中即叠加，最终裁剪到合法区间。
var queryCues = []cue{
	// 信任安全
	{"안전결제", core.AxisVector{TrustSafety: 30}},
	{"안전거래", core.AxisVector{TrustSafety: 30}},
	{"신뢰", core.AxisVector{TrustSafety: 25}},

	// 品质成色
	{"새상품", core.AxisVector{QualityCondition: 30}},
	{"미개봉", core.AxisVector{QualityCondition: 30}},
	{"상태좋은", core.AxisVector{QualityCondition: 25}},
	{"풀박스", core.AxisVector{QualityCondition: 20}},

	// 远程偏好（택배 vs 직거래）
	{"택배", core.AxisVector{RemotePreference: 25}},
	{"배송", core.AxisVector{RemotePreference: 20}},
	{"직거래", core.AxisVector{RemotePreference: -30}},
	{"직접", core.AxisVector{RemotePreference: -20}},

	// 活跃响应
	{"빠른", core.AxisVector{ActivityResponsiveness: 25}},
	{"당일", core.AxisVector{ActivityResponsiveness: 25}},
	{"바로", core.AxisVector{ActivityResponsiveness: 20}},

	// 价格弹性
	{"네고", core.AxisVector{PriceFlexibility: 30}},
	{"할인", core.AxisVector{PriceFlexibility: 25}},
	{"급처", core.AxisVector{PriceFlexibility: 25}},
	{"네고사절", core.AxisVector{PriceFlexibility: -40}},
	{"정가", core.AxisVector{PriceFlexibility: -25}},
}

// vectorFromQuery 从查询文本推断用户轴向量：中性基线 + 线索词偏移。
// 同一查询永远得到同一向量（表驱动、按表序叠加）。
func vectorFromQuery(query string) core.AxisVector {
	lower := strings.ToLower(query)
	v := core.NeutralVector()
	for _, c := range queryCues {
		if !strings.Contains(lower, c.term) {
			continue
		}
		v.TrustSafety += c.delta.TrustSafety
		v.QualityCondition += c.delta.QualityCondition
		v.RemotePreference += c.delta.RemotePreference
		v.ActivityResponsiveness += c.delta.ActivityResponsiveness
		v.PriceFlexibility += c.delta.PriceFlexibility
	}
	return v.Clamp()
}
