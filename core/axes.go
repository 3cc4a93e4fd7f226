package core

import "math"

// 五个固定的画像轴，顺序即定义顺序，贯穿目录/分类/排序。
const (
	AxisTrustSafety            = "trust_safety"
	AxisQualityCondition       = "quality_condition"
	AxisRemotePreference       = "remote_preference"
	AxisActivityResponsiveness = "activity_responsiveness"
	AxisPriceFlexibility       = "price_flexibility"
)

// AxisMin/AxisMax 是轴分值的合法区间。
const (
	AxisMin = 0.0
	AxisMax = 100.0
)

// AxisNames 返回固定顺序的轴名列表。
func AxisNames() [5]string {
	return [5]string{
		AxisTrustSafety,
		AxisQualityCondition,
		AxisRemotePreference,
		AxisActivityResponsiveness,
		AxisPriceFlexibility,
	}
}

// AxisVector 是 5 轴画像向量（0-100 分值）。
// 用户侧、卖家侧、Persona 原型共用同一结构。
type AxisVector struct {
	TrustSafety            float64 `yaml:"trust_safety" json:"trust_safety"`
	QualityCondition       float64 `yaml:"quality_condition" json:"quality_condition"`
	RemotePreference       float64 `yaml:"remote_preference" json:"remote_preference"`
	ActivityResponsiveness float64 `yaml:"activity_responsiveness" json:"activity_responsiveness"`
	PriceFlexibility       float64 `yaml:"price_flexibility" json:"price_flexibility"`
}

// NeutralVector 返回全轴 50 分的中性向量（无任何信号时的基线）。
func NeutralVector() AxisVector {
	return AxisVector{
		TrustSafety:            50,
		QualityCondition:       50,
		RemotePreference:       50,
		ActivityResponsiveness: 50,
		PriceFlexibility:       50,
	}
}

// Values 按固定轴顺序返回分值数组。
func (v AxisVector) Values() [5]float64 {
	return [5]float64{
		v.TrustSafety,
		v.QualityCondition,
		v.RemotePreference,
		v.ActivityResponsiveness,
		v.PriceFlexibility,
	}
}

// InRange 判断所有轴分值是否落在 [AxisMin, AxisMax]。
func (v AxisVector) InRange() bool {
	for _, val := range v.Values() {
		if val < AxisMin || val > AxisMax {
			return false
		}
	}
	return true
}

// Clamp 将所有轴分值裁剪到合法区间。
func (v AxisVector) Clamp() AxisVector {
	vals := v.Values()
	for i := range vals {
		vals[i] = math.Max(AxisMin, math.Min(AxisMax, vals[i]))
	}
	return AxisVector{
		TrustSafety:            vals[0],
		QualityCondition:       vals[1],
		RemotePreference:       vals[2],
		ActivityResponsiveness: vals[3],
		PriceFlexibility:       vals[4],
	}
}

// AxisWeights 是轴加权系数，用于距离/亲和度计算。
type AxisWeights struct {
	TrustSafety            float64 `yaml:"trust_safety" json:"trust_safety"`
	QualityCondition       float64 `yaml:"quality_condition" json:"quality_condition"`
	RemotePreference       float64 `yaml:"remote_preference" json:"remote_preference"`
	ActivityResponsiveness float64 `yaml:"activity_responsiveness" json:"activity_responsiveness"`
	PriceFlexibility       float64 `yaml:"price_flexibility" json:"price_flexibility"`
}

// Values 按固定轴顺序返回权重数组。
func (w AxisWeights) Values() [5]float64 {
	return [5]float64{
		w.TrustSafety,
		w.QualityCondition,
		w.RemotePreference,
		w.ActivityResponsiveness,
		w.PriceFlexibility,
	}
}

// Sum 返回权重总和。
func (w AxisWeights) Sum() float64 {
	sum := 0.0
	for _, val := range w.Values() {
		sum += val
	}
	return sum
}

// WeightedDistance 计算两个向量的加权欧氏距离。
// 权重全为 0 时退化为普通欧氏距离。
func WeightedDistance(a, b AxisVector, w AxisWeights) float64 {
	av, bv, wv := a.Values(), b.Values(), w.Values()
	if w.Sum() <= 0 {
		wv = [5]float64{1, 1, 1, 1, 1}
	}
	sum := 0.0
	for i := range av {
		d := av[i] - bv[i]
		sum += wv[i] * d * d
	}
	return math.Sqrt(sum)
}

// MaxWeightedDistance 返回给定权重下的距离上界（每轴相差满量程）。
func MaxWeightedDistance(w AxisWeights) float64 {
	wv := w.Values()
	if w.Sum() <= 0 {
		wv = [5]float64{1, 1, 1, 1, 1}
	}
	sum := 0.0
	span := AxisMax - AxisMin
	for i := range wv {
		sum += wv[i] * span * span
	}
	return math.Sqrt(sum)
}

// Affinity 计算两个向量的加权亲和度，范围 [0,1]。
// 每轴贡献 w_k * (1 - |a_k - b_k| / 100)，再按权重和归一。
func Affinity(a, b AxisVector, w AxisWeights) float64 {
	av, bv, wv := a.Values(), b.Values(), w.Values()
	totalWeight := 0.0
	score := 0.0
	span := AxisMax - AxisMin
	for i := range av {
		if wv[i] <= 0 {
			continue
		}
		diff := math.Abs(av[i] - bv[i])
		score += wv[i] * (1 - diff/span)
		totalWeight += wv[i]
	}
	if totalWeight <= 0 {
		return 0
	}
	return score / totalWeight
}
