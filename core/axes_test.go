package core

import (
	"math"
	"testing"
)

func TestAffinity(t *testing.T) {
	w := AxisWeights{
		TrustSafety:            0.24,
		QualityCondition:       0.18,
		RemotePreference:       0.18,
		ActivityResponsiveness: 0.22,
		PriceFlexibility:       0.18,
	}

	tests := []struct {
		name string
		a, b AxisVector
		want float64
	}{
		{
			name: "identical vectors",
			a:    NeutralVector(),
			b:    NeutralVector(),
			want: 1.0,
		},
		{
			name: "opposite extremes",
			a:    AxisVector{},
			b:    AxisVector{TrustSafety: 100, QualityCondition: 100, RemotePreference: 100, ActivityResponsiveness: 100, PriceFlexibility: 100},
			want: 0.0,
		},
		{
			name: "half distance on every axis",
			a:    NeutralVector(),
			b:    AxisVector{TrustSafety: 100, QualityCondition: 100, RemotePreference: 100, ActivityResponsiveness: 100, PriceFlexibility: 100},
			want: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Affinity(tt.a, tt.b, w)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Affinity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeightedDistance(t *testing.T) {
	w := AxisWeights{TrustSafety: 1, QualityCondition: 1, RemotePreference: 1, ActivityResponsiveness: 1, PriceFlexibility: 1}

	a := AxisVector{}
	b := AxisVector{TrustSafety: 100, QualityCondition: 100, RemotePreference: 100, ActivityResponsiveness: 100, PriceFlexibility: 100}

	got := WeightedDistance(a, b, w)
	want := MaxWeightedDistance(w)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("WeightedDistance() = %v, want max %v", got, want)
	}

	if d := WeightedDistance(a, a, w); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}
}

func TestAxisVectorInRange(t *testing.T) {
	tests := []struct {
		name string
		v    AxisVector
		want bool
	}{
		{"neutral", NeutralVector(), true},
		{"boundary low", AxisVector{}, true},
		{"boundary high", AxisVector{TrustSafety: 100}, true},
		{"negative axis", AxisVector{TrustSafety: -1}, false},
		{"above range", AxisVector{PriceFlexibility: 100.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.InRange(); got != tt.want {
				t.Errorf("InRange() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	v := AxisVector{TrustSafety: -20, QualityCondition: 150, RemotePreference: 50}
	got := v.Clamp()
	if got.TrustSafety != 0 || got.QualityCondition != 100 || got.RemotePreference != 50 {
		t.Errorf("Clamp() = %+v", got)
	}
}
