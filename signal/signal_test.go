package signal

import (
	"context"
	"errors"
	"testing"

	"github.com/reco-labs/reco/core"
)

func TestMemorySource(t *testing.T) {
	src := NewMemorySource(map[string]core.AxisVector{
		"user-1": {TrustSafety: 80, QualityCondition: 90, RemotePreference: 70, ActivityResponsiveness: 60, PriceFlexibility: 20},
	})

	v, err := src.UserSignal(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("UserSignal() error: %v", err)
	}
	if v.QualityCondition != 90 {
		t.Errorf("QualityCondition = %v, want 90", v.QualityCondition)
	}

	_, err = src.UserSignal(context.Background(), "unknown-user")
	if !errors.Is(err, core.ErrSignalNotFound) {
		t.Errorf("UserSignal(unknown) error = %v, want ErrSignalNotFound", err)
	}
}

func TestFeastSourceFeatureRefs(t *testing.T) {
	src := &FeastSource{Project: "reco"}
	refs := src.featureRefs()

	want := [5]string{
		"user_axes:trust_safety",
		"user_axes:quality_condition",
		"user_axes:remote_preference",
		"user_axes:activity_responsiveness",
		"user_axes:price_flexibility",
	}
	if refs != want {
		t.Errorf("featureRefs() = %v, want %v", refs, want)
	}

	src.FeatureView = "buyer_profile"
	if got := src.featureRefs()[0]; got != "buyer_profile:trust_safety" {
		t.Errorf("featureRefs()[0] = %v", got)
	}
}
