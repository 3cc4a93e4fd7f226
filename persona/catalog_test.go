package persona

import (
	"testing"

	"github.com/reco-labs/reco/core"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	if c.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", c.Len())
	}

	p, err := c.Get("trust_safety_pro")
	if err != nil {
		t.Fatalf("Get(trust_safety_pro) error: %v", err)
	}
	if p.Axes.TrustSafety != 100 {
		t.Errorf("trust_safety_pro TrustSafety = %v, want 100", p.Axes.TrustSafety)
	}

	if _, err := c.Get("no_such_persona"); !core.IsNotFound(err) {
		t.Errorf("Get(unknown) error = %v, want NOT_FOUND", err)
	}
}

func TestCatalogAllOrderAndRestart(t *testing.T) {
	c := Default()

	collect := func() []string {
		var ids []string
		for p := range c.All() {
			ids = append(ids, p.ID)
		}
		return ids
	}

	first := collect()
	second := collect()

	if len(first) != c.Len() {
		t.Fatalf("All() yielded %d personas, want %d", len(first), c.Len())
	}
	if first[0] != "local_offline" || first[len(first)-1] != "balanced_low_activity" {
		t.Errorf("All() order broken: %v", first)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("All() not restartable: %v vs %v", first, second)
		}
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		personas []Persona
	}{
		{"empty catalog", nil},
		{"missing id", []Persona{{Label: "x"}}},
		{
			"duplicate id",
			[]Persona{
				{ID: "a", Axes: core.NeutralVector()},
				{ID: "a", Axes: core.NeutralVector()},
			},
		},
		{
			"axis out of range",
			[]Persona{{ID: "a", Axes: core.AxisVector{TrustSafety: 120}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.personas)
			if err == nil {
				t.Fatal("New() should fail")
			}
			if !core.IsCatalogLoad(err) {
				t.Errorf("error = %v, want CATALOG_LOAD", err)
			}
		})
	}
}

func TestLoadYAML(t *testing.T) {
	doc := []byte(`
personas:
  - id: quality_remote_buyer
    label: quality-conscious remote buyer
    axes:
      trust_safety: 70
      quality_condition: 90
      remote_preference: 80
      activity_responsiveness: 60
      price_flexibility: 30
    hints: ["미개봉", "새상품"]
`)

	c, err := Load(doc)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	p, err := c.Get("quality_remote_buyer")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if p.Axes.QualityCondition != 90 {
		t.Errorf("QualityCondition = %v, want 90", p.Axes.QualityCondition)
	}
	if len(p.Hints) != 2 {
		t.Errorf("Hints = %v", p.Hints)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	if _, err := Load([]byte("personas: {not a list")); !core.IsCatalogLoad(err) {
		t.Errorf("error = %v, want CATALOG_LOAD", err)
	}
}
