package store

import (
	"context"
	"errors"
	"testing"

	"github.com/reco-labs/reco/core"
)

func f64(v float64) *float64 { return &v }

func seedListing(id, title string, price float64, category, location string) *core.Candidate {
	c := core.NewCandidate(id)
	c.Title = title
	c.Price = price
	c.Category = category
	c.Location = location
	c.Seller = &core.Seller{ID: "s-" + id, Name: "seller " + id, Axes: core.NeutralVector(), AvgRating: 4.5}
	return c
}

func TestMemoryStoreFindCandidates(t *testing.T) {
	m := NewMemoryStore()
	m.AddListing(seedListing("p1", "iPhone 14 Pro 256GB", 1200000, "smartphone", "서울 강남구"))
	m.AddListing(seedListing("p2", "iPhone 13 mini", 700000, "smartphone", "부산 해운대구"))
	m.AddListing(seedListing("p3", "MacBook Pro 16", 2500000, "laptop", "서울 서초구"))

	tests := []struct {
		name    string
		query   core.ListingQuery
		wantIDs []string
	}{
		{
			name:    "keyword match preserves insertion order",
			query:   core.ListingQuery{Keywords: []string{"iphone"}},
			wantIDs: []string{"p1", "p2"},
		},
		{
			name:    "category constraint",
			query:   core.ListingQuery{Keywords: []string{"iphone"}, Category: "smartphone"},
			wantIDs: []string{"p1", "p2"},
		},
		{
			name:    "price range with boundary",
			query:   core.ListingQuery{Keywords: []string{"iphone"}, PriceMin: f64(700000), PriceMax: f64(1200000)},
			wantIDs: []string{"p1", "p2"},
		},
		{
			name:    "location substring",
			query:   core.ListingQuery{Keywords: []string{"iphone"}, Location: "서울"},
			wantIDs: []string{"p1"},
		},
		{
			name:    "unknown category yields empty",
			query:   core.ListingQuery{Keywords: []string{"iphone"}, Category: "nonexistent-category"},
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.FindCandidates(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("FindCandidates() error: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d candidates, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("candidate[%d] = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	m := NewMemoryStore()
	m.AddListing(seedListing("p1", "iPhone 14", 1200000, "smartphone", "서울"))

	got, err := m.FindCandidates(context.Background(), core.ListingQuery{Keywords: []string{"iphone"}})
	if err != nil {
		t.Fatalf("FindCandidates() error: %v", err)
	}
	got[0].Title = "mutated"

	again, _ := m.FindCandidates(context.Background(), core.ListingQuery{Keywords: []string{"iphone"}})
	if again[0].Title != "iPhone 14" {
		t.Error("store data was mutated through a returned candidate")
	}
}

func TestMemoryStoreKV(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, err := m.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get() = %q, %v", got, err)
	}

	if _, err := m.Get(ctx, "missing"); !errors.Is(err, core.ErrStoreNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrStoreNotFound", err)
	}
}

func TestMemoryStoreZRange(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	m.ZAdd(ctx, "hot", 3, "a")
	m.ZAdd(ctx, "hot", 1, "b")
	m.ZAdd(ctx, "hot", 2, "c")

	got, err := m.ZRange(ctx, "hot", 0, 1)
	if err != nil {
		t.Fatalf("ZRange() error: %v", err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("ZRange() = %v, want [a c]", got)
	}
}

func TestKeywordRelevance(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		keywords []string
		wantRel  float64
		wantOK   bool
	}{
		{"all keywords hit", "iPhone 14 Pro", []string{"iphone", "14"}, 1.0, true},
		{"half keywords hit", "iPhone 13", []string{"iphone", "14"}, 0.5, true},
		{"no keyword hit", "MacBook Pro", []string{"iphone"}, 0, false},
		{"no keywords at all", "anything", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel, ok := keywordRelevance(tt.title, core.ListingQuery{Keywords: tt.keywords})
			if ok != tt.wantOK || rel != tt.wantRel {
				t.Errorf("keywordRelevance() = (%v, %v), want (%v, %v)", rel, ok, tt.wantRel, tt.wantOK)
			}
		})
	}
}
