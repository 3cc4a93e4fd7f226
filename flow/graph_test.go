package flow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/reco-labs/reco/classify"
	"github.com/reco-labs/reco/core"
	"github.com/reco-labs/reco/flow"
	"github.com/reco-labs/reco/match"
	"github.com/reco-labs/reco/persona"
	"github.com/reco-labs/reco/rank"
	"github.com/reco-labs/reco/rewrite"
	"github.com/reco-labs/reco/store"
)

func f64(v float64) *float64 { return &v }

func seededStore() *store.MemoryStore {
	m := store.NewMemoryStore()
	seller := &core.Seller{
		ID: "s1", Name: "판매자A",
		Axes:       core.NeutralVector(),
		TotalSales: 200, AvgRating: 4.6, ResponseTimeHours: 3,
	}
	for _, l := range []struct {
		id, title, category, location string
		price                         float64
	}{
		{"p1", "iPhone 14 Pro 256GB", "smartphone", "서울 강남구", 1200000},
		{"p2", "iPhone 14 128GB", "smartphone", "서울 서초구", 1000000},
		{"p3", "iPhone 14 Pro Max", "smartphone", "서울 송파구", 1700000}, // 超出价格上限
		{"p4", "iPhone 14", "smartphone", "부산 해운대구", 1100000},        // 地域不符
	} {
		c := core.NewCandidate(l.id)
		c.Title = l.title
		c.Price = l.price
		c.Category = l.category
		c.Location = l.location
		c.Condition = "used"
		c.Seller = seller
		m.AddListing(c)
	}
	return m
}

func newGraph(t *testing.T, st core.ListingStore, classifyOpts ...classify.Option) *flow.Graph {
	t.Helper()
	catalog := persona.Default()
	return flow.MustNewGraph(
		classify.NewStage(classify.NewVectorClassifier(catalog, classifyOpts...)),
		rewrite.NewStage(rewrite.NewPersonaRewriter(catalog)),
		match.NewStage(match.NewMatcher([]match.Source{match.NewStoreSource(st)})),
		rank.NewStage(rank.NewPersonaRanker(catalog)),
	)
}

func TestGraphFullPath(t *testing.T) {
	g := newGraph(t, seededStore())
	req := core.Request{
		Query:    "iPhone 14",
		PriceMin: f64(1000000),
		PriceMax: f64(1500000),
		Category: "smartphone",
		Location: "서울",
	}

	st := g.Run(context.Background(), core.NewState(req, "sess-1"))

	if st.Step != core.StepRanked {
		t.Fatalf("Step = %s, want ranked (err: %v)", st.Step, st.Err)
	}
	if st.Route != string(flow.ToQueryRewrite) {
		t.Errorf("Route = %s, want to_query_rewrite", st.Route)
	}
	if st.Query == nil || st.Query.Enhanced == st.Query.Original {
		t.Errorf("query was not rewritten: %+v", st.Query)
	}
	if st.Result.Empty() {
		t.Fatal("expected a non-empty result")
	}
	for i, item := range st.Result.Items {
		if item.Rank != i+1 {
			t.Errorf("item[%d].Rank = %d, want %d", i, item.Rank, i+1)
		}
		c := item.Candidate
		if !req.InPriceRange(c.Price) || c.Category != req.Category {
			t.Errorf("candidate %s violates hard constraints", c.ID)
		}
	}
}

func TestGraphEmptyCategoryIsSuccess(t *testing.T) {
	g := newGraph(t, seededStore())
	req := core.Request{Query: "iPhone 14", Category: "nonexistent-category"}

	st := g.Run(context.Background(), core.NewState(req, "sess-2"))

	if st.Step != core.StepRanked {
		t.Fatalf("Step = %s, want ranked (err: %v)", st.Step, st.Err)
	}
	if !st.Result.Empty() {
		t.Errorf("expected empty result, got %d items", st.Result.Len())
	}
	if st.Err != nil {
		t.Errorf("empty result must not carry an error: %v", st.Err)
	}
}

func TestGraphEmptyInputShortCircuits(t *testing.T) {
	g := newGraph(t, seededStore())

	st := g.Run(context.Background(), core.NewState(core.Request{}, "sess-3"))

	if st.Step != core.StepEmpty {
		t.Fatalf("Step = %s, want empty", st.Step)
	}
	if st.Route != string(flow.ToEmptyResult) {
		t.Errorf("Route = %s, want to_empty_result", st.Route)
	}
	if st.Result == nil || !st.Result.Empty() {
		t.Error("empty terminal state must carry an empty result")
	}
	if len(st.Candidates) != 0 {
		t.Error("matcher must not run on the empty-result path")
	}
}

func TestGraphDirectMatchWhenNoPersona(t *testing.T) {
	// 阈值拉到 1 以上：任何 persona 都过不了，走直接匹配
	g := newGraph(t, seededStore(), classify.WithThreshold(1.01))

	st := g.Run(context.Background(), core.NewState(core.Request{Query: "iPhone 14"}, "sess-4"))

	if st.Route != string(flow.ToDirectMatch) {
		t.Fatalf("Route = %s, want to_direct_match", st.Route)
	}
	if st.Query != nil {
		t.Error("rewriter must be skipped on the direct-match path")
	}
	if st.Step != core.StepRanked || st.Result.Empty() {
		t.Errorf("Step = %s, result len = %d; want ranked non-empty", st.Step, st.Result.Len())
	}
}

// brokenStore 模拟商品存储故障。
type brokenStore struct{}

func (brokenStore) Name() string { return "broken" }
func (brokenStore) FindCandidates(context.Context, core.ListingQuery) ([]*core.Candidate, error) {
	return nil, errors.New("connection reset")
}
func (brokenStore) Close() error { return nil }

func TestGraphStageFailure(t *testing.T) {
	g := newGraph(t, brokenStore{})

	st := g.Run(context.Background(), core.NewState(core.Request{Query: "iPhone 14"}, "sess-5"))

	if st.Step != core.StepFailed {
		t.Fatalf("Step = %s, want failed", st.Step)
	}
	if !core.IsMatch(st.Err) {
		t.Errorf("Err = %v, want MatchError", st.Err)
	}
	se, ok := core.AsStageError(st.Err)
	if !ok || se.Stage == "" {
		t.Errorf("failure must name the originating stage, got %+v", se)
	}
	if st.Result != nil {
		t.Error("failed state must not carry a result")
	}
}

func TestGraphCancellation(t *testing.T) {
	g := newGraph(t, seededStore())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := g.Run(ctx, core.NewState(core.Request{Query: "iPhone 14"}, "sess-6"))

	if st.Step != core.StepFailed {
		t.Fatalf("Step = %s, want failed on canceled context", st.Step)
	}
	if !errors.Is(st.Err, context.Canceled) {
		t.Errorf("Err = %v, want context.Canceled in chain", st.Err)
	}
}

func TestGraphTraceOrder(t *testing.T) {
	g := newGraph(t, seededStore())

	st := g.Run(context.Background(), core.NewState(core.Request{Query: "iPhone 14"}, "sess-7"))

	want := []string{"vector_classifier", "router", "persona_rewriter", "candidate_matcher", "persona_ranker"}
	if len(st.Trace) != len(want) {
		t.Fatalf("Trace = %v, want %v", st.Trace, want)
	}
	for i := range want {
		if st.Trace[i] != want[i] {
			t.Errorf("Trace[%d] = %s, want %s", i, st.Trace[i], want[i])
		}
	}
}
