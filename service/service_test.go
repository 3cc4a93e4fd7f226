package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
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

func newTestService(t *testing.T, ls core.ListingStore) *Service {
	t.Helper()
	catalog := persona.Default()
	graph := flow.MustNewGraph(
		classify.NewStage(classify.NewVectorClassifier(catalog)),
		rewrite.NewStage(rewrite.NewPersonaRewriter(catalog)),
		match.NewStage(match.NewMatcher([]match.Source{match.NewStoreSource(ls)})),
		rank.NewStage(rank.NewPersonaRanker(catalog)),
	)
	return New(graph, catalog)
}

func seededStore() *store.MemoryStore {
	m := store.NewMemoryStore()
	c := core.NewCandidate("p1")
	c.Title = "iPhone 14 Pro 256GB"
	c.Price = 1200000
	c.Category = "smartphone"
	c.Location = "서울 강남구"
	c.Condition = "used"
	c.Seller = &core.Seller{ID: "s1", Name: "판매자A", Axes: core.NeutralVector(), AvgRating: 4.5, TotalSales: 50, ResponseTimeHours: 2}
	m.AddListing(c)
	return m
}

// brokenStore 模拟商品存储故障。
type brokenStore struct{}

func (brokenStore) Name() string { return "broken" }
func (brokenStore) FindCandidates(context.Context, core.ListingQuery) ([]*core.Candidate, error) {
	return nil, errors.New("connection reset")
}
func (brokenStore) Close() error { return nil }

func TestServiceRecommend(t *testing.T) {
	svc := newTestService(t, seededStore())

	out, err := svc.Recommend(context.Background(), core.Request{Query: "iPhone 14"})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if out.Status != StatusRanked {
		t.Errorf("Status = %s, want ranked", out.Status)
	}
	if out.SessionID == "" {
		t.Error("missing session id")
	}
	if out.Result.Len() != 1 || out.Result.Items[0].Rank != 1 {
		t.Errorf("Result = %+v", out.Result)
	}
}

func TestServiceRecommendInvalidRequest(t *testing.T) {
	svc := newTestService(t, seededStore())

	_, err := svc.Recommend(context.Background(), core.Request{
		Query: "iPhone", PriceMin: f64(100), PriceMax: f64(50),
	})
	if !core.IsInvalidInput(err) {
		t.Errorf("error = %v, want InvalidInputError", err)
	}
}

func TestServiceRecommendEmptyOutcome(t *testing.T) {
	svc := newTestService(t, seededStore())

	out, err := svc.Recommend(context.Background(), core.Request{})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if out.Status != StatusEmpty {
		t.Errorf("Status = %s, want empty", out.Status)
	}
}

func TestServiceRecommendPipelineFailure(t *testing.T) {
	svc := newTestService(t, brokenStore{})

	_, err := svc.Recommend(context.Background(), core.Request{Query: "iPhone"})
	if !core.IsMatch(err) {
		t.Errorf("error = %v, want MatchError", err)
	}
}

func TestServiceListPersonas(t *testing.T) {
	svc := newTestService(t, seededStore())

	if got := svc.ListPersonas(); len(got) != 10 {
		t.Errorf("got %d personas, want 10", len(got))
	}
	if _, err := svc.Persona("trust_safety_pro"); err != nil {
		t.Errorf("Persona() error: %v", err)
	}
	if _, err := svc.Persona("nope"); !core.IsNotFound(err) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}

func TestHandlerRecommend(t *testing.T) {
	h := NewHandler(newTestService(t, seededStore()), nil)

	body, _ := json.Marshal(map[string]any{
		"search_query": "iPhone 14",
		"category":     "smartphone",
	})
	req := httptest.NewRequest(http.MethodPost, "/recommend", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp recommendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != StatusRanked || len(resp.Items) != 1 {
		t.Errorf("response = %+v", resp)
	}
}

func TestHandlerRecommendErrors(t *testing.T) {
	tests := []struct {
		name       string
		svc        *Service
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed body",
			svc:        newTestService(t, seededStore()),
			body:       "{not json",
			wantStatus: http.StatusBadRequest,
			wantCode:   core.CodeInvalidInput,
		},
		{
			name:       "invalid price range",
			svc:        newTestService(t, seededStore()),
			body:       `{"search_query":"iphone","price_min":100,"price_max":50}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   core.CodeInvalidInput,
		},
		{
			name:       "store failure",
			svc:        newTestService(t, brokenStore{}),
			body:       `{"search_query":"iphone"}`,
			wantStatus: http.StatusBadGateway,
			wantCode:   core.CodeMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.svc, nil)
			req := httptest.NewRequest(http.MethodPost, "/recommend", bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestHandlerPersonas(t *testing.T) {
	h := NewHandler(newTestService(t, seededStore()), nil)

	req := httptest.NewRequest(http.MethodGet, "/personas", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Personas []persona.Persona `json:"personas"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Personas) != 10 {
		t.Errorf("got %d personas, want 10", len(resp.Personas))
	}
}
