package dsl

import (
	"testing"

	"github.com/reco-labs/reco/core"
)

func TestRuleEval(t *testing.T) {
	c := core.NewCandidate("prod-1")
	c.Title = "iPhone 14 Pro"
	c.Price = 1200000
	c.Category = "smartphone"
	c.Condition = "new"
	c.Relevance = 0.8
	c.PutLabel("match_source", core.Label{Value: "sqlite", Source: "match"})

	min := 1000000.0
	req := core.Request{Query: "iPhone 14", Category: "smartphone", PriceMin: &min}

	tests := []struct {
		name    string
		expr    string
		want    bool
		wantErr bool
	}{
		{"empty expression is always true", "", true, false},
		{"price comparison", "candidate.price <= 1500000.0", true, false},
		{"condition and relevance", `candidate.condition == "new" && candidate.relevance > 0.5`, true, false},
		{"label access", `label.match_source == "sqlite"`, true, false},
		{"request fields", `request.price_min >= 1000000.0`, true, false},
		{"false result", `candidate.category == "laptop"`, false, false},
		{"non-boolean result", `candidate.price`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.expr, err)
			}
			got, err := rule.Eval(req, c)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Eval() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestCompileInvalidExpression(t *testing.T) {
	if _, err := Compile("candidate.price >="); err == nil {
		t.Fatal("Compile should fail on malformed expression")
	}
}
