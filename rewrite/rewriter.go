// Package rewrite 实现查询改写环节：用匹配到的 persona 扩充原始查询。
// 改写只扩充语义、不收窄：原始查询始终保留在扩充结果开头。
package rewrite

import (
	"context"
	"fmt"
	"strings"

	"github.com/reco-labs/reco/core"
	"github.com/reco-labs/reco/persona"
)

// BlendMode 决定多个 persona 同时匹配时如何合并扩展词。
type BlendMode string

const (
	// BlendTop1 只取置信度最高的 persona 的扩展词。
	BlendTop1 BlendMode = "top1"
	// BlendWeighted 按置信度降序合并全部匹配 persona 的扩展词。
	BlendWeighted BlendMode = "weighted"
)

// DefaultMaxHints 是附加扩展词数量上限。
const DefaultMaxHints = 4

// Rewriter 是改写环节的能力接口。
type Rewriter interface {
	Name() string
	Rewrite(ctx context.Context, req core.Request, matches []core.PersonaMatch) (*core.SearchQuery, error)
}

// PersonaRewriter 基于目录中 persona 的 Hints 做确定性的查询扩充：
// 同样的 (查询, 匹配列表) 永远产出同样的结果。
type PersonaRewriter struct {
	catalog  *persona.Catalog
	mode     BlendMode
	maxHints int
}

// Option 配置 PersonaRewriter。
type Option func(*PersonaRewriter)

// WithBlendMode 设置扩展词合并模式，默认 BlendTop1。
func WithBlendMode(m BlendMode) Option {
	return func(r *PersonaRewriter) { r.mode = m }
}

// WithMaxHints 设置扩展词数量上限。
func WithMaxHints(n int) Option {
	return func(r *PersonaRewriter) { r.maxHints = n }
}

// NewPersonaRewriter 创建改写器。
func NewPersonaRewriter(catalog *persona.Catalog, opts ...Option) *PersonaRewriter {
	r := &PersonaRewriter{
		catalog:  catalog,
		mode:     BlendTop1,
		maxHints: DefaultMaxHints,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *PersonaRewriter) Name() string { return "persona_rewriter" }

// Rewrite 产出扩充后的查询。匹配列表为空时原样透传。
// 匹配引用了目录里不存在的 persona 属编程错误，报 RewriteError。
func (r *PersonaRewriter) Rewrite(_ context.Context, req core.Request, matches []core.PersonaMatch) (*core.SearchQuery, error) {
	original := strings.TrimSpace(req.Query)
	out := &core.SearchQuery{
		Original: original,
		Enhanced: original,
	}

	hints, err := r.collectHints(matches)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(original)
	appended := 0
	var parts []string
	for _, h := range hints {
		if appended >= r.maxHints {
			break
		}
		if strings.Contains(lower, strings.ToLower(h)) {
			continue // 查询里已有的词不重复附加
		}
		parts = append(parts, h)
		lower += " " + strings.ToLower(h)
		appended++
	}
	if len(parts) > 0 {
		if out.Enhanced != "" {
			out.Enhanced += " "
		}
		out.Enhanced += strings.Join(parts, " ")
	}

	out.Keywords = ExtractKeywords(out.Enhanced)
	return out, nil
}

// collectHints 按合并模式取扩展词，顺序为匹配顺序 × 各 persona 的 Hints 定义顺序。
func (r *PersonaRewriter) collectHints(matches []core.PersonaMatch) ([]string, error) {
	if len(matches) == 0 {
		return nil, nil
	}

	take := matches
	if r.mode != BlendWeighted {
		take = matches[:1]
	}

	seen := make(map[string]struct{})
	var hints []string
	for _, m := range take {
		p, err := r.catalog.Get(m.PersonaID)
		if err != nil {
			return nil, core.NewRewriteError(
				fmt.Sprintf("match references unknown persona %q", m.PersonaID), err)
		}
		for _, h := range p.Hints {
			key := strings.ToLower(h)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			hints = append(hints, h)
		}
	}
	return hints, nil
}

var _ Rewriter = (*PersonaRewriter)(nil)
