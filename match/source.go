// Package match 实现候选匹配环节：从一个或多个候选源取回商品，
// 合并去重后套用全部硬约束过滤。
package match

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/reco-labs/reco/core"
	"github.com/reco-labs/reco/store"
)

// Source 是候选源：按检索条件产出一批候选。
// 返回顺序即检索顺序，匹配环节依赖它做确定性合并。
type Source interface {
	Name() string
	Retrieve(ctx context.Context, q core.ListingQuery) ([]*core.Candidate, error)
}

// StoreSource 包装商品存储为候选源。
type StoreSource struct {
	store core.ListingStore
}

// NewStoreSource 创建存储候选源。
func NewStoreSource(s core.ListingStore) *StoreSource {
	return &StoreSource{store: s}
}

func (s *StoreSource) Name() string { return "store:" + s.store.Name() }

func (s *StoreSource) Retrieve(ctx context.Context, q core.ListingQuery) ([]*core.Candidate, error) {
	return s.store.FindCandidates(ctx, q)
}

// HotSource 是热门候选源：从 KV 的有序集合取 TopN 商品 ID，
// 再按 ID 取回商品体。约束过滤交给匹配环节统一做。
type HotSource struct {
	kv    core.KeyValueStore
	limit int
}

// NewHotSource 创建热门候选源。limit <= 0 时取 20。
func NewHotSource(kv core.KeyValueStore, limit int) *HotSource {
	if limit <= 0 {
		limit = 20
	}
	return &HotSource{kv: kv, limit: limit}
}

func (s *HotSource) Name() string { return "hot:" + s.kv.Name() }

func (s *HotSource) Retrieve(ctx context.Context, q core.ListingQuery) ([]*core.Candidate, error) {
	indexKey := store.CategoryIndexKey(q.Category)
	ids, err := s.kv.ZRange(ctx, indexKey, 0, int64(s.limit)-1)
	if err != nil {
		return nil, fmt.Errorf("hot index %s: %w", indexKey, err)
	}

	out := make([]*core.Candidate, 0, len(ids))
	for _, id := range ids {
		data, err := s.kv.Get(ctx, store.ListingKey(id))
		if err == core.ErrStoreNotFound {
			continue // 索引残留、商品体已删除
		}
		if err != nil {
			return nil, fmt.Errorf("hot listing %s: %w", id, err)
		}
		var c core.Candidate
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("unmarshal hot listing %s: %w", id, err)
		}
		out = append(out, &c)
	}
	return out, nil
}

var (
	_ Source = (*StoreSource)(nil)
	_ Source = (*HotSource)(nil)
)
