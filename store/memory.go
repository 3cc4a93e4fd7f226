package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/reco-labs/reco/core"
)

// MemoryStore 是内存实现的商品存储 + KV 存储，用于测试/开发/原型。
// 商品按写入顺序保存，检索顺序即写入顺序；进程重启后数据丢失。
type MemoryStore struct {
	mu       sync.RWMutex
	listings []*core.Candidate // 写入顺序
	byID     map[string]int

	data  map[string]*entry
	zsets map[string]map[string]float64
}

type entry struct {
	value    []byte
	expireAt *time.Time
}

// NewMemoryStore 创建空的内存存储。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:  make(map[string]int),
		data:  make(map[string]*entry),
		zsets: make(map[string]map[string]float64),
	}
}

func (m *MemoryStore) Name() string { return "memory" }

// AddListing 写入一条商品（seed/测试用，请求期不调用）。
// 同 ID 覆盖但保持原有位置，检索顺序保持稳定。
func (m *MemoryStore) AddListing(c *core.Candidate) {
	if c == nil || c.ID == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if i, ok := m.byID[c.ID]; ok {
		m.listings[i] = c.Clone()
		return
	}
	m.byID[c.ID] = len(m.listings)
	m.listings = append(m.listings, c.Clone())
}

// FindCandidates 按写入顺序检索，做关键词粗筛与约束预过滤。
// 返回候选的副本，存储内数据保持只读。
func (m *MemoryStore) FindCandidates(_ context.Context, q core.ListingQuery) ([]*core.Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	out := make([]*core.Candidate, 0, limit)
	for _, c := range m.listings {
		if !matchesConstraints(c, q) {
			continue
		}
		rel, ok := keywordRelevance(c.Title, q)
		if !ok {
			continue
		}
		clone := c.Clone()
		clone.Relevance = rel
		out = append(out, clone)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }

// matchesConstraints 做价格/类目/地域预过滤（匹配环节还会再做一次完整过滤）。
func matchesConstraints(c *core.Candidate, q core.ListingQuery) bool {
	if q.PriceMin != nil && c.Price < *q.PriceMin {
		return false
	}
	if q.PriceMax != nil && c.Price > *q.PriceMax {
		return false
	}
	if q.Category != "" && c.Category != q.Category {
		return false
	}
	if q.Location != "" && !strings.Contains(strings.ToLower(c.Location), strings.ToLower(q.Location)) {
		return false
	}
	return true
}

// keywordRelevance 计算标题与检索词的朴素相关性：命中关键词的比例。
// 没有任何检索词时视为全量浏览，相关性为 0。
func keywordRelevance(title string, q core.ListingQuery) (float64, bool) {
	keywords := q.Keywords
	if len(keywords) == 0 && strings.TrimSpace(q.Query) != "" {
		keywords = strings.Fields(strings.ToLower(q.Query))
	}
	if len(keywords) == 0 {
		return 0, true
	}

	lower := strings.ToLower(title)
	hit := 0
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			hit++
		}
	}
	if hit == 0 {
		return 0, false
	}
	return float64(hit) / float64(len(keywords)), true
}

// 以下为 KeyValueStore 实现（热门索引/缓存用）。

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.data[key]
	if !ok || e.expired(time.Now()) {
		return nil, core.ErrStoreNotFound
	}
	return e.value, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl ...int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := &entry{value: value}
	if len(ttl) > 0 && ttl[0] > 0 {
		expire := time.Now().Add(time.Duration(ttl[0]) * time.Second)
		e.expireAt = &expire
	}
	m.data[key] = e
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) ZAdd(_ context.Context, key string, score float64, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.zsets[key] == nil {
		m.zsets[key] = make(map[string]float64)
	}
	m.zsets[key][member] = score
	return nil
}

// ZRange 按分数降序返回 [start, stop] 区间的成员，同分按成员名升序（确定性）。
func (m *MemoryStore) ZRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	zset, ok := m.zsets[key]
	if !ok || len(zset) == 0 {
		return nil, nil
	}

	type pair struct {
		member string
		score  float64
	}
	pairs := make([]pair, 0, len(zset))
	for member, score := range zset {
		pairs = append(pairs, pair{member, score})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].score != pairs[j].score {
			return pairs[i].score > pairs[j].score
		}
		return pairs[i].member < pairs[j].member
	})

	if start < 0 {
		start = 0
	}
	if stop < 0 || stop >= int64(len(pairs)) {
		stop = int64(len(pairs)) - 1
	}
	if start > stop {
		return nil, nil
	}

	out := make([]string, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		out = append(out, pairs[i].member)
	}
	return out, nil
}

func (m *MemoryStore) HGet(_ context.Context, key, field string) ([]byte, error) {
	return m.Get(context.Background(), hashKey(key, field))
}

func (m *MemoryStore) HSet(_ context.Context, key, field string, value []byte) error {
	return m.Set(context.Background(), hashKey(key, field), value)
}

func (m *MemoryStore) HGetAll(_ context.Context, key string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	prefix := hashKey(key, "")
	out := make(map[string][]byte)
	now := time.Now()
	for k, e := range m.data {
		if strings.HasPrefix(k, prefix) && !e.expired(now) {
			out[k[len(prefix):]] = e.value
		}
	}
	return out, nil
}

func (e *entry) expired(now time.Time) bool {
	return e.expireAt != nil && now.After(*e.expireAt)
}

func hashKey(key, field string) string { return "hash:" + key + ":" + field }

var (
	_ core.ListingStore  = (*MemoryStore)(nil)
	_ core.KeyValueStore = (*MemoryStore)(nil)
)
