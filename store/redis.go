package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/reco-labs/reco/core"
	"github.com/reco-labs/reco/pkg/conv"
)

// Redis 键布局：
//   - listing:<id>            商品 JSON
//   - listings:all            全量索引（zset，score 为上架时间戳）
//   - listings:category:<cat> 类目索引（zset，score 为上架时间戳）
const (
	listingKeyPrefix  = "listing:"
	allListingsKey    = "listings:all"
	categoryKeyPrefix = "listings:category:"
)

// RedisStore 是 Redis 实现的商品存储 + KV 存储，生产缓存常用。
// 检索走类目/全量 zset 索引（新→旧），商品体按 MGET 批量取回。
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 连接 Redis 并创建存储。
func NewRedisStore(addr string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Name() string { return "redis" }

// PutListing 写入商品并维护索引（seed/同步任务用，请求期不调用）。
func (r *RedisStore) PutListing(ctx context.Context, c *core.Candidate, listedAt time.Time) error {
	if c == nil || c.ID == "" {
		return fmt.Errorf("listing id is required")
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal listing %s: %w", c.ID, err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, listingKeyPrefix+c.ID, data, 0)
	score := float64(listedAt.Unix())
	pipe.ZAdd(ctx, allListingsKey, redis.Z{Score: score, Member: c.ID})
	if c.Category != "" {
		pipe.ZAdd(ctx, categoryKeyPrefix+c.Category, redis.Z{Score: score, Member: c.ID})
	}
	_, err = pipe.Exec(ctx)
	return err
}

// FindCandidates 从索引取最新的一批商品，再在客户端做关键词/约束筛选。
// Redis 故障原样上抛，由匹配环节映射为 MatchError。
func (r *RedisStore) FindCandidates(ctx context.Context, q core.ListingQuery) ([]*core.Candidate, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	indexKey := allListingsKey
	if q.Category != "" {
		indexKey = categoryKeyPrefix + q.Category
	}

	// 多取一些再过滤，避免约束筛掉过多后结果太少
	ids, err := r.client.ZRevRange(ctx, indexKey, 0, int64(limit*4-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("zrevrange %s: %w", indexKey, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = listingKeyPrefix + id
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("mget listings: %w", err)
	}

	// 索引里有、商品体已过期的条目（非 string）直接跳过
	bodies := conv.ConvertSlice(vals, func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok
	})

	out := make([]*core.Candidate, 0, limit)
	for _, s := range bodies {
		var c core.Candidate
		if err := json.Unmarshal([]byte(s), &c); err != nil {
			return nil, fmt.Errorf("unmarshal listing: %w", err)
		}
		if !matchesConstraints(&c, q) {
			continue
		}
		rel, ok := keywordRelevance(c.Title, q)
		if !ok {
			continue
		}
		c.Relevance = rel
		out = append(out, &c)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// 以下为 KeyValueStore 实现。

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, core.ErrStoreNotFound
	}
	return val, err
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte, ttl ...int) error {
	var expiration time.Duration
	if len(ttl) > 0 && ttl[0] > 0 {
		expiration = time.Duration(ttl[0]) * time.Second
	}
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisStore) ZAdd(ctx context.Context, key string, score float64, member string) error {
	return r.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err()
}

func (r *RedisStore) ZRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return r.client.ZRevRange(ctx, key, start, stop).Result()
}

func (r *RedisStore) HGet(ctx context.Context, key, field string) ([]byte, error) {
	val, err := r.client.HGet(ctx, key, field).Bytes()
	if err == redis.Nil {
		return nil, core.ErrStoreNotFound
	}
	return val, err
}

func (r *RedisStore) HSet(ctx context.Context, key, field string, value []byte) error {
	return r.client.HSet(ctx, key, field, value).Err()
}

func (r *RedisStore) HGetAll(ctx context.Context, key string) (map[string][]byte, error) {
	vals, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(vals))
	for k, v := range vals {
		out[k] = []byte(v)
	}
	return out, nil
}

func (r *RedisStore) Close() error { return r.client.Close() }

// ListingKey 返回商品体的存储键（热门候选源等外部使用）。
func ListingKey(id string) string { return listingKeyPrefix + id }

// CategoryIndexKey 返回类目索引键（热门候选源等外部使用）。
func CategoryIndexKey(category string) string {
	if strings.TrimSpace(category) == "" {
		return allListingsKey
	}
	return categoryKeyPrefix + category
}

var (
	_ core.ListingStore  = (*RedisStore)(nil)
	_ core.KeyValueStore = (*RedisStore)(nil)
)
