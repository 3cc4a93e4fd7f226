package core

import "context"

// ListingQuery 是商品存储的检索条件。
// 约束（价格区间/类目/地域）是 AND 语义，存储实现不得私自放宽；
// 实现可以只做粗筛，匹配环节会再做一次完整约束过滤。
type ListingQuery struct {
	Query    string   // 检索词（改写后）
	Keywords []string // 分词后的关键词（可选，供存储实现做倒排/LIKE）
	Category string
	Location string
	PriceMin *float64
	PriceMax *float64
	Limit    int // <=0 表示使用实现默认值
}

// ListingStore 是商品存储的领域接口。
//
// 设计原则：
//   - 接口定义在领域层（core），由基础设施层（store）实现
//   - 返回顺序即检索顺序，调用方依赖该顺序做确定性排序
//   - 存储故障必须返回错误，由匹配环节映射为 MatchError 上报
//
// 实现：
//   - store.MemoryStore（测试/原型）
//   - store.SQLiteStore（关系型持久化）
//   - store.RedisStore（生产缓存）
type ListingStore interface {
	// Name 返回存储后端名称（用于日志/错误归属）
	Name() string

	// FindCandidates 按条件检索候选商品
	FindCandidates(ctx context.Context, q ListingQuery) ([]*Candidate, error)

	// Close 关闭连接/释放资源
	Close() error
}

// KeyValueStore 是通用 KV 存储接口，供热门商品索引、缓存等使用。
// 后端不支持某操作时返回 ErrStoreNotFound 以外的明确错误。
type KeyValueStore interface {
	Name() string

	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl ...int) error
	Delete(ctx context.Context, key string) error

	// ZAdd/ZRange 操作有序集合（按分数降序取 TopN）
	ZAdd(ctx context.Context, key string, score float64, member string) error
	ZRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// HGet/HSet/HGetAll 操作哈希（商品元数据）
	HGet(ctx context.Context, key, field string) ([]byte, error)
	HSet(ctx context.Context, key, field string, value []byte) error
	HGetAll(ctx context.Context, key string) (map[string][]byte, error)

	Close() error
}
