// Package store 提供商品存储与 KV 存储的基础设施实现。
// 接口定义在 core 包（core.ListingStore / core.KeyValueStore）。
//
// 示例：
//
//	var ls core.ListingStore = store.NewMemoryStore()
//	var ls core.ListingStore = store.MustOpenSQLite(":memory:")
//	var kv core.KeyValueStore = store.NewMemoryStore()
package store

// DefaultLimit 是检索条数的默认上限，ListingQuery.Limit <= 0 时生效。
const DefaultLimit = 100
