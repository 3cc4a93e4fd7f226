package config

import (
	"sort"
	"sync"

	"github.com/reco-labs/reco/core"
	"github.com/reco-labs/reco/signal"
	"github.com/reco-labs/reco/store"
)

// StoreBuilder 根据配置构建商品存储。
// 外部后端可通过 RegisterStore 接入配置驱动。
type StoreBuilder func(cfg StoreConfig) (core.ListingStore, error)

// SignalBuilder 根据配置构建用户信号源。
type SignalBuilder func(cfg SignalConfig) (core.SignalSource, error)

var (
	registryMu     sync.RWMutex
	storeBuilders  = map[string]StoreBuilder{}
	signalBuilders = map[string]SignalBuilder{}
)

// RegisterStore 注册一种存储后端的构建逻辑。
func RegisterStore(typeName string, builder StoreBuilder) {
	if typeName == "" || builder == nil {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	storeBuilders[typeName] = builder
}

// RegisterSignal 注册一种信号源的构建逻辑。
func RegisterSignal(typeName string, builder SignalBuilder) {
	if typeName == "" || builder == nil {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	signalBuilders[typeName] = builder
}

// SupportedStores 返回已注册的存储类型（排序），用于错误提示。
func SupportedStores() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return sortedKeys(storeBuilders)
}

// SupportedSignals 返回已注册的信号源类型（排序）。
func SupportedSignals() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return sortedKeys(signalBuilders)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	RegisterStore("memory", func(StoreConfig) (core.ListingStore, error) {
		return store.NewMemoryStore(), nil
	})
	RegisterStore("redis", func(cfg StoreConfig) (core.ListingStore, error) {
		return store.NewRedisStore(cfg.Addr, cfg.DB)
	})
	RegisterStore("sqlite", func(cfg StoreConfig) (core.ListingStore, error) {
		return store.OpenSQLite(cfg.DSN)
	})

	RegisterSignal("none", func(SignalConfig) (core.SignalSource, error) {
		return nil, nil
	})
	RegisterSignal("feast", func(cfg SignalConfig) (core.SignalSource, error) {
		src, err := signal.NewFeastSource(cfg.Host, cfg.Port, cfg.Project)
		if err != nil {
			return nil, err
		}
		if cfg.FeatureView != "" {
			src.FeatureView = cfg.FeatureView
		}
		return src, nil
	})
}
