package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/reco-labs/reco/classify"
	"github.com/reco-labs/reco/core"
	"github.com/reco-labs/reco/filter"
	"github.com/reco-labs/reco/flow"
	"github.com/reco-labs/reco/match"
	"github.com/reco-labs/reco/persona"
	"github.com/reco-labs/reco/rank"
	"github.com/reco-labs/reco/rewrite"
	"github.com/reco-labs/reco/service"
)

// BuildCatalog 按配置加载 persona 目录。Path 为空时用内置原型。
func BuildCatalog(cfg CatalogConfig) (*persona.Catalog, error) {
	if cfg.Path == "" {
		return persona.Default(), nil
	}
	return persona.LoadFile(cfg.Path)
}

// BuildStore 按配置构建商品存储。
func BuildStore(cfg StoreConfig) (core.ListingStore, error) {
	typeName := cfg.Type
	if typeName == "" {
		typeName = "memory"
	}
	registryMu.RLock()
	builder, ok := storeBuilders[typeName]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported store type %q (supported: %v)", typeName, SupportedStores())
	}
	return builder(cfg)
}

// BuildSignal 按配置构建用户信号源。类型为空或 "none" 时返回 nil。
func BuildSignal(cfg SignalConfig) (core.SignalSource, error) {
	typeName := cfg.Type
	if typeName == "" {
		typeName = "none"
	}
	registryMu.RLock()
	builder, ok := signalBuilders[typeName]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported signal type %q (supported: %v)", typeName, SupportedSignals())
	}
	return builder(cfg)
}

// BuildGraph 按配置装配管道。
func BuildGraph(cfg *Config, catalog *persona.Catalog, ls core.ListingStore, src core.SignalSource) (*flow.Graph, error) {
	classifyOpts := []classify.Option{
		classify.WithThreshold(cfg.Classify.threshold()),
		classify.WithMaxMatches(cfg.Classify.maxMatches()),
	}
	if src != nil {
		classifyOpts = append(classifyOpts, classify.WithSignalSource(src))
	}

	rewriteOpts := []rewrite.Option{rewrite.WithBlendMode(cfg.Rewrite.blendMode())}
	if cfg.Rewrite.MaxHints > 0 {
		rewriteOpts = append(rewriteOpts, rewrite.WithMaxHints(cfg.Rewrite.MaxHints))
	}

	sources := []match.Source{match.NewStoreSource(ls)}
	if cfg.Hot.Enabled {
		kv, ok := ls.(core.KeyValueStore)
		if !ok {
			return nil, fmt.Errorf("hot source requires a key-value capable store, %s is not", ls.Name())
		}
		sources = append(sources, match.NewHotSource(kv, cfg.Hot.Limit))
	}

	var matchOpts []match.Option
	if cfg.Match.Limit > 0 {
		matchOpts = append(matchOpts, match.WithLimit(cfg.Match.Limit))
	}
	for _, expr := range cfg.Match.Rules {
		rf, err := filter.NewRuleFilter(expr)
		if err != nil {
			return nil, fmt.Errorf("compile match rule %q: %w", expr, err)
		}
		matchOpts = append(matchOpts, match.WithFilters(rf))
	}

	var rankOpts []rank.Option
	if cfg.Rank.Weights != nil {
		rankOpts = append(rankOpts, rank.WithWeights(*cfg.Rank.Weights))
	}
	var stageOpts []rank.StageOption
	if cfg.Rank.DiversityMaxPerSeller > 0 {
		stageOpts = append(stageOpts, rank.WithDiversity(cfg.Rank.DiversityMaxPerSeller))
	}

	return flow.NewGraph(
		classify.NewStage(classify.NewVectorClassifier(catalog, classifyOpts...)),
		rewrite.NewStage(rewrite.NewPersonaRewriter(catalog, rewriteOpts...)),
		match.NewStage(match.NewMatcher(sources, matchOpts...)),
		rank.NewStage(rank.NewPersonaRanker(catalog, rankOpts...), stageOpts...),
	)
}

// Build 按配置装配完整服务。存储与信号源的生命周期交给服务托管，
// 服务 Close 时一并释放。
func Build(cfg *Config, log *zap.Logger) (*service.Service, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	catalog, err := BuildCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	ls, err := BuildStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	src, err := BuildSignal(cfg.Signal)
	if err != nil {
		ls.Close()
		return nil, err
	}
	graph, err := BuildGraph(cfg, catalog, ls, src)
	if err != nil {
		ls.Close()
		if src != nil {
			src.Close()
		}
		return nil, err
	}

	opts := []service.Option{service.WithLogger(log), service.WithClosers(ls)}
	if src != nil {
		opts = append(opts, service.WithClosers(src))
	}
	return service.New(graph, catalog, opts...), nil
}
