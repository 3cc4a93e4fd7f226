// Package config 提供配置驱动的服务组装：YAML 描述存储/信号源/各环节参数，
// Build 按配置装配出完整的推荐服务。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reco-labs/reco/classify"
	"github.com/reco-labs/reco/rank"
	"github.com/reco-labs/reco/rewrite"
)

// Config 是服务的顶层配置。零值可用：内存存储 + 内置 persona 目录。
type Config struct {
	Catalog  CatalogConfig  `yaml:"catalog"`
	Store    StoreConfig    `yaml:"store"`
	Hot      HotConfig      `yaml:"hot"`
	Signal   SignalConfig   `yaml:"signal"`
	Classify ClassifyConfig `yaml:"classify"`
	Rewrite  RewriteConfig  `yaml:"rewrite"`
	Match    MatchConfig    `yaml:"match"`
	Rank     RankConfig     `yaml:"rank"`
	Server   ServerConfig   `yaml:"server"`
}

// CatalogConfig 指定 persona 目录来源。Path 为空时用内置原型。
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// StoreConfig 指定商品存储后端。
type StoreConfig struct {
	Type string `yaml:"type"` // memory | redis | sqlite，默认 memory
	Addr string `yaml:"addr"` // redis 地址
	DB   int    `yaml:"db"`   // redis 库号
	DSN  string `yaml:"dsn"`  // sqlite 数据源
}

// HotConfig 控制热门候选源（需要后端同时实现 KV 存储，目前为 memory/redis）。
type HotConfig struct {
	Enabled bool `yaml:"enabled"`
	Limit   int  `yaml:"limit"`
}

// SignalConfig 指定用户信号源。
type SignalConfig struct {
	Type        string `yaml:"type"` // none | feast，默认 none
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Project     string `yaml:"project"`
	FeatureView string `yaml:"feature_view"`
}

// ClassifyConfig 是分类环节参数。
type ClassifyConfig struct {
	Threshold  float64 `yaml:"threshold"`   // 默认 classify.DefaultThreshold
	MaxMatches int     `yaml:"max_matches"` // 默认 classify.DefaultMaxMatches
}

// RewriteConfig 是改写环节参数。
type RewriteConfig struct {
	BlendMode string `yaml:"blend_mode"` // top1 | weighted，默认 top1
	MaxHints  int    `yaml:"max_hints"`
}

// MatchConfig 是匹配环节参数。Rules 为 CEL 运营规则表达式，
// 表达式为 false 的候选被剔除。
type MatchConfig struct {
	Limit int      `yaml:"limit"`
	Rules []string `yaml:"rules"`
}

// RankConfig 是排序环节参数。
type RankConfig struct {
	Weights               *rank.Weights `yaml:"weights"`
	DiversityMaxPerSeller int           `yaml:"diversity_max_per_seller"`
}

// ServerConfig 是 HTTP 边界参数。
type ServerConfig struct {
	Addr string `yaml:"addr"` // 默认 ":8080"
}

// Load 从 YAML 字节解析配置。
func Load(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile 从文件加载配置。
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Load(data)
}

// Validate 校验配置中的枚举值。
func (c *Config) Validate() error {
	if c.Store.Type != "" {
		if _, ok := storeBuilders[c.Store.Type]; !ok {
			return fmt.Errorf("unsupported store type %q (supported: %v)", c.Store.Type, SupportedStores())
		}
	}
	if c.Signal.Type != "" {
		if _, ok := signalBuilders[c.Signal.Type]; !ok {
			return fmt.Errorf("unsupported signal type %q (supported: %v)", c.Signal.Type, SupportedSignals())
		}
	}
	switch rewrite.BlendMode(c.Rewrite.BlendMode) {
	case "", rewrite.BlendTop1, rewrite.BlendWeighted:
	default:
		return fmt.Errorf("unsupported blend mode %q", c.Rewrite.BlendMode)
	}
	if c.Classify.Threshold < 0 || c.Classify.Threshold > 1 {
		return fmt.Errorf("classify threshold %v out of [0,1]", c.Classify.Threshold)
	}
	return nil
}

// 以下为带默认值的读取辅助。

func (c ClassifyConfig) threshold() float64 {
	if c.Threshold == 0 {
		return classify.DefaultThreshold
	}
	return c.Threshold
}

func (c ClassifyConfig) maxMatches() int {
	if c.MaxMatches == 0 {
		return classify.DefaultMaxMatches
	}
	return c.MaxMatches
}

func (c RewriteConfig) blendMode() rewrite.BlendMode {
	if c.BlendMode == "" {
		return rewrite.BlendTop1
	}
	return rewrite.BlendMode(c.BlendMode)
}

func (c ServerConfig) addr() string {
	if c.Addr == "" {
		return ":8080"
	}
	return c.Addr
}

// ListenAddr 返回 HTTP 监听地址（默认 ":8080"）。
func (c ServerConfig) ListenAddr() string { return c.addr() }
