package persona

import (
	"fmt"
	"iter"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reco-labs/reco/core"
)

// Catalog 是 Persona 的只读查找表，保持定义顺序。
// 加载完成后不再修改，任何环节都不得在请求期改写它。
type Catalog struct {
	personas []Persona
	index    map[string]int
}

// New 基于给定定义构建目录；定义不合法时返回 CatalogLoadError。
func New(personas []Persona) (*Catalog, error) {
	if len(personas) == 0 {
		return nil, core.NewCatalogLoadError("catalog is empty", nil)
	}

	index := make(map[string]int, len(personas))
	for i, p := range personas {
		if p.ID == "" {
			return nil, core.NewCatalogLoadError(fmt.Sprintf("persona at position %d has no id", i), nil)
		}
		if _, dup := index[p.ID]; dup {
			return nil, core.NewCatalogLoadError(fmt.Sprintf("duplicate persona id %q", p.ID), nil)
		}
		if !p.Axes.InRange() {
			return nil, core.NewCatalogLoadError(
				fmt.Sprintf("persona %q has axis score outside [%v,%v]", p.ID, core.AxisMin, core.AxisMax), nil)
		}
		index[p.ID] = i
	}

	return &Catalog{
		personas: append([]Persona(nil), personas...),
		index:    index,
	}, nil
}

// catalogFile 是 YAML 目录文件的顶层结构。
type catalogFile struct {
	Personas []Persona `yaml:"personas"`
}

// Load 从 YAML 文档构建目录。
func Load(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, core.NewCatalogLoadError("parse catalog yaml", err)
	}
	return New(file.Personas)
}

// LoadFile 从 YAML 文件构建目录。
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewCatalogLoadError(fmt.Sprintf("read catalog file %s", path), err)
	}
	return Load(data)
}

// Get 按 id 查找 Persona；不存在时返回 NotFoundError。
func (c *Catalog) Get(id string) (Persona, error) {
	i, ok := c.index[id]
	if !ok {
		return Persona{}, core.NewNotFoundError(id)
	}
	return c.personas[i], nil
}

// Has 判断 id 是否存在。
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Len 返回目录条数。
func (c *Catalog) Len() int { return len(c.personas) }

// All 按定义顺序惰性遍历所有 Persona；序列可重复消费。
func (c *Catalog) All() iter.Seq[Persona] {
	return func(yield func(Persona) bool) {
		for _, p := range c.personas {
			if !yield(p) {
				return
			}
		}
	}
}

// Personas 返回定义顺序的副本切片（边界层序列化用）。
func (c *Catalog) Personas() []Persona {
	return append([]Persona(nil), c.personas...)
}
