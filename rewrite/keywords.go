package rewrite

import "strings"

// 查询分词时剔除的虚词。二手交易查询以名词为主，表保持克制。
var stopwords = map[string]struct{}{
	"그리고": {}, "또는": {}, "및": {}, "좀": {}, "주세요": {}, "찾아줘": {},
	"the": {}, "a": {}, "an": {}, "of": {}, "for": {}, "and": {}, "or": {},
}

// ExtractKeywords 把查询切成检索关键词：小写、按空白切分、
// 去虚词、保序去重。匹配环节用它做标题粗筛。
func ExtractKeywords(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	if len(fields) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := stopwords[f]; ok {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
