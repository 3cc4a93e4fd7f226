package core

// PersonaMatch 是分类环节的产物：persona 标识 + 置信度 [0,1]。
// 一次请求可能有 0 个、1 个或多个匹配；顺序为置信度降序，
// 同分时保持目录定义顺序（稳定）。
type PersonaMatch struct {
	PersonaID  string  `json:"persona_id"`
	Confidence float64 `json:"confidence"`
}

// SearchQuery 是查询改写环节的产物。
// Enhanced 在语义上只扩充、不收窄 Original；改写被跳过时 Enhanced 等于 Original。
type SearchQuery struct {
	Original string   `json:"original_query"`
	Enhanced string   `json:"enhanced_query"`
	Keywords []string `json:"keywords"`
}

// RankedItem 是最终结果中的一项：候选 + 总分 + 1 起始的名次。
type RankedItem struct {
	Candidate *Candidate `json:"candidate"`
	Score     float64    `json:"score"`
	Rank      int        `json:"rank"`
}

// RankedResult 是排序环节的最终产物，生成后不再修改。
// Items 按 Score 降序排列，名次为连续的 1..N；空结果合法。
type RankedResult struct {
	Items    []RankedItem `json:"items"`
	Criteria []string     `json:"ranking_criteria,omitempty"`
}

// Len 返回结果条数。
func (r *RankedResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Items)
}

// Empty 判断是否为空结果。
func (r *RankedResult) Empty() bool { return r.Len() == 0 }
