package core

// Label 是链路中的可解释标记：哪个环节、基于什么理由打上的标。
// Value 与 Source 的语义由打标方自定义；这里只提供标准化的合并规则。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // match / filter / rank / rule ...
}

// MergeLabel 合并同名 Label，保留历史、可追踪。
// - Value 以 '|' 累积
// - Source 以 ',' 累积
func MergeLabel(existing, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}
