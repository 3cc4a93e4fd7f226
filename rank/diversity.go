package rank

import "github.com/reco-labs/reco/core"

// Diversity 是排序结果上的多样性重排：限制同一卖家在头部的露出数量，
// 超出配额的条目整体后移（相对顺序不变），名次重新编为 1..N。
// 不丢弃任何条目，输出条数等于输入条数。
type Diversity struct {
	// MaxPerSeller 是每个卖家的头部露出配额，<=0 表示不重排。
	MaxPerSeller int
}

// Apply 对结果做就地重排后返回。
func (d *Diversity) Apply(result *core.RankedResult) *core.RankedResult {
	if result == nil || d.MaxPerSeller <= 0 || len(result.Items) == 0 {
		return result
	}

	counts := make(map[string]int, 16)
	kept := make([]core.RankedItem, 0, len(result.Items))
	var demoted []core.RankedItem

	for _, item := range result.Items {
		sellerID := ""
		if item.Candidate != nil && item.Candidate.Seller != nil {
			sellerID = item.Candidate.Seller.ID
		}
		if sellerID == "" {
			kept = append(kept, item)
			continue
		}
		if counts[sellerID] >= d.MaxPerSeller {
			demoted = append(demoted, item)
			continue
		}
		counts[sellerID]++
		kept = append(kept, item)
	}

	items := append(kept, demoted...)
	for i := range items {
		items[i].Rank = i + 1
	}
	result.Items = items
	return result
}
