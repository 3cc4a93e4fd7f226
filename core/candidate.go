package core

// Seller 是候选商品关联的卖家快照，取自商品存储，管道内只读。
type Seller struct {
	ID                string     `json:"seller_id"`
	Name              string     `json:"seller_name"`
	Axes              AxisVector `json:"axes"`
	TotalSales        int        `json:"total_sales"`
	AvgRating         float64    `json:"avg_rating"`          // 0-5
	ResponseTimeHours float64    `json:"response_time_hours"` // 平均响应时长
}

// Candidate 是进入排序前的候选商品：商品存储返回的只读引用 + 检索信号。
// Labels 用于记录检索来源、过滤原因等可解释信息。
type Candidate struct {
	ID        string  `json:"listing_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Condition string  `json:"condition"` // new / like_new / used / worn
	Location  string  `json:"location"`
	Seller    *Seller `json:"seller,omitempty"`

	// Relevance 是检索侧给出的原始相关性信号（越大越相关）。
	Relevance float64 `json:"relevance"`

	ViewCount int `json:"view_count"`
	LikeCount int `json:"like_count"`

	Labels map[string]Label `json:"labels,omitempty"`
}

// NewCandidate 创建一个空候选。
func NewCandidate(id string) *Candidate {
	return &Candidate{
		ID:     id,
		Labels: make(map[string]Label),
	}
}

// PutLabel 写入 Label；同名 key 按默认规则合并。
func (c *Candidate) PutLabel(key string, lbl Label) {
	if c.Labels == nil {
		c.Labels = make(map[string]Label)
	}
	if old, ok := c.Labels[key]; ok {
		c.Labels[key] = MergeLabel(old, lbl)
		return
	}
	c.Labels[key] = lbl
}

// Clone 返回候选的浅拷贝（Labels 深拷贝），用于保持存储侧数据只读。
func (c *Candidate) Clone() *Candidate {
	if c == nil {
		return nil
	}
	out := *c
	if c.Labels != nil {
		out.Labels = make(map[string]Label, len(c.Labels))
		for k, v := range c.Labels {
			out.Labels[k] = v
		}
	}
	return &out
}
