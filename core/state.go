package core

import "time"

// Step 是管道状态机的状态标识。
type Step string

const (
	StepStart      Step = "start"
	StepClassified Step = "classified"
	StepRouted     Step = "routed"
	StepRewritten  Step = "rewritten"
	StepMatched    Step = "matched"
	StepRanked     Step = "ranked" // 终态：有排序结果
	StepEmpty      Step = "empty"  // 终态：空结果（不是错误）
	StepFailed     Step = "failed" // 终态：某环节失败
)

// Terminal 判断是否为终态。
func (s Step) Terminal() bool {
	return s == StepRanked || s == StepEmpty || s == StepFailed
}

// State 是单次请求的管道状态：唯一的共享记录，按环节线性传递。
//
// 约定：
//   - 每个环节基于 Clone 产出新状态，只填充自己负责的字段
//   - 环节不读取后续环节才会产出的字段，也不清除先前环节的产出
//   - 环节返回后不再持有对状态的引用
type State struct {
	// 输入（创建后不变）
	Request   Request
	SessionID string
	StartedAt time.Time

	// 各环节的产物
	Matches    []PersonaMatch // 分类环节
	Route      string         // 路由决策（flow.Decision 的字符串值）
	Query      *SearchQuery   // 查询改写环节（可能被跳过）
	Candidates []*Candidate   // 候选匹配环节
	Result     *RankedResult  // 排序环节

	// 执行状态
	Step  Step
	Err   error    // Step == StepFailed 时的失败原因
	Trace []string // 已执行环节名，按执行顺序
}

// NewState 创建初始状态。
func NewState(req Request, sessionID string) *State {
	return &State{
		Request:   req,
		SessionID: sessionID,
		StartedAt: time.Now(),
		Step:      StepStart,
	}
}

// Clone 返回状态的拷贝。切片做头拷贝：环节约定只追加新切片、
// 不修改既有底层数组，线性所有权下这是安全的。
func (s *State) Clone() *State {
	out := *s
	if s.Matches != nil {
		out.Matches = append([]PersonaMatch(nil), s.Matches...)
	}
	if s.Candidates != nil {
		out.Candidates = append([]*Candidate(nil), s.Candidates...)
	}
	if s.Trace != nil {
		out.Trace = append([]string(nil), s.Trace...)
	}
	return &out
}

// Advance 记录一个环节完成并进入给定状态。
func (s *State) Advance(step Step, stageName string) *State {
	out := s.Clone()
	out.Step = step
	if stageName != "" {
		out.Trace = append(out.Trace, stageName)
	}
	return out
}

// Fail 进入失败终态，保留首个失败原因。
func (s *State) Fail(stageName string, err error) *State {
	out := s.Clone()
	out.Step = StepFailed
	out.Err = err
	if stageName != "" {
		out.Trace = append(out.Trace, stageName)
	}
	return out
}

// EffectiveQuery 返回匹配环节应使用的检索词：
// 改写产物优先，否则回退到原始查询。
func (s *State) EffectiveQuery() string {
	if s.Query != nil && s.Query.Enhanced != "" {
		return s.Query.Enhanced
	}
	return s.Request.Query
}

// Elapsed 返回从创建到现在的耗时。
func (s *State) Elapsed() time.Duration {
	return time.Since(s.StartedAt)
}
