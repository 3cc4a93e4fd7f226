// Package service 是推荐核心的对外门面：校验请求、执行管道、
// 把终态折算成边界层友好的结果。
package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/reco-labs/reco/core"
	"github.com/reco-labs/reco/flow"
	"github.com/reco-labs/reco/persona"
)

// Status 是一次推荐的结果类别。
// 空结果（无 persona 匹配、无候选商品）是成功变体，不是错误。
type Status string

const (
	StatusRanked Status = "ranked" // 有排序结果
	StatusEmpty  Status = "empty"  // 空结果
)

// Outcome 是一次成功推荐的产物。
type Outcome struct {
	SessionID string              `json:"session_id"`
	Status    Status              `json:"status"`
	Route     string              `json:"route,omitempty"`
	Result    *core.RankedResult  `json:"result"`
	Matches   []core.PersonaMatch `json:"persona_matches,omitempty"`
	Elapsed   time.Duration       `json:"-"`
}

// Service 组合管道与目录，提供 Recommend / ListPersonas 两个入口。
// 管道失败不在这里重试，重试策略交给调用方。
type Service struct {
	graph   *flow.Graph
	catalog *persona.Catalog
	log     *zap.Logger
	closers []io.Closer
}

// Option 配置 Service。
type Option func(*Service)

// WithLogger 设置日志器，默认 zap.NewNop()。
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClosers 登记随服务一起关闭的资源（存储连接、信号源等）。
func WithClosers(closers ...io.Closer) Option {
	return func(s *Service) { s.closers = append(s.closers, closers...) }
}

// New 创建服务。
func New(graph *flow.Graph, catalog *persona.Catalog, opts ...Option) *Service {
	s := &Service{
		graph:   graph,
		catalog: catalog,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend 执行一次推荐。
// 请求不合法或任一环节失败时返回错误（错误链中带 StageError，
// 标明出错环节与原因）；空结果通过 Outcome.Status 区分，不是错误。
func (s *Service) Recommend(ctx context.Context, req core.Request) (*Outcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	state := s.graph.Run(ctx, core.NewState(req, sessionID))

	if state.Step == core.StepFailed {
		s.log.Warn("pipeline failed",
			zap.String("session_id", sessionID),
			zap.String("query", req.Query),
			zap.Strings("trace", state.Trace),
			zap.Duration("elapsed", state.Elapsed()),
			zap.Error(state.Err),
		)
		return nil, state.Err
	}

	out := &Outcome{
		SessionID: sessionID,
		Status:    StatusRanked,
		Route:     state.Route,
		Result:    state.Result,
		Matches:   state.Matches,
		Elapsed:   state.Elapsed(),
	}
	if state.Step == core.StepEmpty || state.Result.Empty() {
		out.Status = StatusEmpty
	}

	s.log.Info("pipeline done",
		zap.String("session_id", sessionID),
		zap.String("query", req.Query),
		zap.String("status", string(out.Status)),
		zap.String("route", state.Route),
		zap.Int("results", state.Result.Len()),
		zap.Duration("elapsed", out.Elapsed),
	)
	return out, nil
}

// ListPersonas 返回目录中的全部 persona（定义顺序）。
func (s *Service) ListPersonas() []persona.Persona {
	return s.catalog.Personas()
}

// Persona 按 ID 查询单个 persona，不存在时返回 NotFoundError。
func (s *Service) Persona(id string) (persona.Persona, error) {
	return s.catalog.Get(id)
}

// Close 关闭登记的全部资源。
func (s *Service) Close() error {
	var err error
	for _, c := range s.closers {
		err = multierr.Append(err, c.Close())
	}
	return err
}
