// Package signal 提供用户历史信号源的实现。
// 接口定义在 core（core.SignalSource），此包只包含基础设施实现：
//
//	var src core.SignalSource = signal.NewMemorySource(nil)
//	var src core.SignalSource = signal.NewFeastSource(...)
package signal

import (
	"context"
	"sync"

	"github.com/reco-labs/reco/core"
)

// MemorySource 是内存实现的信号源，用于测试/开发/原型。
type MemorySource struct {
	mu      sync.RWMutex
	signals map[string]core.AxisVector
}

// NewMemorySource 创建内存信号源；seed 可为 nil。
func NewMemorySource(seed map[string]core.AxisVector) *MemorySource {
	s := &MemorySource{signals: make(map[string]core.AxisVector, len(seed))}
	for k, v := range seed {
		s.signals[k] = v
	}
	return s
}

func (s *MemorySource) Name() string { return "memory" }

// Put 写入用户信号（测试/回放数据用，请求期不调用）。
func (s *MemorySource) Put(userID string, v core.AxisVector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signals[userID] = v
}

func (s *MemorySource) UserSignal(_ context.Context, userID string) (core.AxisVector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.signals[userID]
	if !ok {
		return core.AxisVector{}, core.ErrSignalNotFound
	}
	return v, nil
}

func (s *MemorySource) Close() error { return nil }

var _ core.SignalSource = (*MemorySource)(nil)
