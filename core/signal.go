package core

import "context"

// SignalSource 提供用户的历史行为信号：按用户聚合出的 5 轴分值。
// 分类环节用它补充纯文本查询推不出来的偏好。
//
// 实现：
//   - signal.MemorySource（测试/原型）
//   - signal.FeastSource（Feast 在线特征库）
type SignalSource interface {
	// Name 返回信号源名称
	Name() string

	// UserSignal 返回用户的历史轴向量。
	// 用户没有历史信号时返回 ErrSignalNotFound，不视为故障。
	UserSignal(ctx context.Context, userID string) (AxisVector, error)

	// Close 关闭连接/释放资源
	Close() error
}
