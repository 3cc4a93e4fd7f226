package signal

import (
	"context"
	"fmt"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	feasttypes "github.com/feast-dev/feast/sdk/go/protos/feast/types"

	"github.com/reco-labs/reco/core"
)

// 在 Feast 中按 "<feature_view>:<axis>" 命名的 5 个轴特征。
const defaultFeatureView = "user_axes"

// FeastSource 从 Feast 在线特征库读取用户的历史轴向量。
//
// 特征布局约定：
//   - 实体键：user_id（string）
//   - 特征：user_axes:trust_safety ... user_axes:price_flexibility，double 类型
//
// 工程特征：
//   - 实时性：好（gRPC 在线存储）
//   - 可用性：特征缺失视为无信号（ErrSignalNotFound），连接故障上抛
type FeastSource struct {
	client *feastsdk.GrpcClient

	// Project 项目名称
	Project string

	// FeatureView 特征视图名称（默认 "user_axes"）
	FeatureView string
}

// NewFeastSource 连接 Feast Feature Server 并创建信号源。
func NewFeastSource(host string, port int, project string) (*FeastSource, error) {
	if port == 0 {
		port = 6565
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("connect feast %s:%d: %w", host, port, err)
	}
	return &FeastSource{
		client:      client,
		Project:     project,
		FeatureView: defaultFeatureView,
	}, nil
}

func (s *FeastSource) Name() string { return "feast" }

// featureRefs 返回固定顺序的 5 个特征引用。
func (s *FeastSource) featureRefs() [5]string {
	view := s.FeatureView
	if view == "" {
		view = defaultFeatureView
	}
	names := core.AxisNames()
	var refs [5]string
	for i, axis := range names {
		refs[i] = view + ":" + axis
	}
	return refs
}

func (s *FeastSource) UserSignal(ctx context.Context, userID string) (core.AxisVector, error) {
	refs := s.featureRefs()

	req := &feastsdk.OnlineFeaturesRequest{
		Features: refs[:],
		Entities: []feastsdk.Row{{"user_id": feastsdk.StrVal(userID)}},
		Project:  s.Project,
	}

	resp, err := s.client.GetOnlineFeatures(ctx, req)
	if err != nil {
		return core.AxisVector{}, fmt.Errorf("feast get online features: %w", err)
	}

	rows := resp.Rows()
	if len(rows) == 0 {
		return core.AxisVector{}, core.ErrSignalNotFound
	}

	var vals [5]float64
	for i, ref := range refs {
		v, ok := rows[0][ref]
		if !ok {
			return core.AxisVector{}, core.ErrSignalNotFound
		}
		f, ok := axisValue(v)
		if !ok {
			return core.AxisVector{}, core.ErrSignalNotFound
		}
		vals[i] = f
	}

	vec := core.AxisVector{
		TrustSafety:            vals[0],
		QualityCondition:       vals[1],
		RemotePreference:       vals[2],
		ActivityResponsiveness: vals[3],
		PriceFlexibility:       vals[4],
	}
	return vec.Clamp(), nil
}

func (s *FeastSource) Close() error {
	// SDK 的 GrpcClient 连接由 gRPC 库管理，没有显式 Close
	s.client = nil
	return nil
}

// axisValue 从 Feast 值类型提取 float64。
func axisValue(v *feasttypes.Value) (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.GetVal().(type) {
	case *feasttypes.Value_DoubleVal:
		return val.DoubleVal, true
	case *feasttypes.Value_FloatVal:
		return float64(val.FloatVal), true
	case *feasttypes.Value_Int64Val:
		return float64(val.Int64Val), true
	case *feasttypes.Value_Int32Val:
		return float64(val.Int32Val), true
	default:
		return 0, false
	}
}

var _ core.SignalSource = (*FeastSource)(nil)
