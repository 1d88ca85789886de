package connector

import (
	"context"

	"github.com/ceyewan/snowid/metrics"
)

// connectorMetrics 连接器级别的通用指标。
//
// 所有连接器共享同一组指标名称，通过 backend 标签区分后端类型。
// 创建失败时返回 nil，所有观测方法对 nil 接收者安全。
type connectorMetrics struct {
	connects     metrics.Counter
	healthErrors metrics.Counter
}

func newConnectorMetrics(meter metrics.Meter) *connectorMetrics {
	connects, err := meter.Counter("connector_connect_total", "连接建立尝试总数")
	if err != nil {
		return nil
	}
	healthErrors, err := meter.Counter("connector_health_check_failures_total", "健康检查失败总数")
	if err != nil {
		return nil
	}
	return &connectorMetrics{connects: connects, healthErrors: healthErrors}
}

// observeConnect 记录一次连接尝试及其结果
func (m *connectorMetrics) observeConnect(ctx context.Context, backend string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.connects.Inc(ctx, metrics.L("backend", backend), metrics.L("outcome", outcome))
}

// observeHealthFailure 记录一次健康检查失败
func (m *connectorMetrics) observeHealthFailure(ctx context.Context, backend string) {
	if m == nil {
		return
	}
	m.healthErrors.Inc(ctx, metrics.L("backend", backend))
}
