package testkit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ceyewan/snowid/clog"
	"github.com/ceyewan/snowid/metrics"
)

// Kit 聚合测试用例共用的基础依赖
type Kit struct {
	Ctx    context.Context
	Logger clog.Logger
	Meter  metrics.Meter
}

// NewKit 构造一套默认的测试依赖
func NewKit(t *testing.T) *Kit {
	t.Helper()
	return &Kit{
		Ctx:    context.Background(),
		Logger: NewLogger(),
		Meter:  NewMeter(),
	}
}

// NewLogger 返回测试用 logger，console 格式便于本地排查
// 构造失败时退化为 Discard
func NewLogger() clog.Logger {
	logger, err := clog.New(&clog.Config{Level: "debug", Format: "console"})
	if err != nil {
		return clog.Discard()
	}
	return logger
}

// NewMeter 返回测试用 meter
// 指标全部丢弃，测试进程不监听 Prometheus 端口
func NewMeter() metrics.Meter {
	return metrics.Discard()
}

// NewContext 返回带超时的测试上下文
func NewContext(t *testing.T, timeout time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), timeout)
}

// NewID 返回 8 位随机后缀（UUID v4 截断），用于隔离并行测试的表名和键名
func NewID() string {
	return uuid.New().String()[0:8]
}
