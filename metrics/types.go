// Package metrics 提供统一的指标收集能力。
// 基于 OpenTelemetry 构建，对外只暴露 Counter、Gauge、Histogram
// 三种指标接口，内置 Prometheus HTTP 拉取端点。
//
// 快速开始：
//
//	meter, err := metrics.New(&metrics.Config{
//	    Enabled:     true,
//	    ServiceName: "id-service",
//	    Version:     "v1.0.0",
//	    Port:        9090,
//	    Path:        "/metrics",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer meter.Shutdown(ctx)
//
//	minted, _ := meter.Counter("idgen_snowflake_generated_total", "Total IDs minted.")
//	minted.Inc(ctx, metrics.L("worker", "3"))
//
//	latency, _ := meter.Histogram("mint_duration_seconds", "Mint latency.",
//	    metrics.WithUnit("s"))
//	latency.Record(ctx, 0.000012, metrics.L("outcome", "success"))
package metrics

import "context"

// Counter 只增计数器，适合请求数、发号数、错误数这类累计值
type Counter interface {
	// Inc 计数加一
	Inc(ctx context.Context, labels ...Label)

	// Add 增加给定值，负数会被监控系统忽略或报错
	Add(ctx context.Context, val float64, labels ...Label)
}

// Gauge 瞬时值，可增可减，适合连接数、活跃 worker 数、队列长度。
// Inc/Dec 按标签组合独立计数：L("worker","1") 和 L("worker","2")
// 各自维护自己的当前值。
type Gauge interface {
	// Set 覆盖当前值
	Set(ctx context.Context, val float64, labels ...Label)

	// Inc 当前值加一
	Inc(ctx context.Context, labels ...Label)

	// Dec 当前值减一
	Dec(ctx context.Context, labels ...Label)
}

// Histogram 值分布统计，监控系统据此算 P95/P99 等分位数。
// 桶边界默认用 OpenTelemetry 的，可用 WithBuckets 覆盖。
type Histogram interface {
	Record(ctx context.Context, val float64, labels ...Label)
}

// Meter 指标工厂，一个实例对应一个服务。
// 创建出的指标可以在多个 goroutine 并发使用。
type Meter interface {
	// Counter 创建计数器，name 遵循 Prometheus 命名习惯（*_total）
	Counter(name string, desc string, opts ...MetricOption) (Counter, error)

	// Gauge 创建瞬时值指标
	Gauge(name string, desc string, opts ...MetricOption) (Gauge, error)

	// Histogram 创建直方图，WithUnit/WithBuckets 在这里生效
	Histogram(name string, desc string, opts ...MetricOption) (Histogram, error)

	// Shutdown 刷出剩余指标并关闭，进程退出前调用
	Shutdown(ctx context.Context) error
}

// MetricOption 创建单个指标时的选项
type MetricOption func(*MetricOptions)

// MetricOptions 指标级配置
type MetricOptions struct {
	// Unit 计量单位，建议用 UCUM 代码（"s"、"By" 等）
	Unit string

	// Buckets 直方图桶边界，需单调递增，只对 Histogram 生效
	Buckets []float64
}

// WithUnit 设置指标单位。
//
//	meter.Histogram("mint_duration_seconds", "Mint latency.", metrics.WithUnit("s"))
func WithUnit(unit string) MetricOption {
	return func(o *MetricOptions) {
		o.Unit = unit
	}
}

// WithBuckets 自定义直方图桶边界。
//
//	metrics.WithBuckets([]float64{0.005, 0.01, 0.05, 0.1, 0.5, 1})
func WithBuckets(buckets []float64) MetricOption {
	return func(o *MetricOptions) {
		o.Buckets = buckets
	}
}
