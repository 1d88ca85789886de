package idgen

import (
	"context"

	"github.com/ceyewan/snowid/metrics"
)

// Metrics 指标常量定义
const (
	// MetricSnowflakeGenerated 雪花算法 ID 生成总数 (Counter)
	MetricSnowflakeGenerated = "idgen_snowflake_generated_total"

	// MetricClockBackwards 时钟回拨拒绝总数 (Counter)
	MetricClockBackwards = "idgen_clock_backwards_total"

	// MetricSequenceWait 序列号耗尽自旋等待总数 (Counter)
	MetricSequenceWait = "idgen_sequence_wait_total"
)

// generatorMetrics 生成器指标集合。
// 未注入 Meter 时为 nil，所有观测方法对 nil 接收者安全。
type generatorMetrics struct {
	generated     metrics.Counter
	clockBackward metrics.Counter
	sequenceWait  metrics.Counter
}

func newGeneratorMetrics(meter metrics.Meter) *generatorMetrics {
	if meter == nil {
		return nil
	}
	generated, err := meter.Counter(MetricSnowflakeGenerated, "雪花 ID 生成总数")
	if err != nil {
		return nil
	}
	clockBackward, err := meter.Counter(MetricClockBackwards, "时钟回拨拒绝总数")
	if err != nil {
		return nil
	}
	sequenceWait, err := meter.Counter(MetricSequenceWait, "序列号耗尽自旋等待总数")
	if err != nil {
		return nil
	}
	return &generatorMetrics{
		generated:     generated,
		clockBackward: clockBackward,
		sequenceWait:  sequenceWait,
	}
}

func (m *generatorMetrics) observeGenerated() {
	if m == nil {
		return
	}
	m.generated.Inc(context.Background())
}

func (m *generatorMetrics) observeClockBackwards() {
	if m == nil {
		return
	}
	m.clockBackward.Inc(context.Background())
}

func (m *generatorMetrics) observeSequenceWait() {
	if m == nil {
		return
	}
	m.sequenceWait.Inc(context.Background())
}
