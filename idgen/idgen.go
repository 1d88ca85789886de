// Package idgen 提供进程内的分布式唯一 ID 生成能力。
//
// 核心是雪花算法（Snowflake）生成器：64 bit 有符号整数，按
// 1 bit 符号位 | 41 bit 毫秒时间戳增量 | 5 bit 数据中心 | 5 bit 工作节点 |
// 12 bit 序列号 布局，自定义纪元为 2015-01-01T00:00:00Z。同一实例生成的
// ID 严格单调递增，同一毫秒内依靠序列号区分，序列号耗尽时自旋等待下一毫秒。
//
// 集群中的多台机器无需中心协调即可各自发号，前提是为每个节点配置
// 互不相同的 (DatacenterID, WorkerID) 组合。WorkerID 的跨进程分配
// （协调服务、租约等）不属于本包职责。
//
// 基本使用：
//
//	gen, err := idgen.New(&idgen.GeneratorConfig{WorkerID: 3, DatacenterID: 1})
//	if err != nil {
//	    panic(err)
//	}
//	id, err := gen.Next()
//	fmt.Println(id.String(), id.Time(), id.Worker(), id.Sequence())
//
// 进程级默认生成器（初始化一次，全进程共享）：
//
//	if err := idgen.Configure(&idgen.GeneratorConfig{WorkerID: 3}); err != nil {
//	    panic(err)
//	}
//	id, _ := idgen.Next()
//
// 时钟回拨是显式失败状态：Next 返回 *ClockBackwardsError（可用
// errors.Is(err, ErrClockBackwards) 判定），生成器不做内部补偿。
package idgen

import (
	"sync/atomic"
)

// ========================================
// 接口定义 (Interface Definitions)
// ========================================

// Generator 雪花 ID 生成器接口
type Generator interface {
	// Next 生成下一个 ID。
	// 时钟回拨时返回 *ClockBackwardsError，生成器状态保持不变。
	Next() (ID, error)

	// NextString 生成下一个 ID 的十进制字符串形式
	NextString() (string, error)
}

// ========================================
// 进程级默认生成器 (Process-wide Default)
// ========================================

// generatorHolder 包装接口值以满足 atomic.Pointer 对具体类型的要求
type generatorHolder struct {
	gen Generator
}

var defaultHolder atomic.Pointer[generatorHolder]

// Configure 安装进程级默认生成器。
//
// 应在进程启动时、任何 Next 调用之前完成（配置先行于发号的顺序
// 由调用方保证）。重复调用会替换默认生成器。配置越界返回
// ErrInvalidConfig，此时进程不应继续对外服务。
func Configure(cfg *GeneratorConfig, opts ...Option) error {
	gen, err := New(cfg, opts...)
	if err != nil {
		return err
	}
	defaultHolder.Store(&generatorHolder{gen: gen})
	return nil
}

// Default 返回进程级默认生成器。
//
// 未经 Configure 的进程使用零值配置（worker=0, datacenter=0），
// 单节点合法，多节点部署时可能碰撞。
func Default() Generator {
	if h := defaultHolder.Load(); h != nil {
		return h.gen
	}
	gen, _ := New(nil) // 零值配置不会校验失败
	defaultHolder.CompareAndSwap(nil, &generatorHolder{gen: gen})
	return defaultHolder.Load().gen
}

// Next 使用进程级默认生成器生成 ID
func Next() (ID, error) {
	return Default().Next()
}

// NextString 使用进程级默认生成器生成十进制字符串 ID
func NextString() (string, error) {
	return Default().NextString()
}
