package idgen

import (
	"fmt"
	"time"

	"github.com/ceyewan/snowid/xerrors"
)

var (
	// ErrInvalidConfig 配置越界（WorkerID / DatacenterID 超出 5 bit 范围）
	ErrInvalidConfig = xerrors.New("idgen: invalid generator config")

	// ErrClockBackwards 时钟回拨
	ErrClockBackwards = xerrors.New("idgen: clock moved backwards")

	// ErrInvalidID 字符串无法解析为合法 ID
	ErrInvalidID = xerrors.New("idgen: invalid id")
)

// ClockBackwardsError 时钟回拨错误，携带回拨幅度。
//
// 生成器检测到当前时钟早于上次发号时间时返回此错误，
// 不做任何内部补偿或等待，由调用方决定重试、告警或中止。
// 通过 errors.Is(err, ErrClockBackwards) 判定类别，
// 通过 errors.As 取出回拨幅度：
//
//	var cbe *idgen.ClockBackwardsError
//	if errors.As(err, &cbe) {
//	    logger.Warn("clock drift", clog.Duration("magnitude", cbe.Drift))
//	}
type ClockBackwardsError struct {
	// Drift 回拨幅度（上次发号时间 - 当前时钟）
	Drift time.Duration
}

func (e *ClockBackwardsError) Error() string {
	return fmt.Sprintf("idgen: clock moved backwards by %v", e.Drift)
}

func (e *ClockBackwardsError) Unwrap() error {
	return ErrClockBackwards
}
