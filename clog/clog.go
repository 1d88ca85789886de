package clog

import (
	"fmt"
	"sync/atomic"
)

// ========================================
// 构造函数
// ========================================

// New 创建日志器实例
//
// cfg 为 nil 时使用默认配置（info 级别、console 格式、输出到 stdout）。
//
// 基本用法：
//
//	logger, err := clog.New(&clog.Config{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "stdout",
//	})
//
// 使用函数式选项：
//
//	logger, err := clog.New(cfg,
//	    clog.WithNamespace("id-service"),
//	    clog.WithStandardContext(),
//	)
func New(config *Config, opts ...Option) (Logger, error) {
	if config == nil {
		config = defaultConfig()
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	options := applyOptions(opts...)

	handler, err := newHandler(config, options)
	if err != nil {
		return nil, fmt.Errorf("failed to create handler: %w", err)
	}

	return newLogger(handler, options), nil
}

// ========================================
// 默认日志器
// ========================================

var defaultLogger atomic.Pointer[loggerHolder]

// atomic.Pointer 要求具体类型，接口值需要包一层
type loggerHolder struct {
	logger Logger
}

// Default 返回进程级默认日志器
//
// 未调用 SetDefault 时返回 Discard()，组件库可以放心地
// 用它作为兜底而不产生任何输出。
func Default() Logger {
	if holder := defaultLogger.Load(); holder != nil {
		return holder.logger
	}
	return Discard()
}

// SetDefault 设置进程级默认日志器，并发安全
func SetDefault(logger Logger) {
	if logger == nil {
		logger = Discard()
	}
	defaultLogger.Store(&loggerHolder{logger: logger})
}
