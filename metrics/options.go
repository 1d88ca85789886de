package metrics

import "github.com/ceyewan/snowid/clog"

// Option 配置 Meter 实例
type Option func(*options)

type options struct {
	logger clog.Logger
}

// WithLogger 注入日志器，组件会追加 "metrics" 命名空间。
// 不注入时用 clog.Default() 兜底（未 SetDefault 则静默）。
func WithLogger(logger clog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger.WithNamespace("metrics")
		}
	}
}
