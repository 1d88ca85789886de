// Package clog 是基于 log/slog 的结构化日志组件。
//
// 对外只暴露 Logger 接口和 Field 构造函数，不泄漏 slog 类型，
// 业务代码不需要感知底层实现。支持：
//
//   - 层级命名空间（WithNamespace），标识日志来自哪个组件
//   - Context 字段自动提取（WithContextField / WithStandardContext）
//   - 运行期调级别（SetLevel）
//   - 多档错误字段：Error / ErrorWithCode / ErrorWithStack
//
// 典型用法：
//
//	logger, _ := clog.New(&clog.Config{Level: "info", Format: "console"})
//	logger.Info("generator ready", clog.Int64("worker_id", 3))
//
//	svcLogger, _ := clog.New(&clog.Config{Level: "info"},
//	    clog.WithNamespace("id-service", "api"),
//	    clog.WithStandardContext(),
//	)
//	svcLogger.InfoContext(ctx, "request processed")
package clog

import "context"

// Logger 结构化日志接口。
//
// 五个级别各有带 Context 和不带的版本；Context 版本会按注册的
// 规则从 ctx 提取字段。With 和 WithNamespace 派生子 Logger，
// 父子共享底层 handler，SetLevel 对整棵派生树生效。
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	// Fatal 记录日志后以退出码 1 结束进程
	Fatal(msg string, fields ...Field)

	DebugContext(ctx context.Context, msg string, fields ...Field)
	InfoContext(ctx context.Context, msg string, fields ...Field)
	WarnContext(ctx context.Context, msg string, fields ...Field)
	ErrorContext(ctx context.Context, msg string, fields ...Field)
	FatalContext(ctx context.Context, msg string, fields ...Field)

	// With 派生带预设字段的子 Logger，预设字段出现在每条日志里
	With(fields ...Field) Logger

	// WithNamespace 派生命名空间子 Logger，段追加在现有命名空间之后：
	//
	//	logger, _ := clog.New(cfg, clog.WithNamespace("service"))
	//	apiLogger := logger.WithNamespace("api") // namespace=service.api
	WithNamespace(parts ...string) Logger

	// SetLevel 运行期调整级别，不需要重建 Logger
	SetLevel(level Level) error

	// Flush 刷出缓冲的日志，当前实现是同步写，调用是幂等的
	Flush()
}
