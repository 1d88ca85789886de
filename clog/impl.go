package clog

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"
)

// slogLogger 基于 slog.Handler 的 Logger 实现。
// handler 在派生 Logger 间共享，preset 和 opts 写时复制。
type slogLogger struct {
	handler slog.Handler
	opts    *options
	preset  []slog.Attr
}

func newLogger(handler slog.Handler, opts *options) Logger {
	return &slogLogger{
		handler: handler,
		opts:    opts,
		preset:  []slog.Attr{},
	}
}

func (l *slogLogger) Debug(msg string, fields ...Field) {
	l.log(context.Background(), DebugLevel, msg, fields)
}

func (l *slogLogger) Info(msg string, fields ...Field) {
	l.log(context.Background(), InfoLevel, msg, fields)
}

func (l *slogLogger) Warn(msg string, fields ...Field) {
	l.log(context.Background(), WarnLevel, msg, fields)
}

func (l *slogLogger) Error(msg string, fields ...Field) {
	l.log(context.Background(), ErrorLevel, msg, fields)
}

func (l *slogLogger) Fatal(msg string, fields ...Field) {
	l.log(context.Background(), FatalLevel, msg, fields)
}

func (l *slogLogger) DebugContext(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, DebugLevel, msg, fields)
}

func (l *slogLogger) InfoContext(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, InfoLevel, msg, fields)
}

func (l *slogLogger) WarnContext(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, WarnLevel, msg, fields)
}

func (l *slogLogger) ErrorContext(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, ErrorLevel, msg, fields)
}

func (l *slogLogger) FatalContext(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, FatalLevel, msg, fields)
}

// With 派生带预设字段的子 Logger。
// preset 必须整体复制：直接 append 会让兄弟 Logger 共享底层数组。
func (l *slogLogger) With(fields ...Field) Logger {
	preset := make([]slog.Attr, 0, len(l.preset)+len(fields))
	preset = append(preset, l.preset...)
	preset = append(preset, fields...)

	return &slogLogger{
		handler: l.handler,
		opts:    l.opts,
		preset:  preset,
	}
}

// WithNamespace 派生追加了命名空间段的子 Logger，opts 同样写时复制
func (l *slogLogger) WithNamespace(parts ...string) Logger {
	child := *l.opts
	child.namespaceParts = make([]string, 0, len(l.opts.namespaceParts)+len(parts))
	child.namespaceParts = append(child.namespaceParts, l.opts.namespaceParts...)
	child.namespaceParts = append(child.namespaceParts, parts...)

	return &slogLogger{
		handler: l.handler,
		opts:    &child,
		preset:  l.preset,
	}
}

// SetLevel 透传给 handler 的 LevelVar，所有派生 Logger 一起生效
func (l *slogLogger) SetLevel(level Level) error {
	if h, ok := l.handler.(interface{ SetLevel(Level) error }); ok {
		return h.SetLevel(level)
	}
	return nil
}

func (l *slogLogger) Flush() {
	if h, ok := l.handler.(interface{ Flush() }); ok {
		h.Flush()
	}
}

func (l *slogLogger) log(ctx context.Context, level Level, msg string, fields []Field) {
	slogLevel := toSlogLevel(level)

	// 先走 Enabled，直接 Handle 会绕过级别过滤
	if !l.handler.Enabled(ctx, slogLevel) {
		return
	}

	// 属性顺序：preset -> 调用点 fields -> Context 提取 -> namespace
	attrs := make([]slog.Attr, 0, len(l.preset)+len(fields)+4)
	attrs = append(attrs, l.preset...)
	attrs = append(attrs, fields...)
	attrs = l.opts.contextAttrs(ctx, attrs)
	attrs = l.opts.namespaceAttrs(attrs)

	// skip 3 帧：runtime.Callers、log、Debug/Info 等入口
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	record := slog.NewRecord(time.Now(), slogLevel, msg, pcs[0])
	record.AddAttrs(attrs...)

	if err := l.handler.Handle(ctx, record); err != nil {
		return
	}

	if level == FatalLevel {
		os.Exit(1)
	}
}
