package clog

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level 日志级别，数值与 slog 对齐，FatalLevel 是 clog 自己的扩展
type Level int

const (
	DebugLevel Level = iota - 4
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel // 记录后进程退出
)

var levelNames = map[Level]string{
	DebugLevel: "debug",
	InfoLevel:  "info",
	WarnLevel:  "warn",
	ErrorLevel: "error",
	FatalLevel: "fatal",
}

// String 返回级别的小写名称，未知值渲染为 level(N)
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", l)
}

// ParseLevel 解析级别字符串，不区分大小写。
// 解析失败返回 InfoLevel 和错误，调用方可以选择忽略错误按 info 继续。
func ParseLevel(s string) (Level, error) {
	want := strings.ToLower(s)
	for level, name := range levelNames {
		if name == want {
			return level, nil
		}
	}
	return InfoLevel, fmt.Errorf("unknown log level: %s", s)
}

// toSlogLevel 映射到 slog.Level。
// slog 没有 Fatal 常量，用 Error+4 占位，handler 按阈值渲染成 FATAL。
func toSlogLevel(level Level) slog.Level {
	switch level {
	case DebugLevel:
		return slog.LevelDebug
	case InfoLevel:
		return slog.LevelInfo
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	case FatalLevel:
		return slog.LevelError + 4
	}
	return slog.LevelInfo
}
