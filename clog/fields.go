package clog

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"
)

// Field 是 slog.Attr 的别名，构造字段不引入额外分配
type Field = slog.Attr

// String 字符串字段
func String(k, v string) Field {
	return slog.String(k, v)
}

// Int 整数字段
func Int(k string, v int) Field {
	return slog.Int(k, v)
}

// Int64 64 位整数字段，雪花 ID、worker 编号等用这个
func Int64(k string, v int64) Field {
	return slog.Int64(k, v)
}

// Float64 浮点数字段
func Float64(k string, v float64) Field {
	return slog.Float64(k, v)
}

// Bool 布尔字段
func Bool(k string, v bool) Field {
	return slog.Bool(k, v)
}

// Time 时间字段
func Time(k string, v time.Time) Field {
	return slog.Time(k, v)
}

// Duration 时长字段
func Duration(k string, v time.Duration) Field {
	return slog.Duration(k, v)
}

// Any 任意类型字段，由 slog 决定序列化方式
func Any(k string, v any) Field {
	return slog.Any(k, v)
}

// Error 只记录错误消息的轻量错误字段，输出 err_msg="..."
//
//	logger.Error("mint failed", clog.Error(err))
func Error(err error) Field {
	if err == nil {
		return slog.String("", "")
	}
	return slog.String("err_msg", err.Error())
}

// ErrorWithCode 带业务错误码的错误字段
// 输出嵌套结构 error={msg="...", code="..."}
func ErrorWithCode(err error, code string) Field {
	if err == nil {
		return slog.Group("error", slog.String("code", code))
	}
	return slog.Group("error",
		slog.String("msg", err.Error()),
		slog.String("code", code),
	)
}

// ErrorWithStack 带调用栈的错误字段
// 输出 error={msg="...", type="...", stack="..."}，栈采集有成本，
// 生产路径上只在需要定位问题的日志点使用
func ErrorWithStack(err error) Field {
	if err == nil {
		return slog.String("", "")
	}
	return errGroup(err, "", collectStack(3))
}

// ErrorWithCodeStack 同时带错误码和调用栈，错误字段里信息最全的一种
// 输出 error={msg="...", type="...", code="...", stack="..."}
func ErrorWithCodeStack(err error, code string) Field {
	if err == nil {
		return slog.Group("error", slog.String("code", code))
	}
	return errGroup(err, code, collectStack(3))
}

// errGroup 组装嵌套错误字段，code 和 stack 为空时省略对应键
func errGroup(err error, code, stack string) Field {
	attrs := make([]any, 0, 4)
	attrs = append(attrs,
		slog.String("msg", err.Error()),
		slog.String("type", fmt.Sprintf("%T", err)),
	)
	if code != "" {
		attrs = append(attrs, slog.String("code", code))
	}
	if stack != "" {
		attrs = append(attrs, slog.String("stack", stack))
	}
	return slog.Group("error", attrs...)
}

// collectStack 采集调用栈，skip 跳过字段构造函数自身的帧
func collectStack(skip int) string {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	first := true
	for {
		frame, more := frames.Next()
		if !first {
			fmt.Fprintf(&b, "%s:%d %s\n", frame.File, frame.Line, frame.Function)
		}
		first = false
		if !more {
			break
		}
	}
	return b.String()
}
