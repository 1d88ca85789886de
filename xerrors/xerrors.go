// Package xerrors 提供标准化错误处理工具。
//
// 约定：各组件用 New 定义包级哨兵错误（"pkg: message" 前缀），用
// Wrap/Wrapf 附加上下文，用 WithCode 附加机器可读错误码。调用方通过
// Is 判断错误类别，通过 GetCode 提取错误码做分支处理。
//
//	var ErrConfigNil = xerrors.New("idgen: config is nil")
//
//	if err := cfg.validate(); err != nil {
//	    return xerrors.WithCode(err, "worker_id_out_of_range")
//	}
package xerrors

import (
	"errors"
	"fmt"
)

// ========================================
// 通用哨兵错误 (Common Sentinels)
// ========================================

// 跨组件复用的错误类别。组件自己的哨兵错误应组合这些类别
// (通过 Wrap) 或独立定义，取决于调用方是否需要跨组件统一判断。
var (
	// ErrInvalidInput 输入参数或配置非法
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound 目标不存在
	ErrNotFound = errors.New("not found")

	// ErrTimeout 操作超时
	ErrTimeout = errors.New("timeout")

	// ErrUnavailable 依赖不可用
	ErrUnavailable = errors.New("unavailable")
)

// ========================================
// 错误包装 (Wrapping)
// ========================================

// Wrap 用上下文信息包装错误，保留错误链。err 为 nil 时返回 nil。
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf 用格式化的上下文信息包装错误。err 为 nil 时返回 nil。
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ========================================
// 错误码 (Error Codes)
// ========================================

// WithCode 用错误码包装错误。错误码应为 snake_case 的稳定标识，
// 供调用方做机器判断，不面向最终用户展示。
func WithCode(err error, code string) error {
	if err == nil {
		return nil
	}
	return &CodedError{Code: code, Cause: err}
}

// CodedError 带有机器可读错误码的错误。
type CodedError struct {
	Code  string
	Cause error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %v", e.Code, e.Cause)
	}
	return fmt.Sprintf("[%s]", e.Code)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// GetCode 从错误链中提取最外层错误码，没有则返回空串。
func GetCode(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

// ========================================
// 初始化断言 (Init-time Assertions)
// ========================================

// Must 如果 err 不为 nil，则 panic。仅用于初始化阶段。
func Must[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("must: %v", err))
	}
	return v
}

// MustOK 如果 ok 为 false，则 panic。
func MustOK[T any](v T, ok bool) T {
	if !ok {
		panic("assertion failed")
	}
	return v
}

// ========================================
// 多错误聚合 (Aggregation)
// ========================================

// Collector 收集多个错误，保留第一个。适合一串顺序操作只关心
// 首个失败的场景。
type Collector struct {
	err error
}

func (c *Collector) Collect(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

func (c *Collector) Err() error {
	return c.err
}

// MultiError 合并多个错误。
type MultiError struct {
	Errors []error
}

func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}
	return fmt.Sprintf("%v (and %d more errors)", m.Errors[0], len(m.Errors)-1)
}

func (m *MultiError) Unwrap() []error {
	return m.Errors
}

// Combine 将多个错误合并为一个。全为 nil 时返回 nil，恰有一个
// 非 nil 时原样返回。
func Combine(errs ...error) error {
	var nonNil []error
	for _, err := range errs {
		if err != nil {
			nonNil = append(nonNil, err)
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return &MultiError{Errors: nonNil}
	}
}

// 标准库函数再导出，使用方无需同时导入 errors 和 xerrors。
var (
	New    = errors.New
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)
