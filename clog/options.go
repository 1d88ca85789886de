package clog

import "bytes"

// Option 函数式选项，附加在 New 上配置 Logger
type Option func(*options)

// options Logger 的内部配置
type options struct {
	namespaceParts []string
	contextFields  []ContextField
	buffer         *bytes.Buffer // 仅测试：Output 配成 "buffer" 时的落点
}

// ContextField 描述一条 Context 提取规则：
// 用 Key 去 ctx.Value 取值，取到后以 FieldName 写进日志。
type ContextField struct {
	Key       any
	FieldName string
}

// WithNamespace 设置命名空间，多段以 "." 连接成日志里的 namespace 字段。
//
//	clog.WithNamespace("id-service", "api") // namespace=id-service.api
func WithNamespace(parts ...string) Option {
	return func(o *options) {
		o.namespaceParts = append(o.namespaceParts, parts...)
	}
}

// WithContextField 注册一条自定义的 Context 字段提取规则。
//
//	clog.WithContextField(tenantKey, "tenant")
func WithContextField(key any, fieldName string) Option {
	return func(o *options) {
		o.contextFields = append(o.contextFields, ContextField{
			Key:       key,
			FieldName: fieldName,
		})
	}
}

// WithStandardContext 注册常用的三条提取规则：
// trace_id、user_id、request_id，键和字段名同名。
func WithStandardContext() Option {
	return func(o *options) {
		for _, name := range []string{"trace_id", "user_id", "request_id"} {
			o.contextFields = append(o.contextFields, ContextField{Key: name, FieldName: name})
		}
	}
}

func applyOptions(opts ...Option) *options {
	o := &options{
		namespaceParts: []string{},
		contextFields:  []ContextField{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
