package clog

import (
	"log/slog"
	"strings"
)

// NamespaceKey 命名空间在日志里的字段名
const NamespaceKey = "namespace"

// namespace 把各级命名空间段连成完整字符串，未配置时为空
func (o *options) namespace() string {
	if o == nil || len(o.namespaceParts) == 0 {
		return ""
	}
	return strings.Join(o.namespaceParts, ".")
}

// namespaceAttrs 追加 namespace 字段，空命名空间不写
func (o *options) namespaceAttrs(attrs []slog.Attr) []slog.Attr {
	if ns := o.namespace(); ns != "" {
		attrs = append(attrs, slog.String(NamespaceKey, ns))
	}
	return attrs
}
