package clog

import (
	"context"
	"log/slog"
)

// contextAttrs 按注册的提取规则从 ctx 取值追加到 attrs。
// ctx 里没有对应键的规则直接跳过，不产生空字段。
func (o *options) contextAttrs(ctx context.Context, attrs []slog.Attr) []slog.Attr {
	if ctx == nil || o == nil || len(o.contextFields) == 0 {
		return attrs
	}
	for _, cf := range o.contextFields {
		if val := ctx.Value(cf.Key); val != nil {
			attrs = append(attrs, slog.Any(cf.FieldName, val))
		}
	}
	return attrs
}
