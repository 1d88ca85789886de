package metrics

// Label 指标的一个维度，对应 Prometheus 的 label。
//
// 建议键用小写加下划线，值保持低基数：worker 编号、状态类这种
// 可枚举的值适合做标签，雪花 ID、请求 ID 这类高基数值不要放进来。
type Label struct {
	Key   string
	Value string
}

// L 构造标签的简写。
//
//	minted.Inc(ctx, metrics.L("worker", "3"), metrics.L("outcome", "success"))
func L(key, value string) Label {
	return Label{Key: key, Value: value}
}
