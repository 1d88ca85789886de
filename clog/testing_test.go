package clog

import "bytes"

// withBuffer 测试专用选项：配合 Output: "buffer" 把日志捕获进内存，
// 用例里直接断言输出内容。
func withBuffer(buf *bytes.Buffer) Option {
	return func(o *options) {
		o.buffer = buf
	}
}
