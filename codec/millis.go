package codec

import (
	"strconv"
	"time"
)

// Millis Unix 毫秒时间戳。
//
// 文档中的时间字段统一以毫秒整数落盘：JSON 与 MessagePack 两种方言下
// 的字节表示一致，且与 idgen.ID 内嵌的毫秒时间戳同精度，便于直接比较。
type Millis int64

// NowMillis 返回当前时刻
func NowMillis() Millis {
	return Millis(time.Now().UnixMilli())
}

// NewMillis 将 time.Time 转换为毫秒时间戳
func NewMillis(t time.Time) Millis {
	return Millis(t.UnixMilli())
}

// Time 还原为 time.Time（毫秒精度）
func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(m))
}

// Add 平移时间戳
func (m Millis) Add(d time.Duration) Millis {
	return m + Millis(d.Milliseconds())
}

// String 返回 RFC3339 形式，用于日志
func (m Millis) String() string {
	return m.Time().UTC().Format(time.RFC3339Nano)
}

// UnmarshalJSON 接受毫秒整数与 RFC3339 字符串两种形式
func (m *Millis) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		t, err := time.Parse(time.RFC3339Nano, s[1:len(s)-1])
		if err != nil {
			return err
		}
		*m = NewMillis(t)
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*m = Millis(n)
	return nil
}
