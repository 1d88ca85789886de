package idgen

import (
	"strconv"
	"time"

	"github.com/ceyewan/snowid/xerrors"
)

// 位布局（自高位到低位）：1 bit 符号位（恒为 0）| 41 bit 时间戳增量 |
// 5 bit 数据中心 | 5 bit 工作节点 | 12 bit 序列号。
const (
	// epochMillis 自定义纪元 2015-01-01T00:00:00Z 的毫秒时间戳。
	// 41 bit 增量自该纪元起可支撑约 69 年的发号。
	epochMillis int64 = 1420070400000

	workerIDBits     = 5
	datacenterIDBits = 5
	sequenceBits     = 12

	maxWorkerID     = -1 ^ (-1 << workerIDBits)     // 31
	maxDatacenterID = -1 ^ (-1 << datacenterIDBits) // 31
	sequenceMask    = -1 ^ (-1 << sequenceBits)     // 4095

	workerIDShift     = sequenceBits                                   // 12
	datacenterIDShift = sequenceBits + workerIDBits                    // 17
	timestampShift    = sequenceBits + workerIDBits + datacenterIDBits // 22
)

// ID 64 位雪花 ID。
//
// 同一实例先后生成的两个 ID 按有符号整数比较严格递增。
// 四个字段可通过 Time/Datacenter/Worker/Sequence 逆向分解。
type ID int64

// Parse 解析十进制字符串形式的 ID
func Parse(s string) (ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, xerrors.Wrapf(ErrInvalidID, "parse %q: %v", s, err)
	}
	if n < 0 {
		return 0, xerrors.Wrapf(ErrInvalidID, "parse %q: negative value", s)
	}
	return ID(n), nil
}

// Int64 返回 int64 形式的 ID
func (id ID) Int64() int64 {
	return int64(id)
}

// String 返回十进制字符串形式的 ID
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Time 返回 ID 的铸造时间（毫秒精度）
func (id ID) Time() time.Time {
	return time.UnixMilli(int64(id)>>timestampShift + epochMillis)
}

// Datacenter 返回 ID 中的数据中心字段
func (id ID) Datacenter() int64 {
	return (int64(id) >> datacenterIDShift) & maxDatacenterID
}

// Worker 返回 ID 中的工作节点字段
func (id ID) Worker() int64 {
	return (int64(id) >> workerIDShift) & maxWorkerID
}

// Sequence 返回 ID 中的序列号字段
func (id ID) Sequence() int64 {
	return int64(id) & sequenceMask
}

// MarshalJSON 将 ID 序列化为 JSON 字符串。
//
// 64 位整数超出 JavaScript Number 的 53 bit 精度，
// 一律以字符串形式输出避免前端截断。
func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.String() + `"`), nil
}

// UnmarshalJSON 接受字符串与裸数字两种形式
func (id *ID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
