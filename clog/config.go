package clog

import (
	"fmt"
	"strings"
)

// TimeFormat 日志时间戳的统一格式，毫秒精度带时区
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Config 日志配置。
// 零值字段在 validate 时落到默认：info 级别、console 格式、stdout 输出。
//
//	cfg := &clog.Config{
//	    Level:     "info",
//	    Format:    "json",
//	    Output:    "/var/log/snowid.log",
//	    AddSource: true,
//	}
type Config struct {
	// Level 日志级别：debug|info|warn|error|fatal
	Level string `json:"level" yaml:"level"`
	// Format 输出格式：json 给采集器，console 给人看
	Format string `json:"format" yaml:"format"`
	// Output 输出目标：stdout、stderr 或文件路径
	Output string `json:"output" yaml:"output"`
	// EnableColor 彩色输出，只对 console 格式生效
	EnableColor bool `json:"enableColor" yaml:"enableColor"`
	// AddSource 记录调用位置（caller 字段）
	AddSource bool `json:"addSource" yaml:"addSource"`
	// SourceRoot 裁剪 caller 路径时使用的项目根
	SourceRoot string `json:"sourceRoot" yaml:"sourceRoot"`
}

// defaultConfig 开发环境友好的默认值
func defaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "console",
		Output: "stdout",
	}
}

// validate 补默认值并校验枚举字段。
// Output 可能是任意文件路径，不在这里校验，打开失败由 newHandler 上报。
func (c *Config) validate() error {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}

	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Format) {
	case "json", "console":
		return nil
	}
	return fmt.Errorf("invalid format: %s, must be json or console", c.Format)
}
