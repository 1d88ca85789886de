package metrics

// Config 指标系统配置，带 mapstructure 标签，可从配置文件加载：
//
//	metrics:
//	  enabled: true
//	  service_name: "id-service"
//	  version: "v1.2.3"
//	  port: 9090
//	  path: "/metrics"
type Config struct {
	// Enabled 为 false 时 New 返回 noop Meter，所有记录都是空操作
	Enabled bool `mapstructure:"enabled"`

	// ServiceName 写进 OTel Resource 的 service.name
	ServiceName string `mapstructure:"service_name"`

	// Version 写进 service.version，面板上区分版本表现
	Version string `mapstructure:"version"`

	// Port 大于 0 时启动 Prometheus 拉取端点
	Port int `mapstructure:"port"`

	// Path 拉取路径，必须以 "/" 开头
	Path string `mapstructure:"path"`
}

// NewDevDefaultConfig 开发环境默认配置：9090 端口、/metrics、版本 dev
func NewDevDefaultConfig(serviceName string) *Config {
	return &Config{
		Enabled:     true,
		ServiceName: serviceName,
		Version:     "dev",
		Port:        9090,
		Path:        "/metrics",
	}
}

// NewProdDefaultConfig 生产默认配置，版本号由调用方显式给出
func NewProdDefaultConfig(serviceName, version string) *Config {
	return &Config{
		Enabled:     true,
		ServiceName: serviceName,
		Version:     version,
		Port:        9090,
		Path:        "/metrics",
	}
}
