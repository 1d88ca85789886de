package idgen

import (
	"github.com/ceyewan/snowid/xerrors"
)

// GeneratorConfig 雪花生成器配置。
//
// 构造后不可变，所有字段在 New 时校验。两个 ID 各占 5 bit，
// 部署多于一个节点时必须配置互不相同的组合，否则可能产生碰撞。
type GeneratorConfig struct {
	// WorkerID 工作节点 ID [0, 31]
	WorkerID int64 `yaml:"worker_id" json:"worker_id" mapstructure:"worker_id"`

	// DatacenterID 数据中心 ID [0, 31]，可选，默认 0
	DatacenterID int64 `yaml:"datacenter_id" json:"datacenter_id" mapstructure:"datacenter_id"`
}

func (c *GeneratorConfig) validate() error {
	if c.WorkerID < 0 || c.WorkerID > maxWorkerID {
		return xerrors.WithCode(ErrInvalidConfig, "worker_id_out_of_range")
	}
	if c.DatacenterID < 0 || c.DatacenterID > maxDatacenterID {
		return xerrors.WithCode(ErrInvalidConfig, "datacenter_id_out_of_range")
	}
	return nil
}
