package idgen

import (
	"runtime"
	"sync"
	"time"

	"github.com/ceyewan/snowid/clog"
)

// snowflakeGenerator 雪花算法生成器。
//
// lastTime 与 sequence 必须作为一对读改写，整个分配过程
// （取时钟、比较、更新序列号、拼装字段）是 mu 保护下的单一临界区。
type snowflakeGenerator struct {
	mu       sync.Mutex
	workerID int64
	dcID     int64
	sequence int64
	lastTime int64 // epoch 毫秒，-1 表示从未发号

	// now 时钟源，测试中可替换
	now func() int64

	logger clog.Logger
	mx     *generatorMetrics
}

// New 创建雪花生成器。
//
// cfg 为 nil 时等价于零值配置（worker=0, datacenter=0），单节点部署合法，
// 多节点部署必须显式配置互不相同的组合。配置越界返回 ErrInvalidConfig。
//
// 使用示例:
//
//	gen, err := idgen.New(&idgen.GeneratorConfig{
//	    WorkerID:     3,
//	    DatacenterID: 1,
//	}, idgen.WithLogger(logger))
//	if err != nil {
//	    panic(err)
//	}
//	id, err := gen.Next()
func New(cfg *GeneratorConfig, opts ...Option) (Generator, error) {
	if cfg == nil {
		cfg = &GeneratorConfig{}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opt := Options{}
	for _, o := range opts {
		o(&opt)
	}
	logger := opt.Logger
	if logger == nil {
		logger = clog.Default()
	}
	logger = logger.With(clog.String("component", "idgen"))

	g := &snowflakeGenerator{
		workerID: cfg.WorkerID,
		dcID:     cfg.DatacenterID,
		lastTime: -1,
		now:      func() int64 { return time.Now().UnixMilli() },
		logger:   logger,
		mx:       newGeneratorMetrics(opt.Meter),
	}

	g.logger.Info("snowflake generator created",
		clog.Int64("worker_id", g.workerID),
		clog.Int64("datacenter_id", g.dcID),
	)

	return g, nil
}

// Next 生成下一个 ID
func (g *snowflakeGenerator) Next() (ID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()

	// 时钟回拨：立即失败，状态不变。不等待、不复用 lastTime，
	// 静默补偿会掩盖系统性时钟问题。
	if now < g.lastTime {
		drift := time.Duration(g.lastTime-now) * time.Millisecond
		g.mx.observeClockBackwards()
		g.logger.Error("clock moved backwards, refusing to generate",
			clog.Duration("drift", drift))
		return 0, &ClockBackwardsError{Drift: drift}
	}

	if now == g.lastTime {
		g.sequence = (g.sequence + 1) & sequenceMask
		if g.sequence == 0 {
			// 同一毫秒内 4096 个序列号耗尽，自旋等待时钟进入下一毫秒
			g.mx.observeSequenceWait()
			for now <= g.lastTime {
				runtime.Gosched()
				now = g.now()
			}
		}
	} else {
		g.sequence = 0
	}

	g.lastTime = now

	id := ID((now-epochMillis)<<timestampShift |
		g.dcID<<datacenterIDShift |
		g.workerID<<workerIDShift |
		g.sequence)

	g.mx.observeGenerated()
	return id, nil
}

// NextString 生成下一个 ID 的十进制字符串形式
func (g *snowflakeGenerator) NextString() (string, error) {
	id, err := g.Next()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
