// Package db 提供了基于 GORM 的数据库组件，支持分库分表功能。
//
// db 组件在连接器（MySQL/PostgreSQL/SQLite）的基础上提供了：
// - GORM ORM 功能封装
// - 事务管理支持
// - 分库分表能力（基于 gorm.io/sharding），分片表主键由本地雪花生成器铸造
// - 与基础组件（日志、指标、追踪、错误）的深度集成
//
// ## 基本使用
//
//	sqliteConn, _ := connector.NewSQLite(&cfg.SQLite, connector.WithLogger(logger))
//	defer sqliteConn.Close()
//	sqliteConn.Connect(ctx)
//
//	database, _ := db.New(&db.Config{
//		Driver:         "sqlite",
//		EnableSharding: true,
//		ShardingRules: []db.ShardingRule{
//			{
//				ShardingKey:    "user_id",
//				NumberOfShards: 64,
//				Tables:         []string{"orders"},
//			},
//		},
//	}, db.WithSQLiteConnector(sqliteConn), db.WithLogger(logger))
//
//	// 使用 GORM 进行数据库操作
//	gormDB := database.DB(ctx)
//	var users []User
//	gormDB.Where("status = ?", "active").Find(&users)
//
//	// 事务操作
//	err := database.Transaction(ctx, func(ctx context.Context, tx *gorm.DB) error {
//		return tx.Create(&User{Name: "test"}).Error
//	})
//
// ## 分片主键
//
// 启用分片后，插入语句缺失的主键由注入的 idgen.Generator 生成
// （未注入时使用进程默认生成器）。同一张逻辑表的所有分片共享同一个
// 生成器实例，主键保持全局趋势递增。
//
// ## 设计原则
//
// - **借用模型**：db 组件借用连接器的连接，不负责连接的生命周期
// - **显式依赖**：通过构造函数显式注入连接器和选项
// - **可观测性**：集成 clog、metrics 与 otelgorm
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/gorm"
	"gorm.io/sharding"

	"github.com/ceyewan/snowid/clog"
	"github.com/ceyewan/snowid/idgen"
	"github.com/ceyewan/snowid/xerrors"
)

// database 是 DB 接口的实现
type database struct {
	client *gorm.DB
	logger clog.Logger
	mx     *dbMetrics
}

// DB 定义了数据库组件的核心能力
type DB interface {
	// DB 获取底层的 *gorm.DB 实例
	// 绝大多数业务查询直接使用此方法返回的对象
	DB(ctx context.Context) *gorm.DB

	// Transaction 执行事务操作
	// fn 中的 tx 对象仅在当前事务范围内有效
	Transaction(ctx context.Context, fn func(ctx context.Context, tx *gorm.DB) error) error

	// Close 关闭组件
	Close() error
}

// New 创建数据库组件实例
//
// 连接器通过选项注入，必须与 cfg.Driver 匹配且已完成 Connect：
//
//	database, _ := db.New(&db.Config{Driver: "mysql"},
//	    db.WithMySQLConnector(mysqlConn),
//	    db.WithLogger(logger),
//	)
func New(cfg *Config, opts ...Option) (DB, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opt := options{}
	for _, o := range opts {
		o(&opt)
	}
	if opt.logger == nil {
		opt.logger = clog.Default().WithNamespace("db")
	}

	client, err := resolveClient(cfg, &opt)
	if err != nil {
		return nil, err
	}

	// 注册 OpenTelemetry 追踪插件
	if opt.tracer != nil {
		plugin := otelgorm.NewPlugin(otelgorm.WithTracerProvider(opt.tracer))
		if err := client.Use(plugin); err != nil {
			return nil, xerrors.Wrapf(err, "db: failed to register otelgorm plugin")
		}
	}

	// 注册分片中间件，主键由本地生成器铸造
	if cfg.EnableSharding && len(cfg.ShardingRules) > 0 {
		gen := opt.generator
		if gen == nil {
			gen = idgen.Default()
		}
		pkFn := primaryKeyFn(gen, opt.logger)

		for _, rule := range cfg.ShardingRules {
			tables := make([]interface{}, len(rule.Tables))
			for i, v := range rule.Tables {
				tables[i] = v
			}

			middleware := sharding.Register(sharding.Config{
				ShardingKey:           rule.ShardingKey,
				NumberOfShards:        rule.NumberOfShards,
				PrimaryKeyGenerator:   sharding.PKCustom,
				PrimaryKeyGeneratorFn: pkFn,
			}, tables...)

			if err := client.Use(middleware); err != nil {
				return nil, xerrors.Wrapf(err, "db: failed to register sharding middleware for tables %v", rule.Tables)
			}
		}
	}

	// 派生使用 clog 适配器的会话，不影响连接器持有的原始实例日志配置
	client = client.Session(&gorm.Session{
		Logger: newGormLogger(opt.logger, opt.silentMode),
	})

	return &database{
		client: client,
		logger: opt.logger,
		mx:     newDBMetrics(opt.meter),
	}, nil
}

// resolveClient 根据 Driver 从对应连接器借用 gorm 客户端
func resolveClient(cfg *Config, opt *options) (*gorm.DB, error) {
	var client *gorm.DB
	switch cfg.Driver {
	case "mysql":
		if opt.mysqlConnector == nil {
			return nil, ErrMySQLConnectorRequired
		}
		client = opt.mysqlConnector.GetClient()
	case "postgresql":
		if opt.postgresqlConnector == nil {
			return nil, ErrPostgreSQLConnectorRequired
		}
		client = opt.postgresqlConnector.GetClient()
	case "sqlite":
		if opt.sqliteConnector == nil {
			return nil, ErrSQLiteConnectorRequired
		}
		client = opt.sqliteConnector.GetClient()
	}
	if client == nil {
		return nil, xerrors.Wrapf(ErrNotConnected, "driver %s", cfg.Driver)
	}
	return client, nil
}

// primaryKeyFn 将生成器适配为 sharding 插件的主键回调。
// 插件回调没有错误通路：时钟回拨期间短暂等待重试，超出期限视为环境故障。
func primaryKeyFn(gen idgen.Generator, logger clog.Logger) func(int64) int64 {
	return func(int64) int64 {
		id, err := gen.Next()
		if err == nil {
			return id.Int64()
		}
		logger.Warn("primary key generation failed, waiting for clock", clog.Error(err))

		deadline := time.Now().Add(3 * time.Second)
		for time.Now().Before(deadline) {
			time.Sleep(time.Millisecond)
			if id, err = gen.Next(); err == nil {
				return id.Int64()
			}
		}
		panic(fmt.Sprintf("db: primary key generation failed: %v", err))
	}
}

// DB 获取底层的 *gorm.DB 实例
func (d *database) DB(ctx context.Context) *gorm.DB {
	return d.client.WithContext(ctx)
}

// Transaction 执行事务操作
func (d *database) Transaction(ctx context.Context, fn func(ctx context.Context, tx *gorm.DB) error) error {
	err := d.client.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, tx)
	})
	d.mx.observeTransaction(ctx, err)
	return err
}

// Close 关闭组件
func (d *database) Close() error {
	// GORM 的连接由连接器管理，这里不需要额外关闭
	return nil
}
