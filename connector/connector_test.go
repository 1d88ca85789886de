package connector

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/ceyewan/snowid/clog"
	"github.com/ceyewan/snowid/metrics"
	"github.com/ceyewan/snowid/xerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMySQLConfigValidation 测试 MySQL 配置验证
func TestMySQLConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *MySQLConfig
		wantErr     bool
		errContains string
	}{
		{
			name: "valid config with defaults",
			cfg: &MySQLConfig{
				Host:     "localhost",
				Username: "root",
				Database: "test",
			},
			wantErr: false,
		},
		{
			name: "dsn bypasses field checks",
			cfg: &MySQLConfig{
				DSN: "root:pass@tcp(localhost:3306)/test",
			},
			wantErr: false,
		},
		{
			name: "empty host should fail",
			cfg: &MySQLConfig{
				Username: "root",
				Database: "test",
			},
			wantErr:     true,
			errContains: "主机地址不能为空",
		},
		{
			name: "empty username should fail",
			cfg: &MySQLConfig{
				Host:     "localhost",
				Database: "test",
			},
			wantErr:     true,
			errContains: "用户名不能为空",
		},
		{
			name: "empty database should fail",
			cfg: &MySQLConfig{
				Host:     "localhost",
				Username: "root",
			},
			wantErr:     true,
			errContains: "数据库名不能为空",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, tt.cfg.Name)
				assert.Greater(t, tt.cfg.Port, 0)
				assert.Greater(t, tt.cfg.MaxIdleConns, 0)
				assert.Greater(t, tt.cfg.MaxOpenConns, 0)
			}
		})
	}
}

// TestPostgreSQLConfigValidation 测试 PostgreSQL 配置验证
func TestPostgreSQLConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *PostgreSQLConfig
		wantErr     bool
		errContains string
	}{
		{
			name: "valid config with defaults",
			cfg: &PostgreSQLConfig{
				Host:     "localhost",
				Username: "postgres",
				Database: "test",
			},
			wantErr: false,
		},
		{
			name: "dsn bypasses field checks",
			cfg: &PostgreSQLConfig{
				DSN: "host=localhost user=postgres dbname=test",
			},
			wantErr: false,
		},
		{
			name:        "empty host should fail",
			cfg:         &PostgreSQLConfig{Username: "postgres", Database: "test"},
			wantErr:     true,
			errContains: "主机地址不能为空",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "default", tt.cfg.Name)
				assert.Equal(t, 5432, tt.cfg.Port)
				assert.Equal(t, "disable", tt.cfg.SSLMode)
				assert.Equal(t, "UTC", tt.cfg.Timezone)
			}
		})
	}
}

// TestSQLiteConfigValidation 测试 SQLite 配置验证
func TestSQLiteConfigValidation(t *testing.T) {
	t.Run("valid in-memory config", func(t *testing.T) {
		cfg := &SQLiteConfig{
			Path: "file::memory:?cache=shared",
		}
		conn, err := NewSQLite(cfg)
		require.NoError(t, err)
		assert.NotNil(t, conn)
		conn.Close()
	})

	t.Run("valid file path", func(t *testing.T) {
		cfg := &SQLiteConfig{
			Path: t.TempDir() + "/test.db",
		}
		conn, err := NewSQLite(cfg)
		require.NoError(t, err)
		assert.NotNil(t, conn)
		conn.Close()
	})

	t.Run("empty path should fail", func(t *testing.T) {
		cfg := &SQLiteConfig{}
		conn, err := NewSQLite(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "path is required")
		assert.Nil(t, conn)
	})
}

// TestConnectorOptions 测试连接器选项
func TestConnectorOptions(t *testing.T) {
	t.Run("WithLogger", func(t *testing.T) {
		cfg := &SQLiteConfig{Path: "file::memory:?cache=shared"}
		logger := clog.Discard()

		conn, err := NewSQLite(cfg, WithLogger(logger))
		require.NoError(t, err)
		assert.NotNil(t, conn)
		conn.Close()
	})

	t.Run("WithMeter", func(t *testing.T) {
		cfg := &SQLiteConfig{Path: "file::memory:?cache=shared"}
		meter := metrics.Discard()

		conn, err := NewSQLite(cfg, WithMeter(meter))
		require.NoError(t, err)
		assert.NotNil(t, conn)
		conn.Close()
	})

	t.Run("WithLoggerAndMeter", func(t *testing.T) {
		cfg := &SQLiteConfig{Path: "file::memory:?cache=shared"}

		conn, err := NewSQLite(cfg, WithLogger(clog.Discard()), WithMeter(metrics.Discard()))
		require.NoError(t, err)
		assert.NotNil(t, conn)
		conn.Close()
	})
}

// TestConnectorInterface 测试连接器接口实现
func TestConnectorInterface(t *testing.T) {
	t.Run("SQLite connector implements interface", func(t *testing.T) {
		cfg := &SQLiteConfig{
			Path: "file::memory:?cache=shared",
		}
		conn, err := NewSQLite(cfg)
		require.NoError(t, err)

		var _ Connector = conn
		var _ SQLiteConnector = conn
		var _ DatabaseConnector = conn

		assert.Contains(t, conn.Name(), "sqlite")
		// 延迟连接：Connect 之前客户端为 nil
		assert.Nil(t, conn.GetClient())
		assert.False(t, conn.IsHealthy())

		require.NoError(t, conn.Connect(context.Background()))
		assert.NotNil(t, conn.GetClient())
		assert.True(t, conn.IsHealthy())

		conn.Close()
	})

	t.Run("MySQL connector implements interface", func(t *testing.T) {
		cfg := &MySQLConfig{
			Host:     "localhost",
			Port:     3306,
			Username: "test",
			Password: "test",
			Database: "test_db",
		}
		conn, err := NewMySQL(cfg)
		require.NoError(t, err)

		var _ Connector = conn
		var _ MySQLConnector = conn
		var _ DatabaseConnector = conn

		assert.Equal(t, "default", conn.Name())
		assert.Nil(t, conn.GetClient())
		assert.False(t, conn.IsHealthy())

		conn.Close()
	})

	t.Run("PostgreSQL connector implements interface", func(t *testing.T) {
		cfg := &PostgreSQLConfig{
			Host:     "localhost",
			Username: "postgres",
			Database: "test_db",
		}
		conn, err := NewPostgreSQL(cfg)
		require.NoError(t, err)

		var _ Connector = conn
		var _ PostgreSQLConnector = conn
		var _ DatabaseConnector = conn

		assert.Equal(t, "default", conn.Name())
		assert.Nil(t, conn.GetClient())
		assert.False(t, conn.IsHealthy())

		conn.Close()
	})
}

// TestConnectorName 测试连接器名称设置
func TestConnectorName(t *testing.T) {
	tests := []struct {
		name     string
		connName string
		want     string
	}{
		{"default name", "", "sqlite"},
		{"custom name", "my-connector", "my-connector"},
		{"name with number", "connector-123", "connector-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &SQLiteConfig{
				Name: tt.connName,
				Path: "file::memory:?cache=shared",
			}
			conn, err := NewSQLite(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, conn.Name())
			conn.Close()
		})
	}
}

// TestHealthCheckWithoutConnect 测试未连接时的健康检查
func TestHealthCheckWithoutConnect(t *testing.T) {
	tests := []struct {
		name string
		conn func(t *testing.T) Connector
	}{
		{
			name: "sqlite",
			conn: func(t *testing.T) Connector {
				c, err := NewSQLite(&SQLiteConfig{Path: "file::memory:?cache=shared"})
				require.NoError(t, err)
				return c
			},
		},
		{
			name: "mysql",
			conn: func(t *testing.T) Connector {
				c, err := NewMySQL(&MySQLConfig{Host: "localhost", Username: "root", Database: "db"})
				require.NoError(t, err)
				return c
			},
		},
		{
			name: "postgresql",
			conn: func(t *testing.T) Connector {
				c, err := NewPostgreSQL(&PostgreSQLConfig{Host: "localhost", Username: "postgres", Database: "db"})
				require.NoError(t, err)
				return c
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := tt.conn(t)
			defer conn.Close()

			assert.False(t, conn.IsHealthy())

			err := conn.HealthCheck(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrClientNil)
			assert.False(t, conn.IsHealthy())
		})
	}
}

// TestCloseWithoutConnect 测试未连接时关闭
func TestCloseWithoutConnect(t *testing.T) {
	t.Run("sqlite close without connect", func(t *testing.T) {
		conn, err := NewSQLite(&SQLiteConfig{Path: "file::memory:?cache=shared"})
		require.NoError(t, err)

		err = conn.Close()
		assert.NoError(t, err)
		assert.False(t, conn.IsHealthy())
	})

	t.Run("mysql close without connect", func(t *testing.T) {
		conn, err := NewMySQL(&MySQLConfig{
			Host:     "localhost",
			Username: "root",
			Password: "pass",
			Database: "db",
		})
		require.NoError(t, err)

		err = conn.Close()
		assert.NoError(t, err)
	})

	t.Run("postgresql close without connect", func(t *testing.T) {
		conn, err := NewPostgreSQL(&PostgreSQLConfig{
			Host:     "localhost",
			Username: "postgres",
			Database: "db",
		})
		require.NoError(t, err)

		err = conn.Close()
		assert.NoError(t, err)
	})
}

// TestDoubleClose 测试重复关闭
func TestDoubleClose(t *testing.T) {
	cfg := &SQLiteConfig{Path: "file::memory:?cache=shared"}
	conn, err := NewSQLite(cfg)
	require.NoError(t, err)

	require.NoError(t, conn.Connect(context.Background()))

	err = conn.Close()
	require.NoError(t, err)

	err = conn.Close()
	require.NoError(t, err)
	assert.False(t, conn.IsHealthy())
}

// TestConnectorConcurrency 测试连接器并发安全性
func TestConnectorConcurrency(t *testing.T) {
	t.Run("concurrent IsHealthy calls", func(t *testing.T) {
		cfg := &SQLiteConfig{Path: "file::memory:?cache=shared"}
		conn, err := NewSQLite(cfg)
		require.NoError(t, err)

		ctx := context.Background()
		err = conn.Connect(ctx)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				conn.IsHealthy()
			}()
		}
		wg.Wait()

		conn.Close()
	})

	t.Run("concurrent Connect calls are idempotent", func(t *testing.T) {
		cfg := &SQLiteConfig{Path: "file::memory:?cache=shared"}
		conn, err := NewSQLite(cfg)
		require.NoError(t, err)
		defer conn.Close()

		ctx := context.Background()

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, conn.Connect(ctx))
			}()
		}
		wg.Wait()

		assert.True(t, conn.IsHealthy())
		assert.NotNil(t, conn.GetClient())
	})

	t.Run("concurrent Connect and Close", func(t *testing.T) {
		cfg := &SQLiteConfig{Path: "file::memory:?cache=shared"}
		conn, err := NewSQLite(cfg)
		require.NoError(t, err)

		ctx := context.Background()

		// 验证不产生数据竞争
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_ = conn.Connect(ctx)
			}()
			go func() {
				defer wg.Done()
				_ = conn.Close()
			}()
		}
		wg.Wait()

		conn.Close()
	})
}

// TestSentinelErrors 测试哨兵错误
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		isErr bool
	}{
		{"ErrNotConnected", ErrNotConnected, true},
		{"ErrAlreadyClosed", ErrAlreadyClosed, true},
		{"ErrConnection", ErrConnection, true},
		{"ErrClientNil", ErrClientNil, true},
		{"ErrTimeout", ErrTimeout, true},
		{"ErrConfig", ErrConfig, true},
		{"ErrHealthCheck", ErrHealthCheck, true},
		{"wrapped error", xerrors.Wrap(ErrNotConnected, "test"), true},
		{"different error", fmt.Errorf("different"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.isErr {
				assert.Error(t, tt.err)
			}
		})
	}

	t.Run("wrapped sentinel matches errors.Is", func(t *testing.T) {
		err := xerrors.Wrapf(ErrClientNil, "sqlite connector[%s]", "default")
		assert.ErrorIs(t, err, ErrClientNil)
	})
}

// TestContextCancellation 测试上下文取消
func TestContextCancellation(t *testing.T) {
	t.Run("connect with cancelled context", func(t *testing.T) {
		cfg := &SQLiteConfig{Path: "file::memory:?cache=shared"}
		conn, err := NewSQLite(cfg)
		require.NoError(t, err)
		defer conn.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// SQLite 是本地数据库，取消的上下文可能在 ping 前已完成
		err = conn.Connect(ctx)
		_ = err
	})
}

// BenchmarkConnectorCreation 性能基准测试
func BenchmarkConnectorCreation(b *testing.B) {
	b.Run("SQLite", func(b *testing.B) {
		cfg := &SQLiteConfig{Path: "file::memory:?cache=shared"}
		for i := 0; i < b.N; i++ {
			conn, _ := NewSQLite(cfg)
			conn.Close()
		}
	})

	b.Run("MySQL", func(b *testing.B) {
		cfg := &MySQLConfig{
			Host:     "localhost",
			Username: "root",
			Password: "pass",
			Database: "db",
		}
		for i := 0; i < b.N; i++ {
			conn, _ := NewMySQL(cfg)
			conn.Close()
		}
	})
}

// BenchmarkIsHealthy 性能基准测试
func BenchmarkIsHealthy(b *testing.B) {
	cfg := &SQLiteConfig{Path: "file::memory:?cache=shared"}
	conn, _ := NewSQLite(cfg)
	conn.Connect(context.Background())
	defer conn.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		conn.IsHealthy()
	}
}
