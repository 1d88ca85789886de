//go:build integration

package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ceyewan/snowid/idgen"
	"github.com/ceyewan/snowid/testkit"
)

// =============================================================================
// MySQL 集成测试
// =============================================================================

func TestDBMySQL(t *testing.T) {
	conn := testkit.NewMySQLConnector(t)

	database, err := New(&Config{Driver: "mysql"},
		WithMySQLConnector(conn),
		WithLogger(testkit.NewLogger()),
	)
	require.NoError(t, err)
	defer database.Close()

	ctx := context.Background()
	gormDB := database.DB(ctx)

	// 创建测试表
	err = gormDB.Migrator().CreateTable(&TestUser{})
	require.NoError(t, err)
	defer gormDB.Migrator().DropTable(&TestUser{})

	t.Run("Create", func(t *testing.T) {
		user := TestUser{Name: "Alice", Age: 30}
		err := gormDB.Create(&user).Error
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
	})

	t.Run("Read", func(t *testing.T) {
		user := TestUser{Name: "Bob", Age: 25}
		require.NoError(t, gormDB.Create(&user).Error)

		var fetched TestUser
		err := gormDB.First(&fetched, user.ID).Error
		require.NoError(t, err)
		assert.Equal(t, "Bob", fetched.Name)
		assert.Equal(t, 25, fetched.Age)
	})

	t.Run("Update", func(t *testing.T) {
		user := TestUser{Name: "Charlie", Age: 35}
		require.NoError(t, gormDB.Create(&user).Error)

		err := gormDB.Model(&user).Update("age", 36).Error
		require.NoError(t, err)

		var fetched TestUser
		gormDB.First(&fetched, user.ID)
		assert.Equal(t, 36, fetched.Age)
	})

	t.Run("Delete", func(t *testing.T) {
		user := TestUser{Name: "David", Age: 40}
		require.NoError(t, gormDB.Create(&user).Error)

		err := gormDB.Delete(&user).Error
		require.NoError(t, err)

		var count int64
		gormDB.Model(&TestUser{}).Where("id = ?", user.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Transaction_Success", func(t *testing.T) {
		err := database.Transaction(ctx, func(ctx context.Context, tx *gorm.DB) error {
			return tx.Create(&TestUser{Name: "TxUser", Age: 50}).Error
		})
		require.NoError(t, err)

		var count int64
		gormDB.Model(&TestUser{}).Where("name = ?", "TxUser").Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Transaction_Rollback", func(t *testing.T) {
		err := database.Transaction(ctx, func(ctx context.Context, tx *gorm.DB) error {
			tx.Create(&TestUser{Name: "ShouldRollback", Age: 99})
			return assert.AnError
		})
		assert.Error(t, err)

		var count int64
		gormDB.Model(&TestUser{}).Where("name = ?", "ShouldRollback").Count(&count)
		assert.Equal(t, int64(0), count)
	})
}

// =============================================================================
// PostgreSQL 集成测试
// =============================================================================

func TestDBPostgreSQL(t *testing.T) {
	conn := testkit.NewPostgreSQLConnector(t)

	database, err := New(&Config{Driver: "postgresql"},
		WithPostgreSQLConnector(conn),
		WithLogger(testkit.NewLogger()),
	)
	require.NoError(t, err)
	defer database.Close()

	ctx := context.Background()
	gormDB := database.DB(ctx)

	// 创建测试表
	err = gormDB.Migrator().CreateTable(&TestUser{})
	require.NoError(t, err)
	defer gormDB.Migrator().DropTable(&TestUser{})

	t.Run("Create", func(t *testing.T) {
		user := TestUser{Name: "Alice", Age: 30}
		err := gormDB.Create(&user).Error
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
	})

	t.Run("Read", func(t *testing.T) {
		user := TestUser{Name: "Bob", Age: 25}
		require.NoError(t, gormDB.Create(&user).Error)

		var fetched TestUser
		err := gormDB.First(&fetched, user.ID).Error
		require.NoError(t, err)
		assert.Equal(t, "Bob", fetched.Name)
		assert.Equal(t, 25, fetched.Age)
	})

	t.Run("Transaction", func(t *testing.T) {
		err := database.Transaction(ctx, func(ctx context.Context, tx *gorm.DB) error {
			return tx.Create(&TestUser{Name: "TxUser", Age: 50}).Error
		})
		require.NoError(t, err)

		var count int64
		gormDB.Model(&TestUser{}).Where("name = ?", "TxUser").Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Transaction_Rollback", func(t *testing.T) {
		err := database.Transaction(ctx, func(ctx context.Context, tx *gorm.DB) error {
			tx.Create(&TestUser{Name: "ShouldRollback", Age: 99})
			return assert.AnError
		})
		assert.Error(t, err)

		var count int64
		gormDB.Model(&TestUser{}).Where("name = ?", "ShouldRollback").Count(&count)
		assert.Equal(t, int64(0), count)
	})
}

// =============================================================================
// MySQL 分片集成测试
// =============================================================================

func TestDBSharding_MySQL(t *testing.T) {
	conn := testkit.NewMySQLConnector(t)

	gen, err := idgen.New(&idgen.GeneratorConfig{WorkerID: 7, DatacenterID: 2})
	require.NoError(t, err)

	// 启用分片
	database, err := New(&Config{
		Driver:         "mysql",
		EnableSharding: true,
		ShardingRules: []ShardingRule{
			{
				ShardingKey:    "user_id",
				NumberOfShards: 4,
				Tables:         []string{"orders"},
			},
		},
	},
		WithMySQLConnector(conn),
		WithIDGenerator(gen),
		WithLogger(testkit.NewLogger()),
		WithSilentMode(),
	)
	require.NoError(t, err)
	defer database.Close()

	ctx := context.Background()
	gormDB := database.DB(ctx)

	// 创建分片表 orders_0 .. orders_3
	for i := 0; i < 4; i++ {
		tableName := fmt.Sprintf("orders_%d", i)
		err := gormDB.Exec(fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGINT PRIMARY KEY,
				user_id BIGINT NOT NULL,
				amount INT NOT NULL,
				status VARCHAR(50) NOT NULL,
				INDEX idx_user_id (user_id)
			)
		`, tableName)).Error
		require.NoError(t, err, "failed to create table %s", tableName)
	}

	defer func() {
		for i := 0; i < 4; i++ {
			gormDB.Exec(fmt.Sprintf("DROP TABLE IF EXISTS orders_%d", i))
		}
	}()

	t.Run("Insert_With_Sharding", func(t *testing.T) {
		orders := []ShardedOrder{
			{UserID: 1001, Amount: 100, Status: "pending"},
			{UserID: 1002, Amount: 200, Status: "completed"},
			{UserID: 1003, Amount: 300, Status: "pending"},
			{UserID: 1004, Amount: 400, Status: "completed"},
		}

		for _, order := range orders {
			err := gormDB.Create(&order).Error
			require.NoError(t, err)
		}

		for _, order := range orders {
			var fetched ShardedOrder
			err := gormDB.Model(&ShardedOrder{}).Where("user_id = ?", order.UserID).First(&fetched).Error
			require.NoError(t, err, "should find order with user_id %d", order.UserID)
			assert.Equal(t, order.Amount, fetched.Amount)

			// 主键由注入的生成器铸造
			id := idgen.ID(fetched.ID)
			assert.Equal(t, int64(7), id.Worker())
			assert.Equal(t, int64(2), id.Datacenter())
			assert.WithinDuration(t, time.Now(), id.Time(), time.Minute)
		}
	})

	t.Run("Query_With_ShardingKey", func(t *testing.T) {
		order := ShardedOrder{UserID: 2001, Amount: 500, Status: "new"}
		err := gormDB.Create(&order).Error
		require.NoError(t, err)

		var fetched ShardedOrder
		err = gormDB.Model(&ShardedOrder{}).Where("user_id = ?", 2001).First(&fetched).Error
		require.NoError(t, err)
		assert.Equal(t, int64(2001), fetched.UserID)
		assert.Equal(t, 500, fetched.Amount)
	})

	t.Run("Update_With_ShardingKey", func(t *testing.T) {
		order := ShardedOrder{UserID: 3001, Amount: 600, Status: "pending"}
		err := gormDB.Create(&order).Error
		require.NoError(t, err)

		err = gormDB.Model(&ShardedOrder{}).Where("user_id = ?", 3001).Update("status", "shipped").Error
		require.NoError(t, err)

		var updated ShardedOrder
		err = gormDB.Model(&ShardedOrder{}).Where("user_id = ?", 3001).First(&updated).Error
		require.NoError(t, err)
		assert.Equal(t, "shipped", updated.Status)
	})

	t.Run("Delete_With_ShardingKey", func(t *testing.T) {
		order := ShardedOrder{UserID: 4001, Amount: 700, Status: "cancelled"}
		err := gormDB.Create(&order).Error
		require.NoError(t, err)

		err = gormDB.Where("user_id = ?", 4001).Delete(&ShardedOrder{}).Error
		require.NoError(t, err)

		var deleted ShardedOrder
		err = gormDB.Model(&ShardedOrder{}).Where("user_id = ?", 4001).First(&deleted).Error
		assert.Error(t, err)
	})
}
