package db

import (
	"context"

	"github.com/ceyewan/snowid/metrics"
)

// dbMetrics 数据库组件内部指标，所有方法对 nil 接收者安全
type dbMetrics struct {
	transactions metrics.Counter
}

func newDBMetrics(meter metrics.Meter) *dbMetrics {
	if meter == nil {
		return nil
	}
	transactions, err := meter.Counter("db_transactions_total", "数据库事务总数")
	if err != nil {
		return nil
	}
	return &dbMetrics{transactions: transactions}
}

func (m *dbMetrics) observeTransaction(ctx context.Context, err error) {
	if m == nil {
		return
	}
	outcome := "commit"
	if err != nil {
		outcome = "rollback"
	}
	m.transactions.Inc(ctx, metrics.L("outcome", outcome))
}
