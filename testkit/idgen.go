package testkit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ceyewan/snowid/idgen"
)

// NewGenerator 返回一个用于测试的雪花生成器
func NewGenerator(t *testing.T, workerID, datacenterID int64) idgen.Generator {
	gen, err := idgen.New(
		&idgen.GeneratorConfig{WorkerID: workerID, DatacenterID: datacenterID},
		idgen.WithLogger(NewLogger()),
	)
	require.NoError(t, err, "failed to create generator")
	return gen
}
