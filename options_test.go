package mvbtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyOptions_Defaults(t *testing.T) {
	o := applyOptions(nil)
	assert.Equal(t, int64(0), o.memoryLimitBytes)
	assert.Equal(t, 3, o.backoffThreshold)
	assert.NotNil(t, o.logger)
	assert.NotNil(t, o.metricsCollector)
}

func TestApplyOptions_Overrides(t *testing.T) {
	mc := &BasicMetricsCollector{}
	o := applyOptions([]Option{
		WithMemoryLimit(1024),
		WithBackoffThreshold(10),
		WithMetricsCollector(mc),
	})

	assert.Equal(t, int64(1024), o.memoryLimitBytes)
	assert.Equal(t, 10, o.backoffThreshold)
	assert.Same(t, mc, o.metricsCollector)
}

func TestWithBackoffThreshold_IgnoresNonPositive(t *testing.T) {
	o := applyOptions([]Option{WithBackoffThreshold(0)})
	assert.Equal(t, 3, o.backoffThreshold)
}
