package marcopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReaderOptionsDefaults(t *testing.T) {
	o := NewReaderOptions()
	assert.False(t, o.Strict, "expected lenient mode by default")
}

func TestWithStrict(t *testing.T) {
	o := NewReaderOptions(WithStrict(true))
	assert.True(t, o.Strict, "expected strict mode to be applied")
}

func TestNewPipelineOptionsDefaults(t *testing.T) {
	o := NewPipelineOptions()
	assert.Equal(t, 64, o.QueueDepth)
	assert.Equal(t, 256, o.ReorderWindow)
}

func TestPipelineOptionOverrides(t *testing.T) {
	o := NewPipelineOptions(WithWorkers(4), WithQueueDepth(8), WithReorderWindow(16))
	assert.Equal(t, 4, o.Workers)
	assert.Equal(t, 8, o.QueueDepth)
	assert.Equal(t, 16, o.ReorderWindow)
}
