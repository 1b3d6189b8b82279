package adapters_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-conc/adapters"
	"github.com/momentics/hioload-conc/internal/concurrency"
	"github.com/momentics/hioload-conc/pool"
)

func TestControlAdapterBasic(t *testing.T) {
	ctrl := adapters.NewControlAdapter(nil)
	stats := ctrl.Stats()
	assert.Contains(t, stats, "debug.platform.cpus")

	ctrl.RegisterDebugProbe("custom", func() any { return 1 })
	assert.Equal(t, 1, ctrl.Stats()["debug.custom"])
	assert.Contains(t, ctrl.Probes().Names(), "custom")
}

func TestControlAdapterAttach(t *testing.T) {
	ctrl := adapters.NewControlAdapter(nil)

	p, err := concurrency.NewThreadPool(concurrency.WithThreads(2), concurrency.WithName("main"))
	require.NoError(t, err)
	defer p.Shutdown()
	ctrl.AttachPool(p)

	bp, err := pool.NewBlockPool(32, 4)
	require.NoError(t, err)
	_, ok := bp.Allocate()
	require.True(t, ok)
	ctrl.AttachBlockPool("frames", bp)

	stats := ctrl.Stats()
	ps, ok := stats["debug.pool.main"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 2, ps["workers"])

	bs, ok := stats["debug.blocks.frames"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 3, bs["available"])
	assert.Equal(t, 1, bs["in_use"])
}
