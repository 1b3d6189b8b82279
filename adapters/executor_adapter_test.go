package adapters_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-conc/adapters"
	"github.com/momentics/hioload-conc/api"
	"github.com/momentics/hioload-conc/control"
	"github.com/momentics/hioload-conc/internal/concurrency"
)

func TestExecutorAdapter(t *testing.T) {
	ea, err := adapters.NewExecutorAdapter(control.PoolConfig{Threads: 3, Name: "exec"})
	require.NoError(t, err)

	var exec api.Executor = ea
	assert.Equal(t, 3, exec.Size())
	assert.Equal(t, "exec", ea.Pool().ID())

	var n atomic.Int32
	for i := 0; i < 20; i++ {
		require.NoError(t, exec.Enqueue(api.TaskFunc(func() { n.Add(1) })))
	}
	exec.WaitForAll()
	assert.Equal(t, int32(20), n.Load())

	f, err := concurrency.Submit(ea.Pool(), func() (string, error) { return "typed", nil })
	require.NoError(t, err)
	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, "typed", v)

	exec.Shutdown()
	exec.Shutdown()
	assert.ErrorIs(t, exec.Enqueue(api.TaskFunc(func() {})), api.ErrPoolShutdown)
}

func TestExecutorAdapterInvalidConfig(t *testing.T) {
	_, err := adapters.NewExecutorAdapter(control.PoolConfig{Threads: -1})
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}
