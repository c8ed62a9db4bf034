package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func counting(n *int32) Job {
	return JobFunc(func(context.Context) error {
		atomic.AddInt32(n, 1)
		return nil
	})
}

func TestPool_RunsEnqueuedJobs(t *testing.T) {
	var executed int32
	pool := NewPool(3, 8)
	pool.Start()
	for i := 0; i < 6; i++ {
		pool.Enqueue(counting(&executed))
	}
	pool.Stop()

	assert.Equal(t, int32(6), atomic.LoadInt32(&executed))
}

func TestPool_StopDrainsQueue(t *testing.T) {
	var executed int32
	pool := NewPool(1, 5)
	for i := 0; i < 5; i++ {
		assert.True(t, pool.TryEnqueue(counting(&executed)))
	}
	pool.Start()
	pool.Stop()

	assert.Equal(t, int32(5), atomic.LoadInt32(&executed))
}

func TestPool_TryEnqueueFullOrStopped(t *testing.T) {
	pool := NewPool(1, 1)
	noop := JobFunc(func(context.Context) error { return nil })

	assert.True(t, pool.TryEnqueue(noop))
	assert.False(t, pool.TryEnqueue(noop), "queue of one is full before start")

	pool.Start()
	pool.Stop()
	assert.False(t, pool.TryEnqueue(noop))
	pool.Stop()
}

func TestPool_FailingJobsKeepWorker(t *testing.T) {
	var executed int32
	pool := NewPool(1, 4)
	pool.Start()
	pool.Enqueue(JobFunc(func(context.Context) error { return errors.New("boom") }))
	pool.Enqueue(JobFunc(func(context.Context) error { panic("kaboom") }))
	pool.Enqueue(counting(&executed))
	pool.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&executed))
}

func TestNewPool_ClampsArguments(t *testing.T) {
	pool := NewPool(0, -3)
	assert.Equal(t, 1, pool.workers)
	assert.Equal(t, 0, cap(pool.jobQueue))
}
