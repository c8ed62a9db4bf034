// Package scheduler enqueues recurring jobs on the worker pool
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/stardust-engine/internal/logger"
	"github.com/osse101/stardust-engine/internal/worker"
)

// LogMsgJobSkipped is logged when a tick finds the worker queue full
const LogMsgJobSkipped = "Scheduled job skipped, worker queue full"

// Scheduler feeds recurring jobs into a worker pool
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	once       sync.Once
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval. A tick is skipped when
// the pool queue is full.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !s.workerPool.TryEnqueue(job) {
					logger.FromContext(context.Background()).Warn(LogMsgJobSkipped, "job", name)
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.quit) })
	s.wg.Wait()
}
