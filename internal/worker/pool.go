// Package worker runs background jobs on a fixed set of goroutines. Event
// sinks and scheduled maintenance share the same pool.
package worker

import (
	"context"
	"sync"

	"github.com/osse101/stardust-engine/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to the Job interface
type JobFunc func(ctx context.Context) error

// Process calls f
func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

// Pool represents a worker pool
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
	stopOnce sync.Once
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(id, job)
		case <-p.quit:
			// finish what was already accepted
			for {
				select {
				case job := <-p.jobQueue:
					p.run(id, job)
				default:
					return
				}
			}
		}
	}
}

// run executes one job. A panicking job is logged and does not take the
// worker down with it.
func (p *Pool) run(id int, job Job) {
	ctx := context.Background()
	log := logger.FromContext(ctx).With(LogFieldWorker, id)
	defer func() {
		if r := recover(); r != nil {
			log.Error(LogMsgJobPanic, LogFieldError, r)
		}
	}()
	if err := job.Process(ctx); err != nil {
		log.Error(LogMsgJobFailed, LogFieldError, err)
	}
}

// Enqueue adds a job to the queue, blocking while the queue is full
func (p *Pool) Enqueue(job Job) {
	select {
	case p.jobQueue <- job:
	case <-p.quit:
	}
}

// TryEnqueue adds a job without blocking. It returns false when the queue is
// full or the pool is stopped.
func (p *Pool) TryEnqueue(job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// Stop stops the workers after queued jobs finish and waits for them
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })
	p.wg.Wait()
}
