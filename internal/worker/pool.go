package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"backoffice-service/internal/util"

	"go.uber.org/zap"
)

// ErrQueueFull is returned when the backlog and all workers are
// saturated; the task is dropped, never queued elsewhere.
var ErrQueueFull = errors.New("task queue is full")

// Task is one fire-and-forget background job. Tasks are not persisted
// and not retried: a crash mid-job silently loses the job.
type Task struct {
	Kind string
	Run  func(ctx context.Context)
}

// Pool is a bounded background executor: it starts with min workers,
// grows up to max under backlog pressure, and rejects submissions once
// the queue is full and no worker slot remains.
type Pool struct {
	queue   chan Task
	logger  *zap.Logger
	max     int
	mu      sync.Mutex
	workers int
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewPool(min, max, queueCapacity int) *Pool {
	if min < 1 {
		min = 1
	}
	if max < min {
		max = min
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		queue:  make(chan Task, queueCapacity),
		logger: util.GetLogger(),
		max:    max,
		ctx:    ctx,
		cancel: cancel,
	}
	for i := 0; i < min; i++ {
		p.spawn()
	}
	return p
}

func (p *Pool) spawn() {
	p.workers++
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for {
			select {
			case <-p.ctx.Done():
				// drain what is already queued before exiting
				for {
					select {
					case task := <-p.queue:
						p.execute(task)
					default:
						return
					}
				}
			case task := <-p.queue:
				p.execute(task)
			}
		}
	}()
}

func (p *Pool) execute(task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Background task panicked",
				zap.String("kind", task.Kind), zap.Any("panic", r))
		}
	}()
	task.Run(p.ctx)
}

// Submit enqueues a task. It returns immediately: the caller gets no
// result channel, only the accepted/rejected verdict.
func (p *Pool) Submit(task Task) error {
	select {
	case p.queue <- task:
		util.BackgroundTasksSubmitted.WithLabelValues(task.Kind).Inc()
		return nil
	default:
	}

	// queue full: grow towards max, give the fresh worker a moment to
	// absorb the backlog, then give up
	p.mu.Lock()
	if p.workers < p.max {
		p.spawn()
		p.mu.Unlock()
		select {
		case p.queue <- task:
			util.BackgroundTasksSubmitted.WithLabelValues(task.Kind).Inc()
			return nil
		case <-time.After(100 * time.Millisecond):
			util.BackgroundTasksRejected.Inc()
			return ErrQueueFull
		}
	}
	p.mu.Unlock()
	util.BackgroundTasksRejected.Inc()
	return ErrQueueFull
}

// Shutdown stops accepting work and waits for running workers to drain
// the queue, up to the deadline.
func (p *Pool) Shutdown(timeout time.Duration) {
	p.cancel()
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		p.logger.Warn("Worker pool shutdown timed out, abandoning remaining tasks")
	}
}
